package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/sitegrab/pkg/types"
)

func testDownloadCfg(destDir string) types.DownloadConfig {
	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		DestDir: destDir,
	}
}

// dirEntries returns the names of regular files in dir.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDownloadFileSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake content"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/files/report.pdf", testDownloadCfg(dir))
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if d.Status != types.DownloadCompleted {
		t.Errorf("status = %q, want %q", d.Status, types.DownloadCompleted)
	}
	if d.Filename != "report.pdf" {
		t.Errorf("filename = %q, want report.pdf", d.Filename)
	}
	if d.ContentType != "application/pdf" {
		t.Errorf("content type = %q", d.ContentType)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "%PDF-1.4 fake content" {
		t.Errorf("file content = %q", data)
	}
	if d.Size != int64(len(data)) {
		t.Errorf("size = %d, want %d", d.Size, len(data))
	}
}

func TestDownloadFileSkipsExisting(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("new content"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(existing, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/report.pdf", testDownloadCfg(dir))
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if d.Status != types.DownloadSkipped {
		t.Errorf("status = %q, want %q", d.Status, types.DownloadSkipped)
	}
	if calls != 0 {
		t.Errorf("server called %d times, want 0", calls)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "original" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestDownloadFileRejectsHTMLMasquerade(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Not found</body></html>"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/report.pdf", testDownloadCfg(dir))
	if err == nil || !strings.Contains(err.Error(), "HTML page") {
		t.Fatalf("DownloadFile() error = %v, want HTML rejection", err)
	}
	if d.Status != types.DownloadFailed {
		t.Errorf("status = %q, want %q", d.Status, types.DownloadFailed)
	}
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Errorf("files left on disk: %v", names)
	}
}

func TestDownloadFileAllowsHTMLTarget(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>page</html>"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/index.html", testDownloadCfg(dir))
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if d.Status != types.DownloadCompleted {
		t.Errorf("status = %q, want %q", d.Status, types.DownloadCompleted)
	}
}

func TestDownloadFileEmptyBodyLeavesNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
	}))
	defer ts.Close()

	dir := t.TempDir()
	_, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/report.pdf", testDownloadCfg(dir))
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("DownloadFile() error = %v, want empty-body error", err)
	}
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Errorf("files left on disk: %v", names)
	}
}

func TestDownloadFileHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	d, err := DownloadFile(context.Background(), ts.Client(), ts.URL+"/report.pdf", testDownloadCfg(dir))
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("DownloadFile() error = %v, want HTTP 404", err)
	}
	if d.Error == "" {
		t.Error("failure reason not recorded")
	}
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Errorf("files left on disk: %v", names)
	}
}

// recordingSink collects records handed to it.
type recordingSink struct {
	records []types.Download
}

func (r *recordingSink) Record(_ context.Context, d types.Download) error {
	r.records = append(r.records, d)
	return nil
}

func TestDownloadBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "missing.pdf"):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("content"))
		}
	}))
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	links := []types.FileLink{
		{URL: ts.URL + "/good.pdf"},
		{URL: ts.URL + "/missing.pdf"},
		{URL: ts.URL + "/existing.pdf"},
	}

	sink := &recordingSink{}
	var buf bytes.Buffer
	result := DownloadBatch(context.Background(), ts.Client(), links, testDownloadCfg(dir), sink, &buf)

	if result.Downloaded != 1 || result.Failed != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 1/1/1", result)
	}
	if result.Total() != 3 {
		t.Errorf("Total() = %d, want 3", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if len(sink.records) != 3 {
		t.Errorf("recorded %d attempts, want 3", len(sink.records))
	}
	if !strings.Contains(buf.String(), "1 downloaded, 1 skipped, 1 failed") {
		t.Errorf("summary missing, got:\n%s", buf.String())
	}
}

func TestDownloadBatchNilRecorder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer ts.Close()

	links := []types.FileLink{{URL: ts.URL + "/a.bin"}}
	result := DownloadBatch(context.Background(), ts.Client(), links, testDownloadCfg(t.TempDir()), nil, &bytes.Buffer{})
	if result.Downloaded != 1 {
		t.Errorf("result = %+v, want 1 downloaded", result)
	}
}

func TestDownloadBatchContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testDownloadCfg(t.TempDir())
	cfg.Delay = time.Second

	links := []types.FileLink{
		{URL: "https://example.invalid/a.pdf"},
		{URL: "https://example.invalid/b.pdf"},
	}
	var buf bytes.Buffer
	result := DownloadBatch(ctx, http.DefaultClient, links, cfg, nil, &buf)
	if result.Total() != 0 {
		t.Errorf("cancelled batch processed %d items, want 0", result.Total())
	}
}
