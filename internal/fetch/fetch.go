// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads extracted file URLs to a local directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/sitegrab/internal/httputil"
	"github.com/pdiddy/sitegrab/pkg/types"
)

// Recorder receives one record per download attempt. The history store
// implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, d types.Download) error
}

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadFile fetches rawURL into cfg.DestDir and returns a record of
// the attempt. An existing file of the same name is never overwritten;
// the attempt is reported as skipped. The body streams to a temporary
// file that is renamed into place only after it is known to be non-empty
// and not an HTML page masquerading as the target type, so a failed or
// empty download leaves nothing on disk.
func DownloadFile(ctx context.Context, client *http.Client, rawURL string, cfg types.DownloadConfig) (types.Download, error) {
	d := types.Download{
		URL:      rawURL,
		Filename: DeriveFilename(rawURL),
		Time:     time.Now(),
	}

	destDir := cfg.DestDir
	if destDir == "" {
		destDir = "."
	}
	destPath := filepath.Join(destDir, d.Filename)

	if _, err := os.Stat(destPath); err == nil {
		d.Status = types.DownloadSkipped
		d.Path = destPath
		return d, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fail(d, fmt.Errorf("creating directory %s: %w", destDir, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(d, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fail(d, fmt.Errorf("HTTP request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(d, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL))
	}

	d.ContentType = resp.Header.Get("Content-Type")
	if isHTMLMasquerade(rawURL, d.ContentType) {
		return fail(d, fmt.Errorf("response is an HTML page, not a file"))
	}

	size, err := writeFile(resp.Body, destPath)
	if err != nil {
		return fail(d, err)
	}

	d.Status = types.DownloadCompleted
	d.Path = destPath
	d.Size = size
	return d, nil
}

// isHTMLMasquerade reports whether the response declares HTML for a URL
// that does not target an HTML page.
func isHTMLMasquerade(rawURL, contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html") &&
		!strings.HasSuffix(strings.ToLower(rawURL), ".html")
}

// writeFile streams body to destPath via a temporary file, discarding the
// temp file on error or when the body is empty.
func writeFile(body io.Reader, destPath string) (int64, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".sitegrab-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	size, copyErr := io.Copy(tmpFile, body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}
	if size == 0 {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("empty response body")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return size, nil
}

// fail stamps d as failed with the error text and returns both.
func fail(d types.Download, err error) (types.Download, error) {
	d.Status = types.DownloadFailed
	d.Error = err.Error()
	return d, err
}

// DownloadBatch processes the links sequentially, printing per-item
// status and returning a summary. Individual failures never abort the
// batch. Consecutive downloads are paced by a rate limiter so at most
// one request starts per cfg.Delay.
func DownloadBatch(ctx context.Context, client *http.Client, links []types.FileLink, cfg types.DownloadConfig, rec Recorder, w io.Writer) BatchResult {
	limiter := rate.NewLimiter(rate.Every(cfg.Delay), 1)

	var result BatchResult
	for i, link := range links {
		if err := limiter.Wait(ctx); err != nil {
			fmt.Fprintf(w, "stopping: %v\n", err)
			break
		}

		fmt.Fprintf(w, "Downloading file %d/%d: %s\n", i+1, len(links), link.URL)

		d, err := DownloadFile(ctx, client, link.URL, cfg)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", link.URL, err)
			result.Failed++
		case d.Status == types.DownloadSkipped:
			fmt.Fprintf(w, "skipped: %s (already exists)\n", d.Filename)
			result.Skipped++
		default:
			fmt.Fprintf(w, "downloaded: %s (%d bytes)\n", d.Filename, d.Size)
			result.Downloaded++
		}

		if rec != nil {
			if recErr := rec.Record(ctx, d); recErr != nil {
				fmt.Fprintf(w, "  warning: recording history: %v\n", recErr)
			}
		}
	}

	fmt.Fprintf(w, "\nDownload complete: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}
