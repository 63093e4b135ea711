package search

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/sitegrab/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	links := []types.FileLink{
		{URL: "https://example.com/a.pdf", Title: "A"},
		{URL: "https://example.com/b.pdf", Title: "B"},
	}

	if err := WriteQueryFile(path, "example.com", "pdf", 10, 5, links); err != nil {
		t.Fatalf("WriteQueryFile() error = %v", err)
	}

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile() error = %v", err)
	}
	if qf.Query.Domain != "example.com" || qf.Query.Extension != "pdf" || qf.Query.Count != 10 {
		t.Errorf("query = %+v", qf.Query)
	}
	if len(qf.Links) != 2 || qf.Links[0].URL != links[0].URL {
		t.Errorf("links = %+v, want %+v", qf.Links, links)
	}
	if qf.Summary.ResultsScanned != 5 || qf.Summary.LinksFound != 2 {
		t.Errorf("summary = %+v", qf.Summary)
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
