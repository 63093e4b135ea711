// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sitegrab pipeline:
// search results returned by the Custom Search API, extracted file links,
// and download records persisted to the history database.
package types

import "time"

// SearchResult is one item returned by the search API. It carries the
// primary link plus the metadata fields the extraction heuristics inspect.
type SearchResult struct {
	// Link is the primary result URL.
	Link string `json:"link" yaml:"link"`

	// Title is the result title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Snippet is the short excerpt shown with the result.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// MimeType is the media type the API reports for the result, when known
	// (e.g. "application/pdf").
	MimeType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`

	// FileFormat is the API's human-readable format label (e.g. "PDF/Adobe Acrobat").
	FileFormat string `json:"file_format,omitempty" yaml:"file_format,omitempty"`

	// Metatags holds the page metadata records from the result's pagemap.
	// Extraction scans these for file URLs when the primary link is indirect.
	Metatags []map[string]string `json:"metatags,omitempty" yaml:"metatags,omitempty"`
}

// FileLink pairs a search result with the direct file URL extracted from it.
type FileLink struct {
	// URL is the extracted direct file URL.
	URL string `json:"url" yaml:"url"`

	// Title is the title of the result the URL was extracted from.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DownloadStatus indicates the outcome of a single download attempt.
type DownloadStatus string

const (
	DownloadCompleted DownloadStatus = "downloaded"
	DownloadSkipped   DownloadStatus = "skipped"
	DownloadFailed    DownloadStatus = "failed"
)

// Download records one download attempt. The fetch and download commands
// append one record per attempt to the history database.
type Download struct {
	// URL is the file URL the download was attempted from.
	URL string `json:"url" yaml:"url"`

	// Filename is the name derived from the URL path.
	Filename string `json:"filename" yaml:"filename"`

	// Path is the local filesystem path of the saved file, empty on failure.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Domain and Extension record the search that discovered the URL.
	// Both are empty for direct `sitegrab download <url>` invocations.
	Domain    string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`

	// Size is the number of bytes written, zero unless Status is "downloaded".
	Size int64 `json:"size" yaml:"size"`

	// ContentType is the Content-Type header of the response, when present.
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Status is the attempt outcome.
	Status DownloadStatus `json:"status" yaml:"status"`

	// Error holds the failure reason when Status is "failed".
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Time is when the attempt finished.
	Time time.Time `json:"time" yaml:"time"`
}
