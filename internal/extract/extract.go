// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract derives direct file URLs from search result items.
package extract

import (
	"strings"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// metatagKeys are the pagemap metadata fields that commonly carry a
// direct file URL when the primary link points at a landing page.
var metatagKeys = []string{"og:url", "url", "citation_pdf_url"}

// NormalizeExt lowercases an extension and strips a leading dot, so
// "PDF", ".pdf" and "pdf" are equivalent.
func NormalizeExt(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
}

// FileURL extracts a direct file URL for the given extension from one
// search result. The checks run in order and the first match wins: the
// primary link with a matching suffix, then the pagemap metatags, then
// the primary link containing the extension anywhere. The second return
// value is false when the item yields no candidate.
func FileURL(r types.SearchResult, extension string) (string, bool) {
	ext := NormalizeExt(extension)
	if ext == "" {
		return "", false
	}
	suffix := "." + ext

	if r.Link != "" && strings.HasSuffix(strings.ToLower(r.Link), suffix) {
		return r.Link, true
	}

	for _, tags := range r.Metatags {
		for _, key := range metatagKeys {
			if u, ok := tags[key]; ok && strings.HasSuffix(strings.ToLower(u), suffix) {
				return u, true
			}
		}
	}

	// Weakest heuristic: the link may be a download endpoint that embeds
	// the extension without ending in it.
	if r.Link != "" && strings.Contains(strings.ToLower(r.Link), ext) {
		return r.Link, true
	}

	return "", false
}

// Links runs FileURL over all results in order, dropping items that
// yield no candidate. Each item contributes at most one link.
func Links(results []types.SearchResult, extension string) []types.FileLink {
	var links []types.FileLink
	for _, r := range results {
		if u, ok := FileURL(r, extension); ok {
			links = append(links, types.FileLink{URL: u, Title: r.Title})
		}
	}
	return links
}
