// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Custom Search API for files of a given
// extension on a given domain and returns the raw result items.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// Collect pages through the API until cfg.MaxResults items are gathered,
// the API reports no further items, or a request fails. A failed request
// stops collection immediately; the items gathered so far are returned
// together with the error, and no retry is attempted.
func Collect(ctx context.Context, client *http.Client, domain, extension string, cfg types.SearchConfig, w io.Writer) ([]types.SearchResult, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain is empty")
	}
	if extension == "" {
		return nil, fmt.Errorf("extension is empty")
	}

	max := cfg.MaxResults
	if max <= 0 {
		max = maxPageSize
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var results []types.SearchResult
	for start := 1; len(results) < max; start += pageSize {
		num := pageSize
		if remaining := max - len(results); remaining < num {
			num = remaining
		}

		page, err := fetchPage(ctx, client, domain, extension, cfg, num, start)
		if err != nil {
			return results, err
		}
		if len(page) == 0 {
			fmt.Fprintf(w, "No more results found (fetched %d total)\n", len(results))
			break
		}
		results = append(results, page...)
	}

	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// FormatTable writes extracted file links as a human-readable table to w.
func FormatTable(links []types.FileLink, w io.Writer) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No direct file links found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-70s  %s\n", "#", "URL", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, l := range links {
		fmt.Fprintf(w, "%-4d  %-70s  %s\n", i+1, truncate(l.URL, 70), truncate(l.Title, 40))
	}
	fmt.Fprintf(w, "\nFound %d direct file links\n", len(links))
}

// FormatJSON writes extracted file links as indented JSON to w.
func FormatJSON(links []types.FileLink, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(links)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
