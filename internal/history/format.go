// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// FormatTable writes download records as a human-readable table to w.
func FormatTable(downloads []types.Download, w io.Writer) {
	if len(downloads) == 0 {
		fmt.Fprintln(w, "No download history.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-10s  %-30s  %-10s  %s\n",
		"Time", "Status", "Filename", "Size", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, d := range downloads {
		when := ""
		if !d.Time.IsZero() {
			when = d.Time.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-19s  %-10s  %-30s  %-10d  %s\n",
			when, d.Status, truncate(d.Filename, 30), d.Size, truncate(d.URL, 50))
	}

	fmt.Fprintf(w, "\n%d records\n", len(downloads))
}

// FormatJSON writes download records as indented JSON to w.
func FormatJSON(downloads []types.Download, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(downloads)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
