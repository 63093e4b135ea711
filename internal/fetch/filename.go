// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// nowUnix returns the current Unix time. Declared as a var so tests can
// pin the timestamp used in synthesized filenames.
var nowUnix = func() int64 { return time.Now().Unix() }

// DeriveFilename returns the local filename for a download URL. It takes
// the last path segment; when the path is empty or carries no extension
// it synthesizes "download_<unixtime>.<ext>" with a best-effort extension
// guessed from the URL (capped at 4 characters).
func DeriveFilename(rawURL string) string {
	clean := strings.TrimRight(rawURL, "/")

	var name string
	if u, err := url.Parse(clean); err == nil {
		name = path.Base(u.Path)
		if name == "." || name == "/" {
			name = ""
		}
	}

	if name == "" || !strings.Contains(name, ".") {
		name = synthesizeFilename(clean)
	}

	// Strip any characters that would escape the destination directory.
	return strings.ReplaceAll(strings.TrimRight(name, "/"), "/", "_")
}

// synthesizeFilename builds a timestamped filename with an extension
// guessed from the last dot segment of the URL.
func synthesizeFilename(cleanURL string) string {
	ext := "download"
	if i := strings.LastIndex(cleanURL, "."); i >= 0 {
		tail := cleanURL[i+1:]
		if j := strings.IndexByte(tail, '/'); j >= 0 {
			tail = tail[:j]
		}
		if len(tail) > 4 {
			tail = tail[:4]
		}
		if tail != "" {
			ext = tail
		}
	}
	return fmt.Sprintf("download_%d.%s", nowUnix(), ext)
}
