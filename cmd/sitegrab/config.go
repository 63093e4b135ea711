// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sitegrab/internal/credentials"
	"github.com/pdiddy/sitegrab/internal/history"
	"github.com/pdiddy/sitegrab/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 1 * time.Second
	defaultCount   = 10

	// apiUserAgent identifies the tool to the search API.
	apiUserAgent = "sitegrab/0.1"

	// browserUserAgent is sent with file downloads. Some hosts serve
	// error pages to non-browser agents.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// resolveCredentials returns the API credentials, resolving each field
// from the command flags, then the environment (via viper), then the
// credential file. The second return value is the credential file path.
func resolveCredentials(cmd *cobra.Command) (credentials.Credentials, string, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	engineID, _ := cmd.Flags().GetString("search-engine-id")

	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if engineID == "" {
		engineID = viper.GetString("search_engine_id")
	}

	path := credentials.DefaultPath()
	if apiKey == "" || engineID == "" {
		saved, err := credentials.Load(path)
		if err != nil {
			return credentials.Credentials{}, path, err
		}
		if apiKey == "" {
			apiKey = saved.APIKey
		}
		if engineID == "" {
			engineID = saved.SearchEngineID
		}
	}

	return credentials.Credentials{APIKey: apiKey, SearchEngineID: engineID}, path, nil
}

// requireCredentials resolves credentials and errors with setup guidance
// when either field is missing.
func requireCredentials(cmd *cobra.Command) (credentials.Credentials, string, error) {
	creds, path, err := resolveCredentials(cmd)
	if err != nil {
		return creds, path, err
	}
	if !creds.Complete() {
		return creds, path, fmt.Errorf("missing API credentials: pass --api-key and --search-engine-id, "+
			"set SITEGRAB_API_KEY and SITEGRAB_SEARCH_ENGINE_ID, or create %s "+
			"(get keys at https://developers.google.com/custom-search/v1/overview)", path)
	}
	return creds, path, nil
}

// flagDuration returns the flag value when set, falling back to the
// viper key of the same name, then to fallback.
func flagDuration(cmd *cobra.Command, name string, fallback time.Duration) time.Duration {
	if d, _ := cmd.Flags().GetDuration(name); d > 0 {
		return d
	}
	if d := viper.GetDuration(name); d > 0 {
		return d
	}
	return fallback
}

// historyPath returns the history database path: the explicit value when
// non-empty, then the configured path, then <destDir>/.sitegrab/history.db.
func historyPath(explicit, destDir string) string {
	if explicit != "" {
		return explicit
	}
	if p := viper.GetString("history.path"); p != "" {
		return p
	}
	return filepath.Join(destDir, ".sitegrab", "history.db")
}

// openHistory opens the download history store. History is best-effort:
// on failure it prints a warning to w and returns nil.
func openHistory(path string, w io.Writer) *history.Store {
	store, err := history.Open(types.HistoryConfig{Path: path})
	if err != nil {
		fmt.Fprintf(w, "warning: download history disabled: %v\n", err)
		return nil
	}
	return store
}
