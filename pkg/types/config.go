// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Custom Search API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SearchEngineID identifies the configured custom search scope (the
	// API's "cx" parameter).
	SearchEngineID string `json:"search_engine_id,omitempty" yaml:"search_engine_id,omitempty"`

	// MaxResults is the number of results to collect (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PageSize is the number of items requested per API page. The API
	// caps pages at 10; larger values are clamped.
	PageSize int `json:"page_size" yaml:"page_size"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// DestDir is the directory files are saved into (default ".").
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// Delay is the minimum spacing between consecutive downloads (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// MaxRetries bounds 429 retries per download (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the download history database.
type HistoryConfig struct {
	// Path is the SQLite database path. Empty disables history recording.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxResults is the default maximum number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
