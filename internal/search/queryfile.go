// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// QueryFile is the on-disk representation of a search and its extracted
// file links. The operator can save a search to a file and download from
// it later without re-querying the API.
type QueryFile struct {
	Query   QueryParams      `yaml:"query"`
	Links   []types.FileLink `yaml:"links"`
	Summary QuerySummary     `yaml:"summary"`
}

// QueryParams stores the search parameters in a serializable form.
type QueryParams struct {
	Domain    string `yaml:"domain"`
	Extension string `yaml:"extension"`
	Count     int    `yaml:"count"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	ResultsScanned int       `yaml:"results_scanned"`
	LinksFound     int       `yaml:"links_found"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves search parameters and extracted links to a YAML file.
func WriteQueryFile(path, domain, extension string, count, resultsScanned int, links []types.FileLink) error {
	qf := QueryFile{
		Query: QueryParams{
			Domain:    domain,
			Extension: extension,
			Count:     count,
		},
		Links: links,
		Summary: QuerySummary{
			ResultsScanned: resultsScanned,
			LinksFound:     len(links),
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
