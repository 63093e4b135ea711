// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/sitegrab/pkg/types"
)

// apiBase is the Google Custom Search endpoint. Declared as a var so
// tests can substitute an httptest server.
var apiBase = "https://www.googleapis.com/customsearch/v1"

// maxPageSize is the largest page the API serves per request.
const maxPageSize = 10

// BuildQuery returns the search expression restricting results to the
// given file type and site.
func BuildQuery(domain, extension string) string {
	return fmt.Sprintf("filetype:%s site:%s", extension, domain)
}

// fetchPage requests one page of up to num results starting at the
// 1-based index start.
func fetchPage(ctx context.Context, client *http.Client, domain, extension string, cfg types.SearchConfig, num, start int) ([]types.SearchResult, error) {
	params := url.Values{
		"key":   {cfg.APIKey},
		"cx":    {cfg.SearchEngineID},
		"q":     {BuildQuery(domain, extension)},
		"num":   {strconv.Itoa(num)},
		"start": {strconv.Itoa(start)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("search API rate limit exceeded (HTTP 429), try again later")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search API response: %w", err)
	}

	var results []types.SearchResult
	for _, item := range sr.Items {
		results = append(results, types.SearchResult{
			Link:       item.Link,
			Title:      item.Title,
			Snippet:    item.Snippet,
			MimeType:   item.Mime,
			FileFormat: item.FileFormat,
			Metatags:   item.Pagemap.Metatags,
		})
	}
	return results, nil
}

// Custom Search API JSON structures.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Link       string  `json:"link"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Mime       string  `json:"mime"`
	FileFormat string  `json:"fileFormat"`
	Pagemap    pagemap `json:"pagemap"`
}

type pagemap struct {
	Metatags []map[string]string `json:"metatags"`
}
