// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitegrab/internal/extract"
	"github.com/pdiddy/sitegrab/internal/search"
	"github.com/pdiddy/sitegrab/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <domain> <extension>",
	Short: "Search a domain for files without downloading",
	Long: `Search queries the search API and prints the direct file URLs
extracted from the results. Use --output to save the links to a query
file that "sitegrab download --from-file" can consume later.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("count", "n", defaultCount, "number of results to collect")
	searchCmd.Flags().String("api-key", "", "Custom Search API key")
	searchCmd.Flags().String("search-engine-id", "", "Custom Search engine ID")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.Flags().Bool("json", false, "output extracted links as JSON")
	searchCmd.Flags().StringP("output", "o", "", "save the search to a query file (YAML)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	domain := args[0]
	ext := extract.NormalizeExt(args[1])
	if ext == "" {
		return fmt.Errorf("extension is empty")
	}

	creds, _, err := requireCredentials(cmd)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	timeout := flagDuration(cmd, "timeout", defaultTimeout)

	cfg := types.SearchConfig{
		HTTPConfig:     types.HTTPConfig{Timeout: timeout, UserAgent: apiUserAgent},
		APIKey:         creds.APIKey,
		SearchEngineID: creds.SearchEngineID,
		MaxResults:     count,
	}

	client := &http.Client{Timeout: timeout}
	out := cmd.OutOrStdout()

	results, err := search.Collect(cmd.Context(), client, domain, ext, cfg, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: search stopped early: %v\n", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "No %s files found on %s\n", ext, domain)
		return nil
	}

	links := extract.Links(results, ext)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := search.FormatJSON(links, out); err != nil {
			return err
		}
	} else {
		search.FormatTable(links, out)
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := search.WriteQueryFile(output, domain, ext, count, len(results), links); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved query file to %s\n", output)
	}
	return nil
}
