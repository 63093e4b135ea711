// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitegrab/internal/credentials"
	"github.com/pdiddy/sitegrab/internal/extract"
	"github.com/pdiddy/sitegrab/internal/fetch"
	"github.com/pdiddy/sitegrab/internal/search"
	"github.com/pdiddy/sitegrab/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <domain> <extension>",
	Short: "Search a domain for files of an extension and download them",
	Long: `Fetch runs the full pipeline: it queries the search API with a
filetype/site query, extracts direct file URLs from the results, and
downloads each URL sequentially into the destination directory. Existing
files are never overwritten; individual failures do not stop the batch.`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntP("count", "n", defaultCount, "number of files to download")
	fetchCmd.Flags().StringP("dir", "d", ".", "directory to save files into")
	fetchCmd.Flags().String("api-key", "", "Custom Search API key")
	fetchCmd.Flags().String("search-engine-id", "", "Custom Search engine ID")
	fetchCmd.Flags().Bool("save-credentials", false, "save API credentials for future use")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	domain := args[0]
	ext := extract.NormalizeExt(args[1])
	if ext == "" {
		return fmt.Errorf("extension is empty")
	}

	creds, credPath, err := requireCredentials(cmd)
	if err != nil {
		return err
	}
	if save, _ := cmd.Flags().GetBool("save-credentials"); save {
		if err := credentials.Save(credPath, creds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API credentials saved to %s\n", credPath)
	}

	count, _ := cmd.Flags().GetInt("count")
	destDir, _ := cmd.Flags().GetString("dir")
	timeout := flagDuration(cmd, "timeout", defaultTimeout)
	delay := flagDuration(cmd, "delay", defaultDelay)

	client := &http.Client{Timeout: timeout}
	out := cmd.OutOrStdout()

	searchCfg := types.SearchConfig{
		HTTPConfig:     types.HTTPConfig{Timeout: timeout, UserAgent: apiUserAgent},
		APIKey:         creds.APIKey,
		SearchEngineID: creds.SearchEngineID,
		MaxResults:     count,
	}

	fmt.Fprintf(out, "Searching for %s files on %s...\n", ext, domain)
	results, err := search.Collect(cmd.Context(), client, domain, ext, searchCfg, out)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: search stopped early: %v\n", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "No %s files found on %s\n", ext, domain)
		return nil
	}
	fmt.Fprintf(out, "Found %d search results\n", len(results))

	links := extract.Links(results, ext)
	if len(links) == 0 {
		fmt.Fprintf(out, "No direct %s file links found in search results\n", ext)
		fmt.Fprintln(out, "The search found pages mentioning these files, but no direct download links.")
		return nil
	}
	fmt.Fprintf(out, "Found %d direct file links\n\n", len(links))

	downloadCfg := types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: browserUserAgent},
		DestDir:    destDir,
		Delay:      delay,
	}

	var rec fetch.Recorder
	if store := openHistory(historyPath("", destDir), cmd.ErrOrStderr()); store != nil {
		defer store.Close()
		rec = store.Tagged(domain, ext)
	}

	result := fetch.DownloadBatch(cmd.Context(), client, links, downloadCfg, rec, out)
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}
