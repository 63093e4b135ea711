// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitegrab/internal/fetch"
	"github.com/pdiddy/sitegrab/internal/search"
	"github.com/pdiddy/sitegrab/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [urls...]",
	Short: "Download explicit URLs or a saved query file",
	Long: `Download runs only the download phase: each URL is streamed to the
destination directory with the same safeguards as fetch (no overwrites,
HTML rejection, no empty files). URLs come from the arguments or from a
query file written by "sitegrab search --output".`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("from-file", "", "query file to download from")
	downloadCmd.Flags().StringP("dir", "d", ".", "directory to save files into")
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	downloadCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	fromFile, _ := cmd.Flags().GetString("from-file")
	if len(args) == 0 && fromFile == "" {
		return fmt.Errorf("provide one or more URLs or --from-file")
	}
	if len(args) > 0 && fromFile != "" {
		return fmt.Errorf("provide URLs or --from-file, not both")
	}

	var (
		links     []types.FileLink
		domain    string
		extension string
	)
	if fromFile != "" {
		qf, err := search.ReadQueryFile(fromFile)
		if err != nil {
			return err
		}
		links = qf.Links
		domain = qf.Query.Domain
		extension = qf.Query.Extension
	} else {
		for _, u := range args {
			links = append(links, types.FileLink{URL: u})
		}
	}
	if len(links) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to download.")
		return nil
	}

	destDir, _ := cmd.Flags().GetString("dir")
	timeout := flagDuration(cmd, "timeout", defaultTimeout)
	delay := flagDuration(cmd, "delay", defaultDelay)

	cfg := types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: browserUserAgent},
		DestDir:    destDir,
		Delay:      delay,
	}

	var rec fetch.Recorder
	if store := openHistory(historyPath("", destDir), cmd.ErrOrStderr()); store != nil {
		defer store.Close()
		rec = store.Tagged(domain, extension)
	}

	client := &http.Client{Timeout: timeout}
	result := fetch.DownloadBatch(cmd.Context(), client, links, cfg, rec, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}
