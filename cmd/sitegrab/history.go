// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sitegrab/internal/history"
	"github.com/pdiddy/sitegrab/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past download outcomes",
	Long: `History lists the download records accumulated by fetch and download
runs, most recent first. Records can be filtered by the search domain,
the searched extension, and the attempt status.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("domain", "", "filter by search domain")
	historyCmd.Flags().String("ext", "", "filter by searched extension")
	historyCmd.Flags().String("status", "", "filter by status: downloaded, skipped, or failed")
	historyCmd.Flags().Int("limit", 0, "maximum number of records (default 20)")
	historyCmd.Flags().StringP("dir", "d", ".", "download directory whose history to read")
	historyCmd.Flags().String("db", "", "history database path (overrides --dir)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	destDir, _ := cmd.Flags().GetString("dir")
	dbPath, _ := cmd.Flags().GetString("db")

	store, err := history.Open(types.HistoryConfig{Path: historyPath(dbPath, destDir)})
	if err != nil {
		return err
	}
	defer store.Close()

	domain, _ := cmd.Flags().GetString("domain")
	ext, _ := cmd.Flags().GetString("ext")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	downloads, err := store.List(cmd.Context(), history.ListOptions{
		Domain:    domain,
		Extension: ext,
		Status:    types.DownloadStatus(status),
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return history.FormatJSON(downloads, cmd.OutOrStdout())
	}
	history.FormatTable(downloads, cmd.OutOrStdout())
	return nil
}
