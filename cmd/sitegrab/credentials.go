// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitegrab/internal/credentials"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Show or save API credentials",
	Long: `Credentials shows where the API credentials come from and whether
both fields are configured. With --save, the resolved credentials are
written to the credential file for future runs.`,
	RunE: runCredentials,
}

func init() {
	credentialsCmd.Flags().String("api-key", "", "Custom Search API key")
	credentialsCmd.Flags().String("search-engine-id", "", "Custom Search engine ID")
	credentialsCmd.Flags().Bool("save", false, "write the resolved credentials to the credential file")

	rootCmd.AddCommand(credentialsCmd)
}

func runCredentials(cmd *cobra.Command, args []string) error {
	creds, path, err := resolveCredentials(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Credential file: %s\n", path)
	fmt.Fprintf(out, "API key:          %s\n", describeSecret(creds.APIKey))
	fmt.Fprintf(out, "Search engine ID: %s\n", describeSecret(creds.SearchEngineID))

	if save, _ := cmd.Flags().GetBool("save"); save {
		if !creds.Complete() {
			return fmt.Errorf("cannot save incomplete credentials: both --api-key and --search-engine-id are required")
		}
		if err := credentials.Save(path, creds); err != nil {
			return err
		}
		fmt.Fprintf(out, "API credentials saved to %s\n", path)
	}
	return nil
}

// describeSecret reports presence without echoing the full value.
func describeSecret(v string) string {
	if v == "" {
		return "(not set)"
	}
	if len(v) <= 4 {
		return "****"
	}
	return fmt.Sprintf("%s... (%d chars)", v[:4], len(v))
}
