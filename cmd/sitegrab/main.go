// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sitegrab CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sitegrab CLI.
var rootCmd = &cobra.Command{
	Use:   "sitegrab",
	Short: "Download files of a given extension from a domain",
	Long: `sitegrab queries the Google Custom Search API for files of a given
extension on a given domain, extracts direct file URLs from the search
results, and downloads them to a local directory.

fetch runs the whole pipeline in one invocation. search and download run
the two phases separately, with an optional query file bridging them.
history lists the outcomes of past downloads.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sitegrab.yaml or ~/.config/sitegrab/sitegrab.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sitegrab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sitegrab"))
		}
	}

	viper.SetEnvPrefix("SITEGRAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
