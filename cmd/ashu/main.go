// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ashu CLI, the Bennett University
// library assistant. The widget UI is a separate deployment; this binary
// answers queries one-shot (query) or over HTTP (serve).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mashutosh934755/bennett-ashu-ai/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the ashu CLI.
var rootCmd = &cobra.Command{
	Use:   "ashu",
	Short: "Library assistant for Bennett University",
	Long: `ashu routes natural-language library queries (English/Hindi) to the right
data source: book metadata, open-access article indexes, the Koha catalog,
patron account lookups, or a generative FAQ fallback. Answers come back as
one Markdown document.

Run a single query with "ashu query", or expose the assistant to the chat
widget with "ashu serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ashu.yaml or ~/.config/ashu/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log connector diagnostics to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ashu")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ashu"))
		}
	}

	viper.SetEnvPrefix("ASHU")
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
