// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the snapmerge CLI. It merges
// heterogeneous documents (PDFs, images, Word documents, emails) from a
// folder or an explicit ordered list into a single output PDF.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snapmerge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the snapmerge CLI.
var rootCmd = &cobra.Command{
	Use:   "snapmerge",
	Short: "Merge PDFs, images, documents, and emails into one PDF",
	Long: `snapmerge merges heterogeneous documents into a single PDF. Inputs can
be a folder (discovered, filtered, and sorted per configuration) or an
explicit ordered list of files. Images, Word-family documents, and .eml
messages are converted to intermediate PDFs before merging; PDFs pass
through untouched.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./snapmerge.yaml or ~/.config/snapmerge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snapmerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snapmerge"))
		}
	}

	viper.SetEnvPrefix("SNAPMERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSettings merges the config file over the built-in defaults.
func loadSettings() (types.Settings, error) {
	settings := types.DefaultSettings()
	if err := viper.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("parsing configuration: %w", err)
	}
	return settings, nil
}

// dataDir returns the directory holding snapmerge's run history.
func dataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(base, "snapmerge"), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
