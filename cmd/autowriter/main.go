// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the autowriter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docmaster/autowriter/internal/logging"
	"github.com/docmaster/autowriter/internal/secrets"
	"github.com/docmaster/autowriter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, then the secret value
// for key, then "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the autowriter CLI.
var rootCmd = &cobra.Command{
	Use:   "autowriter",
	Short: "LLM-driven article generation and document editing",
	Long: `autowriter turns a natural-language request into a structured article:
it classifies intent, extracts writing parameters, designs an outline, drafts
each section through an LLM gateway, and compiles Markdown and HTML output
while streaming progress events.

A separate edit surface loads an existing document into a paragraph store and
applies search, modify, insert, and delete operations with stable paragraph
identifiers. Completed runs are archived to a local SQLite database.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./autowriter.yaml or ~/.config/autowriter/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("autowriter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "autowriter"))
		}
	}

	viper.SetEnvPrefix("AUTOWRITER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from persistent flags with viper
// fallbacks.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if !cmd.Flags().Changed("log-level") && viper.IsSet("logging.level") {
		level = viper.GetString("logging.level")
	}
	if !cmd.Flags().Changed("log-format") && viper.IsSet("logging.format") {
		format = viper.GetString("logging.format")
	}
	return logging.New(types.LoggingConfig{Level: level, Format: format})
}

// llmConfig assembles gateway settings from flags, config, secrets and
// the conventional environment variable, in that order.
func llmConfig(cmd *cobra.Command) types.LLMConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("llm.model")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	apiKey := viper.GetString("llm.api_key")
	apiKey = secretDefault("openai-api-key", apiKey)
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	baseURL := viper.GetString("llm.base_url")
	baseURL = secretDefault("openai-base-url", baseURL)

	return types.LLMConfig{
		Model:      model,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		MaxRetries: viper.GetInt("llm.max_retries"),
		Timeout:    viper.GetDuration("llm.timeout"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
