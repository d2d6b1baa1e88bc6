// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dpe-reader CLI.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dpe-reader/internal/secrets"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "dpe-reader/0.1"
	defaultMaxRetries = 5
)

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// logger is configured in the root PersistentPreRunE.
var logger = slog.Default()

// secretDefault returns fallback when set, or the secret stored under key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets.Lookup(key); ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the dpe-reader CLI.
var rootCmd = &cobra.Command{
	Use:   "dpe-reader",
	Short: "Extract a flat summary from DPE energy-performance XML documents",
	Long: `dpe-reader reads French energy-performance diagnostic (DPE) XML
documents and produces a normalized record: identity, dwelling
characteristics, consumption and emission grades, heating and hot water,
heat-loss breakdown and recommended renovation packs.

Use parse to read documents from files, standard input or URLs, and grade
to classify raw consumption or emission values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"))
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
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dpe-reader.yaml or ~/.config/dpe-reader/dpe-reader.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages to stderr")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding credential files")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))

	viper.SetDefault("source.timeout", defaultTimeout)
	viper.SetDefault("source.user_agent", defaultUserAgent)
	viper.SetDefault("source.max_retries", defaultMaxRetries)
	viper.SetDefault("source.max_document_bytes", types.DefaultMaxDocumentBytes)
	viper.SetDefault("output.format", string(types.OutputJSON))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dpe-reader")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dpe-reader"))
		}
	}

	viper.SetEnvPrefix("DPE_READER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and flags apply.
	viper.ReadInConfig()
}

// readerConfig assembles the effective configuration from flags, environment,
// config file and secrets, in that order of precedence.
func readerConfig() types.ReaderConfig {
	return types.ReaderConfig{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("source.timeout"),
				UserAgent: viper.GetString("source.user_agent"),
			},
			MaxRetries:       viper.GetInt("source.max_retries"),
			MaxDocumentBytes: viper.GetInt64("source.max_document_bytes"),
			Token:            secretDefault(secrets.APIToken, viper.GetString("source.token")),
		},
		Output: types.OutputConfig{
			Format: types.OutputFormat(strings.ToLower(viper.GetString("output.format"))),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
