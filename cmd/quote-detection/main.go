// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quote-detection CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quote-detection/internal/logging"
	"github.com/pdiddy/quote-detection/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --logging-level and --logfile before any
// subcommand runs.
var (
	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
	logCloser io.Closer
)

// rootCmd is the base command for the quote-detection CLI.
var rootCmd = &cobra.Command{
	Use:   "quote-detection",
	Short: "Rule-based detection of quotes and actors in parsed news text",
	Long: `quote-detection reads news articles that have been split into
paragraphs and sentences and parsed into Universal Dependencies, finds
reported speech with dependency patterns, and writes one CSV record per
quote: where the quoted proposition starts and ends, who said it, and
whether it was quoted directly.

Subcommands: quotes detects quotations, actors lists people mentioned with
a role and an organisation, and store queries the quote database that
quotes --db fills.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, c, err := logging.New(logConfig(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger, logCloser = l, c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./quote-detection.yaml or ~/.config/quote-detection/config.yaml)")
	pf.String("logfile", "", "write logs to a rotating file instead of stderr")
	pf.StringP("logging-level", "L", "WARNING", "logging level: "+strings.Join(logging.Levels, ", "))

	viper.BindPFlag("logging.file", pf.Lookup("logfile"))
	viper.BindPFlag("logging.level", pf.Lookup("logging-level"))

	viper.SetDefault("logging.max_size_mb", 10)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("quotes.resolve", true)
	viper.SetDefault("quotes.workers", 1)
	viper.SetDefault("store.database", "quotes.db")
	viper.SetDefault("store.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quote-detection")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quote-detection"))
		}
	}

	viper.SetEnvPrefix("QUOTE_DETECTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level:      viper.GetString("logging.level"),
		File:       viper.GetString("logging.file"),
		MaxSizeMB:  viper.GetInt("logging.max_size_mb"),
		MaxBackups: viper.GetInt("logging.max_backups"),
	}
}

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
