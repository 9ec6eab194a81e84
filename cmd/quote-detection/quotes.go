// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quote-detection/internal/quote"
	"github.com/pdiddy/quote-detection/internal/rules"
	"github.com/pdiddy/quote-detection/internal/store"
	"github.com/pdiddy/quote-detection/pkg/types"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Detect quotations in a parsed corpus",
	Long: `Quotes reads a CoNLL-CSV corpus, matches the quote and name patterns of
the rules file against every article, and writes one CSV record per quote:
proposition start and end, author, author head and whether the quote is
direct. Paragraphs that continue a direct quote without a new cue are
reported as quotes of the same author.

Short author mentions ("Virtanen", "hän") are rewritten to the fullest name
mentioned earlier in the same article unless --no-resolve is given.

With --db the records are also stored in the SQLite quote database for the
store command.`,
	RunE: runQuotes,
}

func runQuotes(cmd *cobra.Command, args []string) error {
	cfg := quotesConfig(cmd)
	ctx := context.Background()

	r, err := rules.LoadOrDefault(cfg.RulesFile, "quotes")
	if err != nil {
		return err
	}

	reader, in, err := openInput(cfg.InputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(cfg.OutputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := quote.NewCSVWriter(out)
	if err != nil {
		return err
	}

	var (
		db    *store.Store
		runID string
	)
	if cfg.Database != "" {
		db, err = store.Open(types.StoreConfig{Database: cfg.Database})
		if err != nil {
			return err
		}
		defer db.Close()
		if runID, err = db.BeginRun(ctx, cfg.InputFile, cfg.RulesFile); err != nil {
			return err
		}
	}

	detector := quote.NewDetector(r, quote.Options{Resolve: cfg.Resolve, Logger: logger})

	var summary quote.Summary
	err = process(ctx, reader, cfg.Workers, detector.Detect, func(res quote.Result) error {
		summary.Documents++
		summary.Add(res.Stats)
		logger.Info("processed article", "articleId", res.ArticleID, "quotes", len(res.Records))

		if err := w.Write(res.Records); err != nil {
			return err
		}
		if db != nil {
			return db.SaveArticle(ctx, runID, res.ArticleID, res.Records)
		}
		return nil
	})
	summary.Dropped = reader.Stats().Dropped

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", summary)
	if runID != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "stored run %s in %s\n", runID, cfg.Database)
	}
	return err
}

func quotesConfig(cmd *cobra.Command) types.QuotesConfig {
	cfg := types.QuotesConfig{
		InputConfig: types.InputConfig{InputFile: viper.GetString("quotes.input_file")},
		RulesConfig: types.RulesConfig{RulesFile: viper.GetString("quotes.rules_file")},
		OutputFile:  viper.GetString("quotes.output_file"),
		Resolve:     viper.GetBool("quotes.resolve"),
		Workers:     viper.GetInt("quotes.workers"),
		Database:    viper.GetString("quotes.database"),
	}
	if noResolve, _ := cmd.Flags().GetBool("no-resolve"); noResolve {
		cfg.Resolve = false
	}
	return cfg
}

func init() {
	f := quotesCmd.Flags()
	f.StringP("input-file", "i", "", "CoNLL-CSV corpus to read")
	f.StringP("rules-file", "r", "", "YAML rules file (default: built-in quote rules)")
	f.StringP("output-file", "o", "", "CSV output file (default: stdout)")
	f.Bool("no-resolve", false, "keep author names as written instead of resolving them")
	f.Int("workers", 1, "number of articles processed concurrently")
	f.String("db", "", "also store the quotes in this SQLite database")

	viper.BindPFlag("quotes.input_file", f.Lookup("input-file"))
	viper.BindPFlag("quotes.rules_file", f.Lookup("rules-file"))
	viper.BindPFlag("quotes.output_file", f.Lookup("output-file"))
	viper.BindPFlag("quotes.workers", f.Lookup("workers"))
	viper.BindPFlag("quotes.database", f.Lookup("db"))

	rootCmd.AddCommand(quotesCmd)
}
