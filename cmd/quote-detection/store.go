// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quote-detection/internal/store"
	"github.com/pdiddy/quote-detection/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query the quote database (retrieve, export, runs)",
	Long: `Store reads the SQLite quote database written by quotes --db. Use
subcommands to search quotes, export them, or list detection runs.`,
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Search stored quotes with full-text search and filters",
	Long: `Retrieve searches quote text and authors with FTS5 full-text search,
structured filters (article, author, direct), or both.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --article, --author, or --direct")
	}

	db, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatRetrieveOutput(w io.Writer, results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-11s  %-24s  %-6s  %s\n",
		"Rank", "Article", "Span", "Author", "Direct", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		text := truncate(r.Text, 40)
		author := truncate(r.Author, 24)
		span := r.StartSentenceID + "-" + r.StartWordID + ":" + r.EndSentenceID + "-" + r.EndWordID
		fmt.Fprintf(w, "%-4d  %-12s  %-11s  %-24s  %-6t  %s\n",
			i+1, r.ArticleID, span, author, r.Direct, text)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored quotes to YAML or JSON",
	Long: `Export writes the quote database (or a filtered subset) together with
the list of runs to a YAML or JSON file. Supports the same filters as
retrieve.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output-file")
	if output == "" {
		output = "quotes-export." + format
	}

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	db, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	switch format {
	case "yaml":
		err = db.ExportYAML(context.Background(), output, opts)
	case "json":
		err = db.ExportJSON(context.Background(), output, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
	return nil
}

// --- runs subcommand ---

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List detection runs recorded in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(storeConfig())
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.Runs(context.Background())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s  %-30s  %d quotes\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.InputFile, r.Quotes)
		}
		return nil
	},
}

// --- shared helpers ---

func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		Database:   viper.GetString("store.database"),
		MaxResults: viper.GetInt("store.max_results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (store.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	article, _ := cmd.Flags().GetString("article")
	author, _ := cmd.Flags().GetString("author")
	direct, _ := cmd.Flags().GetString("direct")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Query:      queryText,
		ArticleID:  article,
		Author:     author,
		MaxResults: limit,
	}
	if direct != "" {
		d, err := strconv.ParseBool(direct)
		if err != nil {
			return opts, fmt.Errorf("invalid --direct %q: use true or false", direct)
		}
		opts.Direct = &d
	}
	return opts, nil
}

func addFilterFlags(cmd *cobra.Command, purpose string) {
	cmd.Flags().String("query", "", "full-text search query"+purpose)
	cmd.Flags().String("article", "", "filter by article ID"+purpose)
	cmd.Flags().String("author", "", "filter by author substring"+purpose)
	cmd.Flags().String("direct", "", "filter by direct flag (true or false)"+purpose)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	pf := storeCmd.PersistentFlags()
	pf.String("db", "quotes.db", "SQLite quote database")
	pf.Int("max-results", 20, "maximum number of query results")
	viper.BindPFlag("store.database", pf.Lookup("db"))
	viper.BindPFlag("store.max_results", pf.Lookup("max-results"))

	// Retrieve flags.
	addFilterFlags(storeRetrieveCmd, "")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	addFilterFlags(storeExportCmd, " for partial export")
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().StringP("output-file", "o", "", "export file (default: quotes-export.<format>)")

	// Wire subcommands.
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeRunsCmd)

	rootCmd.AddCommand(storeCmd)
}
