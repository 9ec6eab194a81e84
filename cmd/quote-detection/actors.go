// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quote-detection/internal/actor"
	"github.com/pdiddy/quote-detection/internal/rules"
	"github.com/pdiddy/quote-detection/pkg/types"
)

var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "List people mentioned with a role and an organisation",
	Long: `Actors reads a CoNLL-CSV corpus and matches the actor patterns of the
rules file, such as "Nokian toimitusjohtaja Pekka Lundmark", writing one CSV
record per person with the name, role and organisation.`,
	RunE: runActors,
}

func runActors(cmd *cobra.Command, args []string) error {
	cfg := types.ActorsConfig{
		InputConfig: types.InputConfig{InputFile: viper.GetString("actors.input_file")},
		RulesConfig: types.RulesConfig{RulesFile: viper.GetString("actors.rules_file")},
		OutputFile:  viper.GetString("actors.output_file"),
	}

	r, err := rules.LoadOrDefault(cfg.RulesFile, "actors")
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

	w, err := actor.NewCSVWriter(out)
	if err != nil {
		return err
	}

	extractor := actor.NewExtractor(r, logger)
	var documents, actors, skipped int
	err = process(context.Background(), reader, 1, extractor.Extract, func(res actor.Result) error {
		documents++
		actors += len(res.Records)
		skipped += res.Skipped
		return w.Write(res.Records)
	})

	fmt.Fprintf(cmd.ErrOrStderr(), "documents: %d, dropped: %d, actors: %d, skipped: %d\n",
		documents, reader.Stats().Dropped, actors, skipped)
	return err
}

func init() {
	f := actorsCmd.Flags()
	f.StringP("input-file", "i", "", "CoNLL-CSV corpus to read")
	f.StringP("rules-file", "r", "", "YAML rules file (default: built-in actor rules)")
	f.StringP("output-file", "o", "", "CSV output file (default: stdout)")

	viper.BindPFlag("actors.input_file", f.Lookup("input-file"))
	viper.BindPFlag("actors.rules_file", f.Lookup("rules-file"))
	viper.BindPFlag("actors.output_file", f.Lookup("output-file"))

	rootCmd.AddCommand(actorsCmd)
}
