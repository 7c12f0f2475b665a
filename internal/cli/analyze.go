package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzePersona string
	analyzeJob     string
	analyzeFormat  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] file...",
	Short: "Rank the sections of the given files and print the result",
	Long: `Analyse an ad hoc set of files without a collection configuration. Files
are ingested in the order given, which also decides ties between equally
relevant sections. The result document is printed to stdout.

Examples:
  docrank analyze --persona "Investment Analyst" \
    --job "Analyze revenue trends" report-2023.pdf report-2024.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(analyzeFormat)
		if err != nil {
			return err
		}
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()

		in := output.Input{Persona: analyzePersona, Job: analyzeJob}
		sources := make([]pipeline.Source, 0, len(args))
		for _, path := range args {
			if !parser.IsSupportedExtension(path) {
				e.log.Warn("unsupported file type, it will be reported as failed", zap.String("path", path))
			}
			sources = append(sources, pipeline.Source{ID: filepath.Base(path), Path: path})
			in.Documents = append(in.Documents, filepath.Base(path))
		}

		doc, err := analyze(cmd.Context(), e, sources, in)
		if err != nil {
			return err
		}
		if err := output.Write(cmd.OutOrStdout(), doc, format); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzePersona, "persona", "p", "", "persona description, e.g. \"PhD Researcher in Computational Biology\"")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "job to be done")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format: json or yaml")
}
