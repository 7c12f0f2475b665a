package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docrank/internal/collection"
	"github.com/dgallion1/docrank/internal/logger"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyse every collection below the input directory",
	Long: `Find every challenge1b_input.json below the input directory, analyse the
documents it lists (resolved under the collection's PDFs directory) and write
one <collection>_output.json per collection to the output directory.

A collection that cannot be loaded or analysed is logged and skipped; the
command fails at the end if any collection failed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()
		return runCollections(cmd.Context(), e)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input-dir", "i", "", "directory searched for collections")
	runCmd.Flags().StringP("output-dir", "o", "", "directory results are written to")
	runCmd.Flags().StringP("format", "f", "", "output format: json or yaml")

	viper.BindPFlag("input-dir", runCmd.Flags().Lookup("input-dir"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("output-format", runCmd.Flags().Lookup("format"))
}

func runCollections(ctx context.Context, e *env) error {
	format, err := output.ParseFormat(e.cfg.OutputFormat)
	if err != nil {
		return err
	}

	inputs, err := collection.Discover(e.cfg.InputDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		e.log.Warn("no input configuration files found", zap.String("input_dir", e.cfg.InputDir))
		return nil
	}
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	failed := 0
	for _, path := range inputs {
		log := e.log.With(zap.String("collection", path))
		log.Info("processing collection")

		name, err := processCollection(ctx, e, path, format)
		if err != nil {
			log.Error("collection failed", zap.Error(err))
			failed++
			continue
		}
		log.Info("generated output", zap.String("file", name))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d collections failed", failed, len(inputs))
	}
	return nil
}

// processCollection analyses the collection configured at path and writes its
// result document. A collection that fails still gets a result document
// carrying the error, and the error is returned.
func processCollection(ctx context.Context, e *env, path string, format output.Format) (string, error) {
	name := filepath.Join(e.cfg.OutputDir, output.FileName(collection.NameOf(path), format))

	in, doc, runErr := analyzeCollection(ctx, e, path)
	if runErr != nil {
		doc = output.Failed(in, runErr, time.Now())
	}
	if err := writeDocument(name, doc, format); err != nil {
		return "", errors.Join(runErr, err)
	}
	return name, runErr
}

func analyzeCollection(ctx context.Context, e *env, path string) (output.Input, output.Document, error) {
	col, err := collection.Load(path)
	if err != nil {
		return output.Input{}, output.Document{}, err
	}
	e.log.Info("collection loaded",
		zap.String("persona", logger.Truncate(col.Persona, 80)),
		zap.String("job", logger.Truncate(col.Job, 120)),
		zap.Int("documents", len(col.Documents)),
	)

	sources := make([]pipeline.Source, len(col.Documents))
	for i, d := range col.Documents {
		sources[i] = pipeline.Source{ID: d.Filename, Path: col.DocumentPath(d)}
	}

	in := output.Input{Documents: col.DocumentNames(), Persona: col.Persona, Job: col.Job}
	doc, err := analyze(ctx, e, sources, in)
	return in, doc, err
}

func writeDocument(name string, doc output.Document, format output.Format) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := output.Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// analyze loads sources and runs them through the analyser.
func analyze(ctx context.Context, e *env, sources []pipeline.Source, in output.Input) (output.Document, error) {
	loaded, err := e.loader.Load(ctx, sources)
	if err != nil {
		return output.Document{}, err
	}

	res, err := e.analyzer.Run(ctx, pipeline.Request{
		Persona:   in.Persona,
		Job:       in.Job,
		Documents: loaded.Documents,
		Reports:   loaded.Reports,
	})
	if err != nil {
		return output.Document{}, fmt.Errorf("analysing: %w", err)
	}

	e.loader.Timings().Log(e.log)
	for _, r := range loaded.AllReports() {
		snap := r.Snapshot()
		e.log.Debug("document report",
			zap.String("doc_id", snap.DocID),
			zap.String("status", string(snap.Status)),
			zap.Int("blocks", snap.Blocks),
			zap.Int("sections", snap.Sections),
			zap.String("language", snap.Language),
			zap.String("content_hash", snap.ContentHash),
			zap.Strings("errors", snap.Errors),
		)
	}

	return output.Build(in, res, time.Now()), nil
}
