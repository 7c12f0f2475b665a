package cli

import (
	"errors"
	"fmt"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/langdetect"
	"github.com/dgallion1/docrank/internal/logger"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/dgallion1/docrank/internal/subsection"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "docrank"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "docrank ranks the sections of a document collection for a persona and a job to be done",
		Long: `docrank extracts the text of a document collection, splits it into
sections under their headings and ranks every section by how well it serves
a persona and the task they want to get done. The best sentences of the top
sections are returned as refined sub-sections.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is docrank.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel workers (default is the number of CPUs)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must exist.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// env is what every command needs to analyse documents.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	loader   *pipeline.Loader
	analyzer *pipeline.Analyzer
}

func newEnv() (*env, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug("configuration", zap.Any("config", cfg))

	var detector pipeline.LanguageDetector
	if cfg.LanguageDetection.Enabled {
		d, err := langdetect.New(cfg.LanguageDetection.Languages)
		if err != nil {
			return nil, fmt.Errorf("language detection: %w", err)
		}
		detector = d
	}

	return &env{
		cfg: cfg,
		log: log,
		loader: pipeline.NewLoader(
			parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
			detector,
			cfg.Workers,
			log,
		),
		analyzer: pipeline.NewAnalyzer(pipeline.Options{
			Workers:         cfg.Workers,
			MinBlockLength:  cfg.MinBlockLength,
			HeaderMaxLength: cfg.HeaderMaxLength,
			Subsections: subsection.Options{
				TopSections:    cfg.TopSections,
				PerSection:     cfg.SubsectionsPerSection,
				MinChunkLength: cfg.MinChunkLength,
			},
		}, log),
	}, nil
}
