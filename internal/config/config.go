package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/dgallion1/docrank/internal/header"
	"github.com/dgallion1/docrank/internal/langdetect"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/segment"
	"github.com/dgallion1/docrank/internal/subsection"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DOCRANK_TOP_SECTIONS.
const EnvPrefix = "DOCRANK"

type Config struct {
	// Worker pool
	Workers int `mapstructure:"workers"`

	// Segmentation and headings
	MinBlockLength  int `mapstructure:"min-block-length"`
	HeaderMaxLength int `mapstructure:"header-max-length"`

	// Sub-section extraction
	TopSections           int `mapstructure:"top-sections"`
	SubsectionsPerSection int `mapstructure:"subsections-per-section"`
	MinChunkLength        int `mapstructure:"min-chunk-length"`

	// Output
	OutputFormat string `mapstructure:"output-format"`
	InputDir     string `mapstructure:"input-dir"`
	OutputDir    string `mapstructure:"output-dir"`

	// PDF
	PDFFallbackPdftotext bool `mapstructure:"pdf-fallback-pdftotext"`

	LanguageDetection LanguageDetection `mapstructure:"language-detection"`
}

type LanguageDetection struct {
	Enabled   bool     `mapstructure:"enabled"`
	Languages []string `mapstructure:"languages"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:               runtime.NumCPU(),
		MinBlockLength:        segment.DefaultMinLength,
		HeaderMaxLength:       header.DefaultMaxLength,
		TopSections:           subsection.DefaultTopSections,
		SubsectionsPerSection: subsection.DefaultPerSection,
		MinChunkLength:        subsection.DefaultMinChunkLength,
		OutputFormat:          string(output.FormatJSON),
		InputDir:              "input",
		OutputDir:             "output",
		PDFFallbackPdftotext:  true,
		LanguageDetection: LanguageDetection{
			Enabled:   true,
			Languages: append([]string(nil), langdetect.DefaultLanguages...),
		},
	}
}

// SetDefaults registers Default on v so that config files, environment and
// flags only need to name what they change.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("workers", d.Workers)
	v.SetDefault("min-block-length", d.MinBlockLength)
	v.SetDefault("header-max-length", d.HeaderMaxLength)
	v.SetDefault("top-sections", d.TopSections)
	v.SetDefault("subsections-per-section", d.SubsectionsPerSection)
	v.SetDefault("min-chunk-length", d.MinChunkLength)
	v.SetDefault("output-format", d.OutputFormat)
	v.SetDefault("input-dir", d.InputDir)
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("pdf-fallback-pdftotext", d.PDFFallbackPdftotext)
	v.SetDefault("language-detection.enabled", d.LanguageDetection.Enabled)
	v.SetDefault("language-detection.languages", d.LanguageDetection.Languages)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals v. Non-positive sizes fall back to their defaults.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	d := Default()
	if cfg.Workers <= 0 {
		cfg.Workers = d.Workers
	}
	if cfg.MinBlockLength <= 0 {
		cfg.MinBlockLength = d.MinBlockLength
	}
	if cfg.HeaderMaxLength <= 0 {
		cfg.HeaderMaxLength = d.HeaderMaxLength
	}
	if cfg.TopSections <= 0 {
		cfg.TopSections = d.TopSections
	}
	if cfg.SubsectionsPerSection <= 0 {
		cfg.SubsectionsPerSection = d.SubsectionsPerSection
	}
	if cfg.MinChunkLength <= 0 {
		cfg.MinChunkLength = d.MinChunkLength
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = d.OutputFormat
	}
	if len(cfg.LanguageDetection.Languages) == 0 {
		cfg.LanguageDetection.Languages = d.LanguageDetection.Languages
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := output.ParseFormat(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.LanguageDetection.Enabled {
		if len(c.LanguageDetection.Languages) < 2 {
			errs = append(errs, errors.New("language-detection.languages needs at least two languages"))
		}
		for _, name := range c.LanguageDetection.Languages {
			if _, ok := langdetect.Lookup(name); !ok {
				errs = append(errs, fmt.Errorf("language-detection.languages: unknown language %q", name))
			}
		}
	}
	return errors.Join(errs...)
}
