package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromYAMLFile(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
workers: 2
top-sections: 10
subsections-per-section: 1
output-format: yaml
language-detection:
  enabled: false
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 10, cfg.TopSections)
	assert.Equal(t, 1, cfg.SubsectionsPerSection)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.False(t, cfg.LanguageDetection.Enabled)
	assert.Equal(t, Default().MinChunkLength, cfg.MinChunkLength)
}

func TestLoad_NonPositiveFallsBack(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("workers", 0)
	v.Set("top-sections", -3)
	v.Set("min-chunk-length", 0)

	cfg, err := Load(v)
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Workers, cfg.Workers)
	assert.Equal(t, d.TopSections, cfg.TopSections)
	assert.Equal(t, d.MinChunkLength, cfg.MinChunkLength)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DOCRANK_TOP_SECTIONS", "7")
	t.Setenv("DOCRANK_OUTPUT_DIR", "/tmp/out")

	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopSections)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.OutputFormat = "xml"
	cfg.LanguageDetection.Languages = []string{"english", "elvish"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "elvish")

	cfg = Default()
	cfg.LanguageDetection.Languages = []string{"english"}
	assert.Error(t, cfg.Validate())

	cfg.LanguageDetection.Enabled = false
	assert.NoError(t, cfg.Validate())
}
