package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, 2.5, cfg.Analysis.LowRatingThreshold)
	assert.Equal(t, 10, cfg.Analysis.CompanyMinCount)
	assert.Equal(t, 3, cfg.Analysis.MakerMinCount)
	assert.Equal(t, 10, cfg.Analysis.OriginMinCount)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COCOA_LOGGING_LEVEL", "debug")
	t.Setenv("COCOA_ANALYSIS_COMPANY_MIN_COUNT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Analysis.CompanyMinCount)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: warn
  format: text
paths:
  data_dir: /tmp/cocoa-data
analysis:
  low_rating_threshold: 3.0
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("COCOA_CONFIG_FILE", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	// File values override the defaults.
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/tmp/cocoa-data", cfg.Paths.DataDir)
	assert.Equal(t, 3.0, cfg.Analysis.LowRatingThreshold)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, 10, cfg.Analysis.CompanyMinCount)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: warn
analysis:
  low_rating_threshold: 3.0
  maker_min_count: 5
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("COCOA_CONFIG_FILE", configPath)
	t.Setenv("COCOA_ANALYSIS_LOW_RATING_THRESHOLD", "2.0")

	cfg, err := Load()
	require.NoError(t, err)

	// The explicitly-set variable wins; other file values stay.
	assert.Equal(t, 2.0, cfg.Analysis.LowRatingThreshold)
	assert.Equal(t, 5, cfg.Analysis.MakerMinCount)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{name: "bad level", env: "COCOA_LOGGING_LEVEL", value: "verbose"},
		{name: "bad format", env: "COCOA_LOGGING_FORMAT", value: "xml"},
		{name: "bad output", env: "COCOA_LOGGING_OUTPUT", value: "syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_GetLogPath(t *testing.T) {
	cfg := &Config{Paths: PathsConfig{LogsDir: "logs"}}
	assert.Equal(t, filepath.Join("logs", "run.log"), cfg.GetLogPath("run.log"))
}

func TestValidate_Thresholds(t *testing.T) {
	cfg := Config{
		Logging:  LoggingConfig{Level: "info", Format: "json", Output: "console"},
		Analysis: AnalysisConfig{LowRatingThreshold: -1},
	}
	assert.Error(t, cfg.validate())

	cfg.Analysis.LowRatingThreshold = 2.5
	cfg.Analysis.OriginMinCount = -1
	assert.Error(t, cfg.validate())

	cfg.Analysis.OriginMinCount = 10
	assert.NoError(t, cfg.validate())
}
