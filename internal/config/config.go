package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalysisConfig contains the aggregation thresholds. The minimum counts
// gate which grouping keys appear in the aggregate tables; company and
// origin minimums are strict (count must exceed them), the maker minimum
// is inclusive.
type AnalysisConfig struct {
	LowRatingThreshold float64 `yaml:"low_rating_threshold" envconfig:"LOW_RATING_THRESHOLD"`
	CompanyMinCount    int     `yaml:"company_min_count" envconfig:"COMPANY_MIN_COUNT"`
	MakerMinCount      int     `yaml:"maker_min_count" envconfig:"MAKER_MIN_COUNT"`
	OriginMinCount     int     `yaml:"origin_min_count" envconfig:"ORIGIN_MIN_COUNT"`
}

// defaultConfig returns the built-in defaults. They are applied before the
// file and environment layers so either layer can override any field.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/cocoalens.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
		Analysis: AnalysisConfig{
			LowRatingThreshold: 2.5,
			CompanyMinCount:    10,
			MakerMinCount:      3,
			OriginMinCount:     10,
		},
	}
}

// Load builds the configuration in precedence order: built-in defaults,
// then the YAML config file (when present), then environment variables.
// envconfig only assigns fields whose COCOA_* variable is actually set, so
// file values survive unless the environment overrides them explicitly.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := applyFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("COCOA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyFile overlays the YAML file onto cfg. Keys absent from the document
// leave the current value untouched.
func applyFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the path to the YAML config file, honoring the
// COCOA_CONFIG_FILE override.
func getConfigFilePath() string {
	if path := os.Getenv("COCOA_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// GetLogPath returns the path for a log file inside the logs directory.
func (c *Config) GetLogPath(name string) string {
	return filepath.Join(c.Paths.LogsDir, name)
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	if c.Analysis.LowRatingThreshold <= 0 {
		return fmt.Errorf("low rating threshold must be positive")
	}
	if c.Analysis.CompanyMinCount < 0 || c.Analysis.MakerMinCount < 0 || c.Analysis.OriginMinCount < 0 {
		return fmt.Errorf("minimum counts must not be negative")
	}

	return nil
}
