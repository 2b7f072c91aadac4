package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" envconfig:"DATASET"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// DatasetConfig controls how the season tables are read
type DatasetConfig struct {
	Format   string `yaml:"format" envconfig:"FORMAT" default:"csv"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK" default:"season.xlsx"`
	GameFrom int    `yaml:"game_from" envconfig:"GAME_FROM" default:"0"`
	GameTo   int    `yaml:"game_to" envconfig:"GAME_TO" default:"0"`
}

// ReportConfig controls report generation
type ReportConfig struct {
	FocusGame      int  `yaml:"focus_game" envconfig:"FOCUS_GAME" default:"0"`
	TopContestants int  `yaml:"top_contestants" envconfig:"TOP_CONTESTANTS" default:"10"`
	Charts         bool `yaml:"charts" envconfig:"CHARTS" default:"true"`
	Narrative      bool `yaml:"narrative" envconfig:"NARRATIVE" default:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// TracingConfig contains trace exporter configuration
type TracingConfig struct {
	Exporter string `yaml:"exporter" envconfig:"EXPORTER" default:"none"`
	Pretty   bool   `yaml:"pretty" envconfig:"PRETTY" default:"false"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from .env, environment variables and config file
func Load() (*Config, error) {
	// A missing .env file is not an error; real environment wins either way
	_ = godotenv.Load()

	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SHOWSCORE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Resolve relative paths
	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Dataset.Format == "" {
		envConfig.Dataset.Format = fileConfig.Dataset.Format
	}
	if envConfig.Dataset.Workbook == "" {
		envConfig.Dataset.Workbook = fileConfig.Dataset.Workbook
	}
	if envConfig.Dataset.GameFrom == 0 {
		envConfig.Dataset.GameFrom = fileConfig.Dataset.GameFrom
	}
	if envConfig.Dataset.GameTo == 0 {
		envConfig.Dataset.GameTo = fileConfig.Dataset.GameTo
	}
	if envConfig.Report.FocusGame == 0 {
		envConfig.Report.FocusGame = fileConfig.Report.FocusGame
	}
	if envConfig.Report.TopContestants == 0 {
		envConfig.Report.TopContestants = fileConfig.Report.TopContestants
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Tracing.Exporter == "" {
		envConfig.Tracing.Exporter = fileConfig.Tracing.Exporter
	}

	return envConfig
}

// resolvePaths sets up the executable directory from the centralized paths system
func (c *Config) resolvePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	c.Paths.ExecutableDir = paths.ExecutableDir

	return nil
}

// EnsureDirectories creates all directories the application writes to
func (c *Config) EnsureDirectories() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	paths.LogPathResolution()

	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Dataset.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid dataset format %q: must be csv or xlsx", c.Dataset.Format)
	}

	if c.Dataset.GameFrom < 0 || c.Dataset.GameTo < 0 {
		return fmt.Errorf("game bounds cannot be negative: from=%d to=%d", c.Dataset.GameFrom, c.Dataset.GameTo)
	}
	if c.Dataset.GameFrom > 0 && c.Dataset.GameTo > 0 && c.Dataset.GameFrom > c.Dataset.GameTo {
		return fmt.Errorf("game range is inverted: from=%d to=%d", c.Dataset.GameFrom, c.Dataset.GameTo)
	}

	if c.Report.TopContestants <= 0 {
		return fmt.Errorf("top contestants must be positive: %d", c.Report.TopContestants)
	}
	if c.Report.FocusGame < 0 {
		return fmt.Errorf("focus game cannot be negative: %d", c.Report.FocusGame)
	}

	// JSON is the only supported log format
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	switch c.Logging.Output {
	case "stdout", "file", "both":
	case "":
		c.Logging.Output = "both"
	default:
		return fmt.Errorf("invalid logging output %q: must be stdout, file or both", c.Logging.Output)
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	switch c.Tracing.Exporter {
	case "none", "stdout":
	case "":
		c.Tracing.Exporter = "none"
	default:
		return fmt.Errorf("invalid tracing exporter %q: must be none or stdout", c.Tracing.Exporter)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Format:   "csv",
			Workbook: DefaultWorkbookName,
		},
		Report: ReportConfig{
			TopContestants: 10,
			Charts:         true,
			Narrative:      true,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Tracing: TracingConfig{
			Exporter: "none",
		},
		Paths: PathsConfig{
			DataDir: DefaultDataDir,
			LogsDir: DefaultLogsDir,
		},
	}
}
