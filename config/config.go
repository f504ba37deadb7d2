package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the lexis tool.
type Config struct {
	NLP     NLPConfig     `yaml:"nlp"`
	Library LibraryConfig `yaml:"library"`
	Batch   BatchConfig   `yaml:"batch"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// NLPConfig selects the language backend.
type NLPConfig struct {
	Backend string `yaml:"backend"` // "prose" or "basic"
}

// LibraryConfig holds the document library location.
type LibraryConfig struct {
	Path string `yaml:"path"` // relative paths resolve against the project dir
}

// BatchConfig holds directory analysis configuration.
type BatchConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Workers  int      `yaml:"workers"`
}

// CacheConfig holds report cache configuration.
type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

// OutputConfig holds report rendering configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json" or "yaml"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// TracingConfig holds span export configuration.
type TracingConfig struct {
	Output string `yaml:"output"` // file for JSON spans, "-" for stderr, empty disables
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NLP: NLPConfig{
			Backend: "prose",
		},
		Library: LibraryConfig{
			Path: filepath.Join(".lexis", "library.db"),
		},
		Batch: BatchConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.text"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/vendor/**", "**/.lexis/**"},
			Workers:  runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Size: 100,
			TTL:  5 * time.Minute,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for lexis.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "lexis.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".lexis", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// ApplyEnv loads dir/.env when present and lets LEXIS_* variables override
// file settings. Variables already set in the environment win over .env.
func (c *Config) ApplyEnv(dir string) error {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	c.NLP.Backend = getEnv("LEXIS_NLP_BACKEND", c.NLP.Backend)
	c.Library.Path = getEnv("LEXIS_LIBRARY_PATH", c.Library.Path)
	c.Batch.Workers = getEnvInt("LEXIS_BATCH_WORKERS", c.Batch.Workers)
	c.Output.Format = getEnv("LEXIS_OUTPUT_FORMAT", c.Output.Format)
	c.Logging.Level = getEnv("LEXIS_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LEXIS_LOG_FORMAT", c.Logging.Format)
	c.Tracing.Output = getEnv("LEXIS_TRACE_OUTPUT", c.Tracing.Output)
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LibraryPath returns the path to the library database.
func (c *Config) LibraryPath(dir string) string {
	if filepath.IsAbs(c.Library.Path) {
		return c.Library.Path
	}
	return filepath.Join(dir, c.Library.Path)
}

// EnsureDir ensures the parent directory of path exists.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
