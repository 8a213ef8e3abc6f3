package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

const envPrefix = "FINATLAS"

type BenchmarkSource string

const (
	SourceEmbedded BenchmarkSource = "embedded"
	SourceFile     BenchmarkSource = "file"
	SourceS3       BenchmarkSource = "s3"
	SourceSQL      BenchmarkSource = "sql"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
	Region string `mapstructure:"region"`
}

type BenchmarksConfig struct {
	Source          BenchmarkSource `mapstructure:"source"`
	Path            string          `mapstructure:"path"`
	S3              S3Config        `mapstructure:"s3"`
	DefaultCode     string          `mapstructure:"default_code"`
	DefaultFallback bool            `mapstructure:"default_fallback"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type AnalysisConfig struct {
	MissingValuePolicy string `mapstructure:"missing_value_policy"`
}

// Config is the application configuration shared by the web server and the CLI.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Benchmarks BenchmarksConfig `mapstructure:"benchmarks"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
}

// Policy parses the configured missing-value presentation policy.
func (c *Config) Policy() (domain.MissingValuePolicy, error) {
	return domain.ParseMissingValuePolicy(c.Analysis.MissingValuePolicy)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("benchmarks.source", string(SourceEmbedded))
	v.SetDefault("benchmarks.path", "")
	v.SetDefault("benchmarks.s3.bucket", "")
	v.SetDefault("benchmarks.s3.key", "")
	v.SetDefault("benchmarks.s3.region", "")
	v.SetDefault("benchmarks.default_code", "T")
	v.SetDefault("benchmarks.default_fallback", true)

	v.SetDefault("database.dsn", "")

	v.SetDefault("analysis.missing_value_policy", "null")
}

// LoadConfig reads path when given, then applies FINATLAS_* environment overrides.
// An empty path yields defaults plus environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.Benchmarks.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Benchmarks.Path == "" {
			errs = append(errs, fmt.Errorf("benchmarks.path is required for the file source"))
		}
	case SourceS3:
		if c.Benchmarks.S3.Bucket == "" || c.Benchmarks.S3.Key == "" {
			errs = append(errs, fmt.Errorf("benchmarks.s3.bucket and benchmarks.s3.key are required for the s3 source"))
		}
	case SourceSQL:
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("database.dsn is required for the sql source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown benchmarks.source %q", c.Benchmarks.Source))
	}

	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
