// Package config provides layered configuration loading and validation for
// the gapmap CLI and service: defaults, an optional YAML/JSON file,
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GAPMAP"

// Config holds every setting of the CLI and the collaborator service.
type Config struct {
	// Service
	Port             int           `mapstructure:"port"`
	ServiceURL       string        `mapstructure:"service_url"`
	MaxDocumentBytes int64         `mapstructure:"max_document_bytes"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`

	// Result sizes
	JobDescriptions      int `mapstructure:"job_descriptions"`
	RepositoriesPerSkill int `mapstructure:"repositories_per_skill"`
	Profiles             int `mapstructure:"profiles"`

	// Providers
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
	RapidAPIKey  string `mapstructure:"rapid_api_key"`
	GitHubToken  string `mapstructure:"github_token"`
	SerpAPIKey   string `mapstructure:"serp_api_key"`

	// Job description cache (optional)
	DatabaseURL string        `mapstructure:"database_url"`
	JobCacheTTL time.Duration `mapstructure:"job_cache_ttl"`

	Verbose bool `mapstructure:"verbose"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                 5001,
		ServiceURL:           "http://localhost:5001",
		MaxDocumentBytes:     10 << 20,
		RequestTimeout:       120 * time.Second,
		JobDescriptions:      10,
		RepositoriesPerSkill: 3,
		Profiles:             5,
		JobCacheTTL:          24 * time.Hour,
	}
}

// envAliases are the unprefixed variable names accepted for provider keys,
// checked after the GAPMAP_ one.
var envAliases = map[string][]string{
	"gemini_api_key": {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	"rapid_api_key":  {"RAPID_API_KEY"},
	"github_token":   {"GITHUB_TOKEN"},
	"serp_api_key":   {"SERP_API_KEY"},
	"database_url":   {"DATABASE_URL"},
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"port":        "port",
	"service-url": "service_url",
	"timeout":     "request_timeout",
	"database":    "database_url",
	"verbose":     "verbose",
}

// Load builds a Config. When path is empty, gapmap.yaml (or .json) is looked
// up in the working directory and in ~/.config/gapmap; a missing file is not
// an error. Flags that were set on the command line override everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("service_url", d.ServiceURL)
	v.SetDefault("max_document_bytes", d.MaxDocumentBytes)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("job_descriptions", d.JobDescriptions)
	v.SetDefault("repositories_per_skill", d.RepositoriesPerSkill)
	v.SetDefault("profiles", d.Profiles)
	v.SetDefault("gemini_model", "")
	v.SetDefault("job_cache_ttl", d.JobCacheTTL)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{key, EnvPrefix + "_" + strings.ToUpper(key)}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gapmap")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gapmap"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. Provider keys are
// not required here; each component decides how to degrade without one.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxDocumentBytes <= 0 {
		return fmt.Errorf("config error: 'max_document_bytes' must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: 'request_timeout' must be positive")
	}
	if c.JobDescriptions < 1 {
		return fmt.Errorf("config error: 'job_descriptions' must be at least 1")
	}
	if c.RepositoriesPerSkill < 0 || c.Profiles < 0 {
		return fmt.Errorf("config error: result sizes must be non-negative")
	}
	if c.JobCacheTTL < 0 {
		return fmt.Errorf("config error: 'job_cache_ttl' must be non-negative")
	}

	u, err := url.Parse(c.ServiceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: 'service_url' must be an http(s) URL, got %q", c.ServiceURL)
	}
	return nil
}
