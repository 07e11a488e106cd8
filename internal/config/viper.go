// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/planned-spending/internal/dateutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PLANSPEND"

var (
	sourceTypes   = []string{"", "yaml", "csv", "sqlite"}
	reportFormats = []string{"text", "csv", "json", "yaml"}
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Source struct {
		// Type is yaml, csv or sqlite; empty means inferred from the path.
		Type string `mapstructure:"type" yaml:"type"`
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"source" yaml:"source"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
		// AsOf is the first day of the projection, YYYY-MM-DD; empty means today.
		AsOf  string `mapstructure:"as_of" yaml:"as_of"`
		Width int    `mapstructure:"width" yaml:"width"`
	} `mapstructure:"report" yaml:"report"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// FlagBindings maps command-line flag names to the configuration keys they override.
var FlagBindings = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"source":      "source.path",
	"source-type": "source.type",
	"db":          "store.path",
	"format":      "report.format",
	"as-of":       "report.as_of",
	"width":       "report.width",
	"delimiter":   "csv.delimiter",
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// A non-empty configFile replaces the search of the standard locations.
func InitializeConfig(configFile string) (*Config, error) {
	return InitializeConfigWithFlags(configFile, nil)
}

// InitializeConfigWithFlags is InitializeConfig with the flags of flags that appear
// in FlagBindings taking precedence over every other source when set.
func InitializeConfigWithFlags(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.planned-spending")
		v.AddConfigPath(".planned-spending")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Command-line flags
	if flags != nil {
		for name, key := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// 5. Read config file; only an explicitly requested file must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source.type", "")
	v.SetDefault("source.path", "reminders.yaml")
	v.SetDefault("store.path", "planned-spending.db")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.as_of", "")
	v.SetDefault("report.width", 8)

	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !contains(sourceTypes, strings.ToLower(config.Source.Type)) {
		return fmt.Errorf("invalid source type: %s (must be 'yaml', 'csv' or 'sqlite')", config.Source.Type)
	}

	if !contains(reportFormats, strings.ToLower(config.Report.Format)) {
		return fmt.Errorf("invalid report format: %s (must be one of %s)", config.Report.Format, strings.Join(reportFormats, ", "))
	}

	if _, err := config.AsOfDate(); err != nil {
		return err
	}

	if config.Report.Width < 1 || config.Report.Width > 40 {
		return fmt.Errorf("report.width must be between 1 and 40, got: %d", config.Report.Width)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// AsOfDate returns the configured projection start, or today when none is set.
func (c *Config) AsOfDate() (time.Time, error) {
	if strings.TrimSpace(c.Report.AsOf) == "" {
		return dateutils.Today(), nil
	}
	d, err := dateutils.ParseDate(c.Report.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid report.as_of: %s", c.Report.AsOf)
	}
	return d, nil
}

// ValidateConfig re-validates a configuration after command-line overrides.
func ValidateConfig(config *Config) error {
	return validateConfig(config)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
