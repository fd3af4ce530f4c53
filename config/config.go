// Package config loads gsel settings from defaults, an optional YAML file,
// GSEL_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/square/gsel/nodeset"
	"github.com/square/gsel/query"
)

// Output formats accepted by the format setting.
const (
	FormatList   = "list"
	FormatFolded = "folded"
	FormatRange  = "range"
	FormatYAML   = "yaml"
)

var formats = []string{FormatList, FormatFolded, FormatRange, FormatYAML}

// Config holds all gsel settings.
type Config struct {
	// MaxDepth bounds parenthesis nesting and bracket groups per pattern
	MaxDepth int `mapstructure:"max_depth"`
	// MaxHosts bounds the size of every expanded host set
	MaxHosts int `mapstructure:"max_hosts"`
	// MaxQueryLength bounds the query length in bytes
	MaxQueryLength int `mapstructure:"max_query_length"`
	// Maxflight is the number of queries resolved in parallel
	Maxflight int    `mapstructure:"maxflight"`
	Format    string `mapstructure:"format"`
	Debug     bool   `mapstructure:"debug"`
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("max_depth", query.DefaultLimits.MaxDepth)
	v.SetDefault("max_hosts", nodeset.DefaultLimits.MaxHosts)
	v.SetDefault("max_query_length", query.DefaultLimits.MaxQueryLength)
	v.SetDefault("maxflight", 50)
	v.SetDefault("format", FormatList)
	v.SetDefault("debug", false)
}

// Load reads the configuration into v. When path is empty gsel.yaml is
// looked up in the working directory and in $HOME/.config/gsel, and a
// missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("GSEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gsel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gsel")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("unable to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects non-positive limits and unknown formats.
func (c *Config) Validate() error {
	limits := map[string]int{
		"max_depth":        c.MaxDepth,
		"max_hosts":        c.MaxHosts,
		"max_query_length": c.MaxQueryLength,
		"maxflight":        c.Maxflight,
	}
	for key, value := range limits {
		if value < 1 {
			return fmt.Errorf("invalid config: %s must be positive, got %d", key, value)
		}
	}

	for _, format := range formats {
		if c.Format == format {
			return nil
		}
	}
	return fmt.Errorf("invalid config: unknown format %q (expected one of %s)", c.Format, strings.Join(formats, ", "))
}

// Limits returns the parser limits. MaxDepth applies both to parenthesis
// nesting and to bracket groups in a pattern.
func (c *Config) Limits() query.Limits {
	return query.Limits{
		MaxDepth:       c.MaxDepth,
		MaxQueryLength: c.MaxQueryLength,
		Pattern: nodeset.Limits{
			MaxDepth: c.MaxDepth,
			MaxHosts: c.MaxHosts,
		},
	}
}
