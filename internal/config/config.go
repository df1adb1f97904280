// Package config loads engine defaults for cmd/gospread: the numeric
// serialization precision, the default persistence path, and a
// recursion-depth warning threshold for pathologically deep reference
// chains (see spec's note that deep sheets may need an explicit work
// stack). Grounded on
// github.com/Sumatoshi-tech/codefang/internal/config's viper.New +
// SetDefault + SetEnvPrefix + AutomaticEnv shape.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".gospread"
	configType = "yaml"
	envPrefix  = "GOSPREAD"
)

// Default values applied before any config file or environment
// override is consulted.
const (
	DefaultNumberPrecision   = 6
	DefaultPersistPath       = "sheet.gospread"
	DefaultRecursionWarnDepth = 10000
)

// Config holds cmd/gospread's tunables.
type Config struct {
	NumberPrecision   int    `mapstructure:"number_precision"`
	PersistPath       string `mapstructure:"persist_path"`
	RecursionWarnDepth int   `mapstructure:"recursion_warn_depth"`
	NoColor           bool   `mapstructure:"no_color"`
}

// Validate rejects settings that would make the engine misbehave
// silently.
func (c *Config) Validate() error {
	if c.NumberPrecision < 0 {
		return errors.New("config: number_precision must be non-negative")
	}
	if c.PersistPath == "" {
		return errors.New("config: persist_path must not be empty")
	}
	if c.RecursionWarnDepth <= 0 {
		return errors.New("config: recursion_warn_depth must be positive")
	}
	return nil
}

// Load reads configuration from an explicit file (if configPath is
// non-empty), or else from ./.gospread.yaml or $HOME/.gospread.yaml,
// layering environment variables (GOSPREAD_*) and hard-coded defaults
// underneath. A config file missing from the search paths is not an
// error; an explicit configPath that cannot be read is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("number_precision", DefaultNumberPrecision)
	v.SetDefault("persist_path", DefaultPersistPath)
	v.SetDefault("recursion_warn_depth", DefaultRecursionWarnDepth)
	v.SetDefault("no_color", false)
}
