// Package config loads the optional launcher configuration file. Values in the
// file act as defaults; command line flags override them.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type PublishConfig struct {
	// Target in the form user@host[:port]/path. Empty disables publishing.
	Target  string        `mapstructure:"target"`
	KeyPath string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Format   string        `mapstructure:"format"`
	Select   []string      `mapstructure:"select"`
	Output   string        `mapstructure:"output"`
	RealTime bool          `mapstructure:"realTime"`
	Publish  PublishConfig `mapstructure:"publish"`
}

func Defaults() Config {
	return Config{
		Format: "text",
		Select: []string{},
		Publish: PublishConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Loads the configuration file at path. An empty path returns the defaults.
// Environment variables prefixed with JESTER_ override file values, e.g.
// JESTER_FORMAT=json.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("format", defaults.Format)
	v.SetDefault("select", defaults.Select)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("realTime", defaults.RealTime)
	v.SetDefault("publish.target", defaults.Publish.Target)
	v.SetDefault("publish.key", defaults.Publish.KeyPath)
	v.SetDefault("publish.timeout", defaults.Publish.Timeout)

	v.SetEnvPrefix("jester")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file '%s'", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode configuration")
	}

	return cfg, nil
}
