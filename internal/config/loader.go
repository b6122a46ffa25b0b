package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidWorkers indicates a non-positive worker count.
var ErrInvalidWorkers = errors.New("scan.workers must be positive")

// Load loads configuration for a project root with the following priority
// (highest to lowest):
//  1. Environment variables (CONFIGDOC_*)
//  2. Config file
//  3. Default values
//
// When cfgFile is non-empty that exact file is used and must be readable.
// Otherwise .configdoc.yml / .configdoc.yaml is searched in rootDir, and a
// missing file is not an error; defaults and environment apply.
func Load(rootDir, cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".configdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(rootDir)
	}

	v.SetEnvPrefix("CONFIGDOC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("scan.workers")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("scan.workers", defaults.Scan.Workers)
}

// Validate checks that the configuration is usable.
func Validate(cfg *Config) error {
	if cfg.Scan.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, cfg.Scan.Workers)
	}
	return nil
}
