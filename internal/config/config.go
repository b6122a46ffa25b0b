// Package config loads the configdoc tool configuration from
// .configdoc.yml with environment variable overrides.
package config

import "runtime"

// Config is the complete configdoc configuration.
type Config struct {
	Paths Paths `yaml:"paths" mapstructure:"paths"`
	Scan  Scan  `yaml:"scan" mapstructure:"scan"`
}

// Paths defines which source files are scanned and which are ignored.
type Paths struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for Go files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Scan tunes how a build pass executes.
type Scan struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // concurrent file parsers
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: Paths{
			Include: []string{"**.go"},
			Ignore:  []string{},
		},
		Scan: Scan{
			Workers: runtime.NumCPU(),
		},
	}
}
