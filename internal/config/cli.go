// Package config defines the top-level CLI surface parsed by kong.
package config

import "github.com/hidio/usagegen/internal/cmd"

// LogConfig groups logging flags shared by all commands.
type LogConfig struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"USAGEGEN_LOG_LEVEL"`
	File  string `help:"Optional log file path" env:"USAGEGEN_LOG_FILE"`
}

// CLI is the root command structure. Values may come from flags,
// environment variables or layered JSON/YAML/TOML config files.
type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a configuration file" env:"USAGEGEN_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate usage table declarations"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration file utilities"`
	Version  cmd.Version       `cmd:"" help:"Print the build version"`
}
