package cmd

// LogConfig holds the shared logging flags.
type LogConfig struct {
	Level string `help:"Log level (debug, info, warn, error)" default:"info" env:"EVGEN_LOG_LEVEL"`
	File  string `help:"Write logs to this file in addition to stderr" env:"EVGEN_LOG_FILE"`
}

// CLI is the root command structure parsed by Kong.
type CLI struct {
	Log        LogConfig `embed:"" prefix:"log."`
	ConfigFile string    `name:"config" help:"Path to a config file (json, yaml or toml)" env:"EVGEN_CONFIG"`

	Generate Generate      `cmd:"" default:"withargs" help:"Generate typed bindings from input-event headers"`
	Config   ConfigCommand `cmd:"" help:"Configuration helpers"`
}
