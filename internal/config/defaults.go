package config

const (
	defaultConfigPath      = "~/.config/pika/config.toml"
	defaultProjectConfig   = "pika.toml"
	defaultRunnerCommand   = "npx"
	defaultPublishContents = "pkg/"
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Runner: Runner{
			Command: defaultRunnerCommand,
		},
		Publish: Publish{
			Contents: defaultPublishContents,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
