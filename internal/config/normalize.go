package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeRunner()
	c.normalizePublish()
	c.normalizeLogging()
}

func (c *Config) normalizeRunner() {
	c.Runner.Command = strings.TrimSpace(c.Runner.Command)
	if c.Runner.Command == "" {
		c.Runner.Command = defaultRunnerCommand
	}
}

func (c *Config) normalizePublish() {
	c.Publish.Contents = strings.TrimSpace(c.Publish.Contents)
	if c.Publish.Contents == "" {
		c.Publish.Contents = defaultPublishContents
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("PIKA_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
