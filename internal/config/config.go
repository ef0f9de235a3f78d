// Package config loads the application's configuration from the
// environment into an explicit struct passed to each component.
package config

import (
	"os"
)

// Config holds the settings the tool reads from the environment.
type Config struct {
	Token        string // GITHUB_TOKEN, required
	DefaultOrg   string // DEFAULT_ORG, fallback for the organization argument
	SlackChannel string // SLACK_CHANNEL, fallback for the payload channel
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Token:        os.Getenv("GITHUB_TOKEN"),
		DefaultOrg:   os.Getenv("DEFAULT_ORG"),
		SlackChannel: os.Getenv("SLACK_CHANNEL"),
	}
}
