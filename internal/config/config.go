// Package config contains the configuration for the bm CLI
//
// Configuration is optional: every value has a flag, so the CLI works with no
// config at all. When a .buildmon.yaml exists in the working directory it
// supplies defaults, and any key can be overridden through BUILDMON_*
// environment variables. Flags take precedence over both.
package config

import (
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ConfigFilePath is the optional per-repository config file
const ConfigFilePath = ".buildmon.yaml"

const envPrefix = "BUILDMON"

// Configuration keys
const (
	KeyProjectName           = "project_name"
	KeyWebhookURL            = "webhook_url"
	KeyHealthCheckURL        = "health_check_url"
	KeyHealthWaitSeconds     = "health_wait_seconds"
	KeyHealthIntervalSeconds = "health_interval_seconds"
)

// Config holds the merged file and environment configuration
type Config struct {
	v *viper.Viper
}

// New loads configuration through fs. A missing config file is not an error.
func New(fs afero.Fs) *Config {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	v.SetConfigFile(ConfigFilePath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyProjectName, "")
	v.SetDefault(KeyWebhookURL, "")
	v.SetDefault(KeyHealthCheckURL, "")
	v.SetDefault(KeyHealthWaitSeconds, 0.0)
	v.SetDefault(KeyHealthIntervalSeconds, 1.0)

	// attempt to read in config file but it might not exist
	_ = v.ReadInConfig()

	return &Config{v: v}
}

// ProjectName returns the configured default project name
func (c *Config) ProjectName() string {
	return c.v.GetString(KeyProjectName)
}

// WebhookURL returns the configured webhook endpoint
func (c *Config) WebhookURL() string {
	return c.v.GetString(KeyWebhookURL)
}

// HealthCheckURL returns the configured health check endpoint
func (c *Config) HealthCheckURL() string {
	return c.v.GetString(KeyHealthCheckURL)
}

// HealthWaitSeconds returns how long to wait for the health check to pass
func (c *Config) HealthWaitSeconds() float64 {
	return c.v.GetFloat64(KeyHealthWaitSeconds)
}

// HealthIntervalSeconds returns the pause between health check attempts
func (c *Config) HealthIntervalSeconds() float64 {
	return c.v.GetFloat64(KeyHealthIntervalSeconds)
}
