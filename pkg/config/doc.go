// Package config handles configuration management for creatorly.
// It layers the embedded defaults, the user's config.toml, CREATORLY_*
// environment variables and command-line overrides, in that order,
// and decodes the result into a Config.
package config
