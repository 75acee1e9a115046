// Package app holds application-wide identifiers.
package app

const (
	// Name is the application name, used for the config directory and
	// the environment variable prefix.
	Name = "ptt"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PTT_"
)
