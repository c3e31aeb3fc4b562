// Package config loads the desktop host's TOML configuration: log level,
// asset location, window geometry and the simulated device configuration
// reported to the worker on every configuration change.
package config
