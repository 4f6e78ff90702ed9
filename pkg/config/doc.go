// Package config handles configuration management for docforge.
// It layers the embedded defaults, the user configuration file, the
// document's project configuration file and environment variables.
package config
