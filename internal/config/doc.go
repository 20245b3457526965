// SPDX-License-Identifier: MPL-2.0

// Package config handles reqline configuration using Viper with CUE as the file format.
//
// The config file is config.cue in the reqline config directory ($XDG_CONFIG_HOME/reqline
// on Linux, ~/Library/Application Support/reqline on macOS, %APPDATA%\reqline on Windows),
// falling back to ./config.cue. Files are validated against the embedded #Config schema
// before being merged over the defaults. Every key can be overridden from the environment
// with the REQLINE_ prefix, e.g. REQLINE_SERVER_PORT=2400.
package config
