// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reqline/reqline/internal/render"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultPrompt is the console prompt when none is configured.
	DefaultPrompt = "reqline> "
	// DefaultServerHost binds the console server to loopback only.
	DefaultServerHost = "127.0.0.1"
	// DefaultServerPort is the console server's SSH port.
	DefaultServerPort = 2323
	// DefaultShutdownTimeout bounds graceful console server shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidServerConfig is the sentinel error wrapped by InvalidServerConfigError.
	ErrInvalidServerConfig = errors.New("invalid server config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidServerConfigError collects field-level errors of a ServerConfig.
	// It wraps ErrInvalidServerConfig for errors.Is() compatibility.
	InvalidServerConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field-level errors from all sub-components of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output configures how parsed requests are rendered.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Console configures the interactive console.
		Console ConsoleConfig `json:"console" mapstructure:"console"`
		// Server configures the SSH console server.
		Server ServerConfig `json:"server" mapstructure:"server"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// OutputConfig configures rendering.
	OutputConfig struct {
		// Format is the default output format.
		Format render.Format `json:"format" mapstructure:"format"`
	}

	// ConsoleConfig configures the interactive console.
	ConsoleConfig struct {
		// Prompt is printed before each input line.
		Prompt string `json:"prompt" mapstructure:"prompt"`
	}

	// ServerConfig configures the SSH console server.
	ServerConfig struct {
		Host string `json:"host" mapstructure:"host"`
		Port int    `json:"port" mapstructure:"port"`
		// HostKeyPath is the PEM host key; generated on first start when missing.
		HostKeyPath string `json:"host_key_path" mapstructure:"host_key_path"`
		// Password enables password authentication when non-empty.
		Password        string        `json:"password" mapstructure:"password"`
		ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the style used for help pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{Format: render.FormatText},
		Console: ConsoleConfig{Prompt: DefaultPrompt},
		Server: ServerConfig{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		UI: UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// Validate returns nil if the ColorScheme is recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// GlamourStyle maps the scheme to a glamour style name.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks the server address and timeout.
func (c ServerConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 0-65535", c.Port))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout %s must not be negative", c.ShutdownTimeout))
	}
	if len(errs) > 0 {
		return &InvalidServerConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidServerConfigError) Error() string {
	return fmt.Sprintf("invalid server config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidServerConfig followed by the field errors.
func (e *InvalidServerConfigError) Unwrap() []error {
	return append([]error{ErrInvalidServerConfig}, e.FieldErrors...)
}

// Validate checks every sub-component and collects their errors.
func (c Config) Validate() error {
	var errs []error
	if err := c.Output.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is also
// matches the sentinel of any failing field.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
