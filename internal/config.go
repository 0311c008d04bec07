package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Persistence drivers.
const (
	PersistDriverFile   = "file"
	PersistDriverSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Persist   PersistConfig     `yaml:"persist"`
	Assistant AssistantConfig   `yaml:"assistant"`
	UI        UIConfig          `yaml:"ui"`
	Auth      AuthConfig        `yaml:"auth"`
	MCP       MCPConfig         `yaml:"mcp"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Persist.Validate(); err != nil {
		return err
	}
	if err := c.Assistant.Validate(); err != nil {
		return err
	}
	if err := c.UI.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for the local display bridge.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// PersistConfig selects and locates the durable state slot.
type PersistConfig struct {
	Driver             string `yaml:"driver"`
	Path               string `yaml:"path"`
	AutosaveDebounceMS int    `yaml:"autosave_debounce_ms"`
}

// AutosaveDebounce returns the autosave debounce as a duration.
func (c *PersistConfig) AutosaveDebounce() time.Duration {
	return time.Duration(c.AutosaveDebounceMS) * time.Millisecond
}

// Validate validates the persistence configuration.
func (c *PersistConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(PersistDriverFile, PersistDriverSQLite)),
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.AutosaveDebounceMS, validation.Min(0)),
	)
}

// AssistantConfig tunes the simulated responder.
type AssistantConfig struct {
	LatencyMS int `yaml:"latency_ms"`
}

// Latency returns the simulated response latency as a duration.
func (c *AssistantConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

// Validate validates the assistant configuration.
func (c *AssistantConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LatencyMS, validation.Min(0)),
	)
}

// UIConfig tunes the transient notification surface.
type UIConfig struct {
	ToastTTLMS int `yaml:"toast_ttl_ms"`
}

// ToastTTL returns the toast expiry delay as a duration.
func (c *UIConfig) ToastTTL() time.Duration {
	return time.Duration(c.ToastTTLMS) * time.Millisecond
}

// Validate validates the UI configuration.
func (c *UIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ToastTTLMS, validation.Min(0)),
	)
}

// AuthConfig holds authentication configuration for the local bridge.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// MCPConfig controls the stdio MCP surface.
type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Persist: PersistConfig{
			Driver:             PersistDriverFile,
			Path:               "./ansuz-state.json",
			AutosaveDebounceMS: 500,
		},
		Assistant: AssistantConfig{
			LatencyMS: 1000,
		},
		UI: UIConfig{
			ToastTTLMS: 3000,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
