package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/techhub/internal/editor"
	"github.com/starford/techhub/internal/index"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Fixtures FixturesConfig    `yaml:"fixtures"`
	Index    IndexConfig       `yaml:"index"`
	Editor   EditorConfig      `yaml:"editor"`
	Events   EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Fixtures.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	if err := c.Editor.Validate(); err != nil {
		return err
	}
	return c.Events.Validate()
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

// HTTPConfig holds HTTP server configuration.
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

// FixturesConfig selects where the collections are read from. An empty Dir
// serves the fixtures built into the binary.
type FixturesConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// Embedded reports whether the built-in fixtures are served.
func (c *FixturesConfig) Embedded() bool {
	return c.Dir == ""
}

// Validate validates the fixtures configuration.
func (c *FixturesConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.When(c.Watch, validation.Required)),
	); err != nil {
		return fmt.Errorf("fixtures: watch needs a directory: %w", err)
	}
	return nil
}

// IndexConfig holds the search index database location.
type IndexConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DSN, validation.Required),
	)
}

// EditorConfig holds the simulated save latencies.
type EditorConfig struct {
	AutosaveDelay time.Duration `yaml:"autosave_delay"`
	UploadDelay   time.Duration `yaml:"upload_delay"`
}

// Validate validates the editor configuration.
func (c *EditorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AutosaveDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.UploadDelay, validation.Min(time.Duration(0))),
	)
}

// EventsConfig holds change notification settings.
type EventsConfig struct {
	FacetsThrottle time.Duration `yaml:"facets_throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FacetsThrottle, validation.Min(time.Duration(0))),
	)
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
		Index: IndexConfig{
			DSN: index.MemoryDSN,
		},
		Editor: EditorConfig{
			AutosaveDelay: editor.DefaultAutosaveDelay,
			UploadDelay:   editor.DefaultUploadDelay,
		},
		Events: EventsConfig{
			FacetsThrottle: 2 * time.Second,
		},
	}
}
