// Package config loads the server configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
	"github.com/ironsheep/pixel-art-mcp/internal/render"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "PIXELART_MCP_LOG_LEVEL"

// Config holds the full server configuration.
type Config struct {
	LogLevel        string           `yaml:"log_level"` // info | debug
	Defaults        DocumentDefaults `yaml:"defaults"`
	Preview         PreviewConfig    `yaml:"preview"`
	MaxImportPixels int              `yaml:"max_import_pixels"` // cell budget for created and imported documents
	MaxDocuments    int              `yaml:"max_documents"` // 0 = unlimited
}

// DocumentDefaults apply to pixel_create calls that omit a value.
type DocumentDefaults struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	PixelSize int    `yaml:"pixel_size"`
	FillColor string `yaml:"fill_color"` // "" = transparent
}

// PreviewConfig configures rendered previews.
type PreviewConfig struct {
	GridColor    string `yaml:"grid_color"`
	MaxPixelSize int    `yaml:"max_pixel_size"`
	MaxPixels    int    `yaml:"max_pixels"` // width x height of the rendered image
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Defaults: DocumentDefaults{
			Width:     16,
			Height:    16,
			PixelSize: pixelart.DefaultPixelSize,
		},
		Preview: PreviewConfig{
			GridColor:    "#00000040",
			MaxPixelSize: 64,
			MaxPixels:    render.DefaultMaxPixels,
		},
		MaxImportPixels: 1 << 20,
		MaxDocuments:    64,
	}
}

// LoadConfig reads and parses a YAML config file over DefaultConfig, then
// applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "info", "debug":
	default:
		return fmt.Errorf("unsupported log_level %q (use info or debug)", c.LogLevel)
	}
	if c.Defaults.Width <= 0 || c.Defaults.Height <= 0 {
		return fmt.Errorf("defaults.width and defaults.height must be > 0")
	}
	if c.Defaults.PixelSize <= 0 {
		return fmt.Errorf("defaults.pixel_size must be > 0")
	}
	if _, err := pixelart.ParseColor(c.Defaults.FillColor); err != nil {
		return fmt.Errorf("defaults.fill_color: %w", err)
	}
	if _, err := pixelart.ParseColor(c.Preview.GridColor); err != nil {
		return fmt.Errorf("preview.grid_color: %w", err)
	}
	if c.Preview.MaxPixelSize <= 0 || c.Preview.MaxPixelSize > render.MaxPixelSize {
		return fmt.Errorf("preview.max_pixel_size must be in 1-%d", render.MaxPixelSize)
	}
	if c.Preview.MaxPixels <= 0 {
		return fmt.Errorf("preview.max_pixels must be > 0")
	}
	if c.MaxImportPixels <= 0 {
		return fmt.Errorf("max_import_pixels must be > 0")
	}
	if c.Defaults.Width > c.MaxImportPixels/c.Defaults.Height {
		return fmt.Errorf("defaults.width x defaults.height exceeds max_import_pixels")
	}
	if c.MaxDocuments < 0 {
		return fmt.Errorf("max_documents must be >= 0")
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool { return strings.EqualFold(c.LogLevel, "debug") }

// FillColor returns the parsed default fill color. Validate must have
// succeeded.
func (c *Config) FillColor() pixelart.Color {
	fill, _ := pixelart.ParseColor(c.Defaults.FillColor)
	return fill
}

// GridColor returns the parsed preview grid color. Validate must have
// succeeded.
func (c *Config) GridColor() pixelart.Color {
	gc, _ := pixelart.ParseColor(c.Preview.GridColor)
	return gc
}
