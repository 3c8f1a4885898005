// Package config provides YAML configuration support for labelpick
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/young1lin/label-layout/labels"
)

// Config represents the labelpick configuration
type Config struct {
	Version   string          `yaml:"version"`
	Layout    LayoutConfig    `yaml:"layout"`
	Divider   DividerConfig   `yaml:"divider"`
	Selection SelectionConfig `yaml:"selection"`
	Chip      ChipConfig      `yaml:"chip"`
}

// LayoutConfig holds spacing in density-independent units
type LayoutConfig struct {
	HorizontalSpacing float64 `yaml:"horizontalSpacing"`
	VerticalSpacing   float64 `yaml:"verticalSpacing"`
	Padding           float64 `yaml:"padding"`
	Density           float64 `yaml:"density"` // cells per unit
}

// DividerConfig controls the lines drawn between wrapped rows
type DividerConfig struct {
	Enabled bool    `yaml:"enabled"`
	Height  float64 `yaml:"height"`
	Color   string  `yaml:"color"`
}

// SelectionConfig controls the selection cap
type SelectionConfig struct {
	// MaxCheckCount is nil for no cap. Zero is a valid cap that rejects every check.
	MaxCheckCount *int `yaml:"maxCheckCount"`
}

// ChipConfig controls how chips look
type ChipConfig struct {
	Border         string `yaml:"border"` // "none", "rounded" or "normal"
	CheckedColor   string `yaml:"checkedColor"`
	UncheckedColor string `yaml:"uncheckedColor"`
	FocusColor     string `yaml:"focusColor"`
	MaxWidth       int    `yaml:"maxWidth"`
}

// Load loads configuration with priority:
// 1. explicit path, when not empty (must exist)
// 2. Project-level: .labelpick/config.yaml
// 3. Global: ~/.config/labelpick/config.yaml
// 4. Default: built-in defaults
func Load(explicit, projectDir string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}

	projectConfig := ProjectConfigPath(projectDir)
	if info, err := os.Stat(projectConfig); err == nil && !info.IsDir() {
		return LoadFile(projectConfig)
	}

	if globalConfig := GlobalConfigPath(); globalConfig != "" {
		if info, err := os.Stat(globalConfig); err == nil && !info.IsDir() {
			return LoadFile(globalConfig)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := CheckVersion(cfg.Version); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()

	switch c.Chip.Border {
	case "none", "rounded", "normal":
	default:
		c.Chip.Border = def.Chip.Border
	}
	if c.Layout.Density <= 0 {
		c.Layout.Density = def.Layout.Density
	}
	if c.Layout.HorizontalSpacing < 0 {
		c.Layout.HorizontalSpacing = def.Layout.HorizontalSpacing
	}
	if c.Layout.VerticalSpacing < 0 {
		c.Layout.VerticalSpacing = def.Layout.VerticalSpacing
	}
	if c.Layout.Padding < 0 {
		c.Layout.Padding = 0
	}
	if c.Divider.Height < 0 {
		c.Divider.Height = def.Divider.Height
	}
	if c.Divider.Color == "" {
		c.Divider.Color = def.Divider.Color
	}
	if c.Chip.MaxWidth < 0 {
		c.Chip.MaxWidth = 0
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Layout: LayoutConfig{
			HorizontalSpacing: 8,
			VerticalSpacing:   4,
			Padding:           0,
			Density:           labels.DefaultDensity,
		},
		Divider: DividerConfig{
			Enabled: false,
			Height:  2,
			Color:   "#ECECEC",
		},
		Selection: SelectionConfig{
			MaxCheckCount: nil, // unbounded
		},
		Chip: ChipConfig{
			Border:         "none",
			CheckedColor:   "86",
			UncheckedColor: "250",
		},
	}
}

// HasMaxCheckCount reports whether a cap is configured
func (c *Config) HasMaxCheckCount() bool {
	return c.Selection.MaxCheckCount != nil
}

// MaxCheckCount returns the configured cap; ok is false when there is none
func (c *Config) MaxCheckCount() (n int, ok bool) {
	if c.Selection.MaxCheckCount == nil {
		return 0, false
	}
	return *c.Selection.MaxCheckCount, true
}

// SetMaxCheckCount overrides the cap, e.g. from a command line flag
func (c *Config) SetMaxCheckCount(n int) {
	c.Selection.MaxCheckCount = &n
}

// ChipStyle builds the chip style described by the config
func (c *Config) ChipStyle() labels.ChipStyle {
	style := labels.DefaultChipStyle()
	style.Checked = style.Checked.Foreground(lipgloss.Color(c.Chip.CheckedColor))
	style.Unchecked = style.Unchecked.Foreground(lipgloss.Color(c.Chip.UncheckedColor))
	style.MaxWidth = c.Chip.MaxWidth
	if c.Chip.FocusColor != "" {
		style.Focused = style.Focused.Foreground(lipgloss.Color(c.Chip.FocusColor))
	}

	switch c.Chip.Border {
	case "rounded":
		style.HasBorder = true
		style.Border = lipgloss.RoundedBorder()
	case "normal":
		style.HasBorder = true
		style.Border = lipgloss.NormalBorder()
	}
	return style
}

// Options converts the config to layout options
func (c *Config) Options(logger *zap.Logger) labels.Options {
	opts := labels.DefaultOptions()
	opts.HorizontalSpacing = labels.Dimension(c.Layout.HorizontalSpacing)
	opts.VerticalSpacing = labels.Dimension(c.Layout.VerticalSpacing)
	opts.Padding = labels.Dimension(c.Layout.Padding)
	opts.Density = c.Layout.Density
	opts.DividerEnabled = c.Divider.Enabled
	opts.DividerHeight = labels.Dimension(c.Divider.Height)
	opts.DividerColor = lipgloss.Color(c.Divider.Color)
	opts.ChipFactory = c.ChipStyle().Factory()
	opts.Logger = logger
	return opts
}
