// Package config loads the YAML configuration of the tablekit tool.
package config

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/wudi/pdftable/document"
	"github.com/wudi/pdftable/measure"
	"github.com/wudi/pdftable/table"
)

type (
	PageConfig struct {
		Size    string           `yaml:"size"`
		Width   float64          `yaml:"width,omitempty"`
		Height  float64          `yaml:"height,omitempty"`
		Margins document.Margins `yaml:"margins"`
	}

	MeasureConfig struct {
		// Kind is fixed or shaped.
		Kind     string  `yaml:"kind"`
		FontSize float64 `yaml:"font_size"`
		Leading  float64 `yaml:"leading"`
		// Font is a TrueType file for the shaped measurer, Go Regular when empty.
		Font string `yaml:"font,omitempty"`
	}

	TableConfig struct {
		WidthPercentage float64 `yaml:"width_percentage"`
		Padding         float64 `yaml:"padding"`
		BorderWidth     float64 `yaml:"border_width"`
		SpacingBefore   float64 `yaml:"spacing_before"`
		SpacingAfter    float64 `yaml:"spacing_after"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Page    PageConfig    `yaml:"page"`
		Measure MeasureConfig `yaml:"measure"`
		Table   TableConfig   `yaml:"table"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Page: PageConfig{
			Size:    document.A4.Name,
			Margins: document.Margins{Top: 36, Bottom: 36, Left: 36, Right: 36},
		},
		Measure: MeasureConfig{
			Kind:     "fixed",
			FontSize: measure.DefaultFontSize,
			Leading:  measure.DefaultLeading,
		},
		Table: TableConfig{
			WidthPercentage: 100,
			Padding:         2,
			BorderWidth:     0.5,
		},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "overwrite"},
		},
	}
}

// Load reads the file at path on top of the defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Unmarshal decodes data over cfg, rejecting unknown fields, and validates it.
func (cfg *Config) Unmarshal(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg.Validate()
}

// Validate reports every problem found, not only the first.
func (cfg *Config) Validate() (err error) {
	if cfg.Version != 1 {
		err = multierr.Append(err, fmt.Errorf("version: unsupported %d", cfg.Version))
	}
	if cfg.Page.Width > 0 || cfg.Page.Height > 0 {
		if cfg.Page.Width <= 0 || cfg.Page.Height <= 0 {
			err = multierr.Append(err, fmt.Errorf("page: width and height must both be positive"))
		}
	} else if _, ok := document.PageSizeByName(cfg.Page.Size); !ok {
		err = multierr.Append(err, fmt.Errorf("page.size: unknown %q", cfg.Page.Size))
	}
	m := cfg.Page.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		err = multierr.Append(err, fmt.Errorf("page.margins: must not be negative"))
	}
	ps := cfg.PageSize()
	if ps.Width-m.Left-m.Right <= 0 || ps.Height-m.Top-m.Bottom <= 0 {
		err = multierr.Append(err, fmt.Errorf("page.margins: leave no room on a %gx%g page", ps.Width, ps.Height))
	}
	switch cfg.Measure.Kind {
	case "fixed", "shaped":
	default:
		err = multierr.Append(err, fmt.Errorf("measure.kind: must be fixed or shaped, got %q", cfg.Measure.Kind))
	}
	if cfg.Measure.FontSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("measure.font_size: must be positive"))
	}
	if cfg.Measure.Leading <= 0 {
		err = multierr.Append(err, fmt.Errorf("measure.leading: must be positive"))
	}
	if p := cfg.Table.WidthPercentage; p <= 0 || p > 100 {
		err = multierr.Append(err, fmt.Errorf("table.width_percentage: must be in (0, 100], got %g", p))
	}
	if cfg.Table.Padding < 0 || cfg.Table.BorderWidth < 0 || cfg.Table.SpacingBefore < 0 || cfg.Table.SpacingAfter < 0 {
		err = multierr.Append(err, fmt.Errorf("table: padding, border width and spacing must not be negative"))
	}
	return multierr.Append(err, cfg.Logging.Validate())
}

// PageSize returns the configured page format.
func (cfg *Config) PageSize() document.PageSize {
	if cfg.Page.Width > 0 && cfg.Page.Height > 0 {
		return document.PageSize{Name: "custom", Width: cfg.Page.Width, Height: cfg.Page.Height}
	}
	ps, _ := document.PageSizeByName(cfg.Page.Size)
	return ps
}

// Measurer builds the configured measurer.
func (cfg *Config) Measurer() (table.Measurer, error) {
	if cfg.Measure.Kind != "shaped" {
		return measure.Fixed{FontSize: cfg.Measure.FontSize, Leading: cfg.Measure.Leading}, nil
	}
	opts := []measure.ShapedOption{
		measure.WithFontSize(cfg.Measure.FontSize),
		measure.WithLeading(cfg.Measure.Leading),
	}
	if cfg.Measure.Font != "" {
		ttf, err := os.ReadFile(cfg.Measure.Font)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		opts = append(opts, measure.WithFont(ttf))
	}
	return measure.NewShaped(opts...)
}

// DefaultCell returns the cell template derived from the table settings.
func (cfg *Config) DefaultCell() table.Cell {
	return table.Cell{
		Border:      table.BorderBox,
		BorderWidth: cfg.Table.BorderWidth,
		Padding:     table.UniformPadding(cfg.Table.Padding),
	}
}

// ApplyTable copies the table settings onto t.
func (cfg *Config) ApplyTable(t *table.Table) {
	t.SetWidthPercentage(cfg.Table.WidthPercentage)
	t.SetSpacing(cfg.Table.SpacingBefore, cfg.Table.SpacingAfter)
}
