// Package config defines program configuration: page geometry defaults,
// layout estimation parameters, output naming and logging. Configuration is
// YAML; values from a user file are overlaid on the embedded defaults.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"pageflow/common"
)

//go:embed default.yaml
var defaultConfig []byte

type (
	PageConfig struct {
		Paper        string  `yaml:"paper"`
		Orientation  string  `yaml:"orientation"`
		Colour       string  `yaml:"colour"`
		MarginTop    float64 `yaml:"margin_top"`
		MarginRight  float64 `yaml:"margin_right"`
		MarginBottom float64 `yaml:"margin_bottom"`
		MarginLeft   float64 `yaml:"margin_left"`
	}

	LayoutConfig struct {
		MinBlockHeight float64 `yaml:"min_block_height"`
		LineHeight     float64 `yaml:"line_height"`
		CharsPerLine   int     `yaml:"chars_per_line"`
	}

	DocumentConfig struct {
		OutputNameTemplate string `yaml:"output_name_template"`
	}

	Config struct {
		Version  int            `yaml:"version"`
		Page     PageConfig     `yaml:"page"`
		Layout   LayoutConfig   `yaml:"layout"`
		Document DocumentConfig `yaml:"document"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// Prepare returns the embedded default configuration text.
func Prepare() ([]byte, error) {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out, nil
}

// Load builds the active configuration: embedded defaults with the values
// from fname (when given) overlaid, validated.
func Load(fname string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultConfig, cfg); err != nil {
		// this should never happen
		return nil, fmt.Errorf("unable to parse embedded default configuration: %w", err)
	}
	if len(fname) > 0 {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, fmt.Errorf("unable to read configuration file '%s': %w", fname, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse configuration file '%s': %w", fname, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dump serializes the active configuration back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("unable to serialize configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate aggregates every configuration problem rather than stopping at
// the first one.
func (c *Config) Validate() (err error) {
	if c.Version != 1 {
		err = multierr.Append(err, fmt.Errorf("unsupported configuration version %d", c.Version))
	}
	if _, e := common.ParsePaperSize(c.Page.Paper); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := common.ParseOrientation(c.Page.Orientation); e != nil {
		err = multierr.Append(err, e)
	}
	for name, v := range map[string]float64{
		"margin_top":    c.Page.MarginTop,
		"margin_right":  c.Page.MarginRight,
		"margin_bottom": c.Page.MarginBottom,
		"margin_left":   c.Page.MarginLeft,
	} {
		if v < 0 {
			err = multierr.Append(err, fmt.Errorf("page %s must not be negative", name))
		}
	}
	if c.Layout.MinBlockHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("layout min_block_height must be positive"))
	}
	if c.Layout.LineHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("layout line_height must be positive"))
	}
	if c.Layout.CharsPerLine < 1 {
		err = multierr.Append(err, fmt.Errorf("layout chars_per_line must be at least 1"))
	}
	err = multierr.Append(err, c.Logging.validate())
	return
}
