package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/input/focus"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/state"
	"github.com/dshills/vicore/internal/logging"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Config is the complete set of settings.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log" mapstructure:"log"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor" mapstructure:"editor"`
	Keys    []keymap.Spec `toml:"keys,omitempty" yaml:"keys,omitempty" mapstructure:"keys"`
	Plugins PluginConfig  `toml:"plugins" yaml:"plugins" mapstructure:"plugins"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level" mapstructure:"level"`
	// File receives log output. Empty discards logs.
	File string `toml:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// EditorConfig holds interpreter settings.
type EditorConfig struct {
	StatusFormat string `toml:"status_format" yaml:"status_format" mapstructure:"status_format"`
	FocusDelayMS int    `toml:"focus_delay_ms" yaml:"focus_delay_ms" mapstructure:"focus_delay_ms"`
	HistorySize  int    `toml:"history_size" yaml:"history_size" mapstructure:"history_size"`
	ShiftWidth   int    `toml:"shift_width" yaml:"shift_width" mapstructure:"shift_width"`
}

// FocusDelay returns the focus delay as a duration.
func (e EditorConfig) FocusDelay() time.Duration {
	return time.Duration(e.FocusDelayMS) * time.Millisecond
}

// PluginConfig lists Lua scripts to load at startup.
type PluginConfig struct {
	Scripts []string `toml:"scripts,omitempty" yaml:"scripts,omitempty" mapstructure:"scripts"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Editor: EditorConfig{
			StatusFormat: state.DefaultStatusFormat,
			FocusDelayMS: int(focus.DefaultDelay / time.Millisecond),
			HistorySize:  history.DefaultMaxEntries,
			ShiftWidth:   4,
		},
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if strings.Count(c.Editor.StatusFormat, "%s") != 1 {
		errs = append(errs, &ValidationError{Field: "editor.status_format", Message: "must contain exactly one %s"})
	}
	if c.Editor.FocusDelayMS < 0 {
		errs = append(errs, &ValidationError{Field: "editor.focus_delay_ms", Message: "must not be negative"})
	}
	if c.Editor.HistorySize < 1 {
		errs = append(errs, &ValidationError{Field: "editor.history_size", Message: "must be at least 1"})
	}
	if c.Editor.ShiftWidth < 1 || c.Editor.ShiftWidth > 16 {
		errs = append(errs, &ValidationError{Field: "editor.shift_width", Message: "must be between 1 and 16"})
	}
	for i, spec := range c.Keys {
		if _, err := spec.Binding(); err != nil {
			errs = append(errs, &ValidationError{Field: fmt.Sprintf("keys[%d]", i), Message: err.Error()})
		}
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.LogLevel {
	return logging.ParseLogLevel(c.Log.Level)
}

// Keymap builds the default keymap with the configured overrides on top.
func (c *Config) Keymap() (*keymap.Keymap, error) {
	km := keymap.Default()
	for i, spec := range c.Keys {
		b, err := spec.Binding()
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		if err := km.Add(b); err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
	}
	return km, nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, tomlError(err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func tomlError(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		line, col := derr.Position()
		return &ParseError{Line: line, Column: col, Message: derr.Error(), Err: err}
	}
	return &ParseError{Message: err.Error(), Err: err}
}

// Marshal encodes c in the given format.
func (c *Config) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Write saves c to path in the format its extension names.
func Write(path string, c *Config) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(format)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
