package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/focus"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/plugin"
)

// defaultConfigPath is ~/.config/vicore/config.toml, or "" when the user
// config directory is unknown.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vicore", "config.toml")
}

// overrides are the settings flags and VICORE_* variables can replace.
var overrides = []struct {
	key   string
	apply func(*config.Config, *viper.Viper, string)
}{
	{"log.level", func(c *config.Config, v *viper.Viper, k string) { c.Log.Level = v.GetString(k) }},
	{"log.file", func(c *config.Config, v *viper.Viper, k string) { c.Log.File = v.GetString(k) }},
	{"editor.status_format", func(c *config.Config, v *viper.Viper, k string) { c.Editor.StatusFormat = v.GetString(k) }},
	{"editor.focus_delay_ms", func(c *config.Config, v *viper.Viper, k string) { c.Editor.FocusDelayMS = v.GetInt(k) }},
	{"editor.history_size", func(c *config.Config, v *viper.Viper, k string) { c.Editor.HistorySize = v.GetInt(k) }},
	{"editor.shift_width", func(c *config.Config, v *viper.Viper, k string) { c.Editor.ShiftWidth = v.GetInt(k) }},
}

// loadConfig reads path and layers flags and environment on top.
func loadConfig(v *viper.Viper, path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("VICORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, o := range overrides {
		if v.IsSet(o.key) {
			o.apply(cfg, v, o.key)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runtime holds everything built from a configuration.
type runtime struct {
	cfg      *config.Config
	cfgPath  string
	log      *logging.Logger
	logFile  *os.File
	registry *resolver.Registry
	host     *plugin.Host
	keymap   *keymap.Keymap
}

func newRuntime(cfg *config.Config, cfgPath string) (*runtime, error) {
	rt := &runtime{cfg: cfg, cfgPath: cfgPath, log: logging.Discard()}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		rt.logFile = f
		rt.log = logging.Configure(f, cfg.LogLevel())
	}

	rt.registry = resolver.NewDefault()
	rt.host = plugin.NewHost(rt.registry, plugin.WithLogger(rt.log))
	if err := rt.host.LoadFiles(rt.scriptPaths()...); err != nil {
		rt.Close()
		return nil, err
	}

	km, err := rt.buildKeymap(cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.keymap = km
	return rt, nil
}

// scriptPaths resolves plugin scripts relative to the config file.
func (rt *runtime) scriptPaths() []string {
	base := "."
	if rt.cfgPath != "" {
		base = filepath.Dir(rt.cfgPath)
	}
	paths := make([]string, 0, len(rt.cfg.Plugins.Scripts))
	for _, p := range rt.cfg.Plugins.Scripts {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// buildKeymap layers the configured and scripted bindings over the
// defaults and checks every command name resolves.
func (rt *runtime) buildKeymap(cfg *config.Config) (*keymap.Keymap, error) {
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}
	if err := rt.host.Apply(km); err != nil {
		return nil, err
	}
	if err := km.Validate(rt.registry); err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	return km, nil
}

func (rt *runtime) editor(onBlink func(), after focus.AfterFunc) *app.Editor {
	return app.New(app.Options{
		Keymap:       rt.keymap,
		Resolvers:    rt.registry,
		StatusFormat: rt.cfg.Editor.StatusFormat,
		FocusDelay:   rt.cfg.Editor.FocusDelay(),
		HistorySize:  rt.cfg.Editor.HistorySize,
		ShiftWidth:   rt.cfg.Editor.ShiftWidth,
		OnBlink:      onBlink,
		AfterFunc:    after,
		Logger:       rt.log,
	})
}

// reload rebuilds the keymap from a changed configuration.
func (rt *runtime) reload(ed *app.Editor, cfg *config.Config) {
	km, err := rt.buildKeymap(cfg)
	if err != nil {
		rt.log.Warn("config reload rejected", "error", err)
		return
	}
	ed.SetKeymap(km)
}

func (rt *runtime) Close() {
	if rt.host != nil {
		rt.host.Close()
	}
	if rt.logFile != nil {
		_ = rt.logFile.Close()
	}
}

// openDocument opens path, or an empty scratch buffer when path is "".
func openDocument(ed *app.Editor, path, text string) (*app.Document, error) {
	switch {
	case path != "" && text != "":
		return nil, errors.New("use either a file or --text, not both")
	case path != "":
		return ed.OpenFile(path)
	default:
		return ed.Open("[scratch]", text)
	}
}
