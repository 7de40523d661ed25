package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/input/keymap"
)

// run executes the command line with an isolated config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"text", []string{"--text", "a b c d e f", "--keys", "dw3."}, "e f"},
		{"insert", []string{"--text", "", "--keys", "ix<Esc>.."}, "xxx"},
		{"field", []string{"--text", "one\ntwo", "--keys", "ddix<Esc>", "--field", "registers.unnamed"}, "one\n\n"},
		{"cursor", []string{"--text", "foo bar", "--keys", "$b", "--field", "cursor.offset"}, "4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"replay"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReplayJSON(t *testing.T) {
	out, err := run(t, "replay", "--text", "abc", "--keys", "x", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "bc"`)
	assert.Contains(t, out, `"mode": "normal"`)
}

func TestReplayErrors(t *testing.T) {
	_, err := run(t, "replay", "--text", "abc")
	assert.Error(t, err, "keys are required")

	_, err = run(t, "replay", "--text", "abc", "--keys", "x", "--field", "nope")
	assert.ErrorContains(t, err, "no such field")

	_, err = run(t, "replay", "--text", "abc", "--file", "x.txt", "--keys", "x")
	assert.Error(t, err)
}

func TestReplayWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0o644))

	out, err := run(t, "replay", "--file", path, "--keys", "jdd", "--write")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestReplayConfigKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := config.Default()
	cfg.Keys = []keymap.Spec{{Keys: "Q", Modes: []string{"normal"}, Kind: "action", Command: "vi_x"}}
	require.NoError(t, config.Write(path, cfg))

	out, err := run(t, "--config", path, "replay", "--text", "abc", "--keys", "QQ")
	require.NoError(t, err)
	assert.Equal(t, "c", out)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("VICORE_EDITOR_SHIFT_WIDTH", "2")
		t.Setenv("VICORE_LOG_LEVEL", "debug")

		cfg, err := loadConfig(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Editor.ShiftWidth)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("flag wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("editor:\n  shift_width: 8\n"), 0o644))

		cmd := newRootCmd()
		require.NoError(t, cmd.PersistentFlags().Set("shift-width", "3"))
		c := &cli{v: viper.New()}
		require.NoError(t, c.v.BindPFlag("editor.shift_width", cmd.PersistentFlags().Lookup("shift-width")))

		cfg, err := loadConfig(c.v, path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Editor.ShiftWidth)
	})

	t.Run("invalid override", func(t *testing.T) {
		t.Setenv("VICORE_EDITOR_SHIFT_WIDTH", "99")

		_, err := loadConfig(viper.New(), "")
		assert.ErrorIs(t, err, config.ErrValidationFailed)
	})
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore", "config.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Editor, cfg.Editor)

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	out, err := run(t, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status_format:")
	assert.Contains(t, out, "shift_width: 4")

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "shift_width = 4")
}
