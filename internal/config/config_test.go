package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/internal/config"
	"github.com/db47h/nandsim/trace"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nandsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
source = " adder.hdl "
top = "Add4"
ticks = 64
format = "VCD"
log_level = "debug"

[[stimulus]]
tick = 0
inputs = "0000_0000"

[[stimulus]]
tick = 32
inputs = "1000_1x00"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := config.Default()
	assert.Equal(t, "adder.hdl", cfg.Source)
	assert.Equal(t, "Add4", cfg.Top)
	assert.Equal(t, 64, cfg.Ticks)
	assert.Equal(t, def.Settle, cfg.Settle)
	assert.Equal(t, config.FormatVCD, cfg.Format)
	assert.False(t, cfg.Probe)
	assert.Equal(t, def.Workers, cfg.Workers)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())

	want := []trace.Change{
		{Tick: 0, Inputs: []nandsim.Bit{0, 0, 0, 0, 0, 0, 0, 0}},
		{Tick: 32, Inputs: []nandsim.Bit{1, 0, 0, 0, 1, nandsim.Unknown, 0, 0}},
	}
	if diff := cmp.Diff(want, cfg.Stimulus); diff != "" {
		t.Errorf("stimulus mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `tick = 3`))
	assert.ErrorContains(t, err, "unknown key tick")

	_, err = config.Load(writeConfig(t, "[[stimulus]]\ninputs = \"012\"\n"))
	assert.ErrorContains(t, err, "stimulus 0")

	_, err = config.Load(writeConfig(t, `ticks = "ten"`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	td := []struct {
		name string
		mod  func(*config.Config)
		err  string
	}{
		{"default", func(*config.Config) {}, ""},
		{"ticks", func(c *config.Config) { c.Ticks = -1 }, "invalid tick count -1"},
		{"settle", func(c *config.Config) { c.Settle = 0 }, "invalid settle tick count 0"},
		{"workers", func(c *config.Config) { c.Workers = -2 }, "invalid worker count -2"},
		{"format", func(c *config.Config) { c.Format = "csv" }, `invalid output format "csv"`},
		{"level", func(c *config.Config) { c.LogLevel = "loud" }, "invalid log level"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c := config.Default()
			d.mod(&c)
			err := c.Validate()
			if d.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, d.err)
		})
	}
}
