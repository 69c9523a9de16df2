package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/nandsim/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xorHDL = `// xor from 4 NANDs
Xor(a, b) -> (out) {
	nab = Nand(a, b)
	w0 = Nand(a, nab)
	w1 = Nand(b, nab)
	out = Nand(w0, w1)
}
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// column returns the given column of a text table, header excluded.
func column(out string, col int) []string {
	var vs []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		f := strings.Fields(l)
		if col < 0 {
			col = len(f) + col
		}
		vs = append(vs, f[col])
	}
	return vs
}

func TestRun(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	out, err := execute(t, "run", file, "--input", "00@0", "--input", "11@4", "--ticks", "9")
	require.NoError(t, err)
	assert.Equal(t, []string{"tick", "a", "b", "|", "out"}, strings.Fields(strings.SplitN(out, "\n", 2)[0]))
	// 11 after 00 makes a glitch through the shorter path.
	assert.Equal(t, []string{"X", "X", "0", "0", "0", "0", "1", "0", "0"}, column(out, -1))
}

func TestRun_vcd(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	out, err := execute(t, "run", file, "--top", "Xor", "-i", "01", "--ticks", "4", "--format", "vcd")
	require.NoError(t, err)
	assert.Contains(t, out, "$scope module Xor $end\n")
	assert.Contains(t, out, "$var wire 1 ! a $end\n")
	assert.Contains(t, out, "$enddefinitions $end\n")
	assert.True(t, strings.HasSuffix(out, "#4\n"), out)
}

func TestRun_config(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	cfg := writeFile(t, "run.toml", `
source = "`+filepath.ToSlash(file)+`"
top = "Xor"
ticks = 5

[[stimulus]]
tick = 0
inputs = "10"
`)
	out, err := execute(t, "run", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "X", "X", "1", "1"}, column(out, -1))

	// flags override the configuration
	out, err = execute(t, "run", "--config", cfg, "--ticks", "2")
	require.NoError(t, err)
	assert.Len(t, column(out, 0), 2)
}

func TestRun_errors(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	_, err := execute(t, "run")
	assert.EqualError(t, err, "no netlist file given")

	_, err = execute(t, "run", file, "--input", "1@0")
	assert.EqualError(t, err, "Xor: tick 0: got 1 inputs, expected 2")

	_, err = execute(t, "run", file, "--format", "svg")
	assert.EqualError(t, err, `invalid output format "svg"`)

	_, err = execute(t, "run", file, "--top", "Nope")
	assert.EqualError(t, err, `unknown part "Nope"`)
}

func TestSweep(t *testing.T) {
	file := writeFile(t, "maj.hdl", `
Maj(a, b, c) -> (out) {
	ab = And(a, b)
	bc = And(b, c)
	ac = And(a, c)
	out = Or3(ab, bc, ac)
}
Or3(a, b, c) -> (out) {
	ab = Or(a, b)
	out = Or(ab, c)
}
`)
	out, err := execute(t, "sweep", "--lib", file, "--top", "Maj", "--settle", "20", "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "|", "out"}, strings.Fields(strings.SplitN(out, "\n", 2)[0]))
	assert.Equal(t, []string{"0", "0", "0", "1", "0", "1", "1", "1"}, column(out, -1))

	_, err = execute(t, "sweep", file, "--top", "Maj")
	assert.ErrorContains(t, err, "unknown part And")
}

func TestNetlist(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	out, err := execute(t, "netlist", file, "--format", "json")
	require.NoError(t, err)
	var recs []netlist.Record
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Xor", recs[0].Name)
	assert.Len(t, recs[0].Body, 4)

	// round trip through the JSON file
	jf := writeFile(t, "xor.json", out)
	out, err = execute(t, "run", jf, "-i", "11", "--ticks", "6")
	require.NoError(t, err)
	assert.Equal(t, "0", column(out, -1)[5])

	out, err = execute(t, "netlist", file, "--top", "Xor")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Xor\n")
	assert.Contains(t, out, "part: Nand\n")

	_, err = execute(t, "netlist", file, "--format", "xml")
	assert.EqualError(t, err, `invalid netlist format "xml"`)
}

func TestCheck(t *testing.T) {
	file := writeFile(t, "xor.hdl", xorHDL)
	out, err := execute(t, "check", file)
	require.NoError(t, err)
	assert.Equal(t, "Xor: 2 inputs, 1 outputs, 5 slots\n", out)

	bad := writeFile(t, "bad.hdl", "T(a) -> (out) {\n\tout = Nand(a, x)\n}\n")
	_, err = execute(t, "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.hdl:2:")
	assert.Contains(t, err.Error(), "undefined wire x")
}
