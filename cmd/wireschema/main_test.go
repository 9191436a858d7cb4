package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), append([]string{"wireschema", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestGen(t *testing.T) {
	t.Parallel()

	out, err := run(t, "gen", "--indent", "0", "BoolFromInt")
	require.NoError(t, err)
	assert.Equal(t,
		`{"$schema":"http://json-schema.org/draft-07/schema#","title":"BoolFromInt<Strict>","type":"integer","minimum":0,"maximum":1}`+"\n",
		out)

	out, err = run(t, "gen", "--format", "yaml", "Slice<string>")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Array_of_String\n")

	_, err = run(t, "gen")
	require.ErrorIs(t, err, ErrExprRequired)

	_, err = run(t, "gen", "Vec<string>")
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "wireschema.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = 1

[[documents]]
name = "flags"
expr = "Slice<BoolFromInt<Strict>>"
`), 0o644))

	out, err := run(t, "build", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "flags.json"))
	assert.FileExists(t, filepath.Join(dir, "flags.json"))

	_, err = run(t, "build", "--config", filepath.Join(dir, "absent.toml"))
	require.Error(t, err)
}

func TestList(t *testing.T) {
	t.Parallel()

	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "Array<E, N>")
	assert.Contains(t, lines, "BoolFromInt<Strict|Flexible>")
}
