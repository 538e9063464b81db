package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    int
		wantErr bool
	}{
		"ntriples":         {in: "ntriples", want: 0},
		"turtle":           {in: "Turtle", want: 1},
		"case insensitive": {in: "NTRIPLES", want: 0},
		"unknown":          {in: "rdfxml", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFormat(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, int(got))
		})
	}
}

func TestExpandMappingGlobsLiteralPaths(t *testing.T) {
	t.Parallel()

	got, err := expandMappingGlobs([]string{"a.ttl", "b.ttl", "a.ttl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ttl", "b.ttl"}, got)
}

func TestExpandMappingGlobsExpandsPattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"orders.ttl", "customers.ttl", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# mapping"), 0o644))
	}

	got, err := expandMappingGlobs([]string{filepath.Join(dir, "*.ttl")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "orders.ttl"),
		filepath.Join(dir, "customers.ttl"),
	}, got)
}

func TestExpandMappingGlobsNoMatchIsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := expandMappingGlobs([]string{filepath.Join(dir, "*.ttl")})
	require.Error(t, err)
}

func TestOpenOutputStdoutDefault(t *testing.T) {
	t.Parallel()

	f, closeFn, err := openOutput("-")
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, os.Stdout, f)
}

func TestOpenOutputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.nt")
	f, closeFn, err := openOutput(path)
	require.NoError(t, err)
	defer closeFn()
	assert.NotNil(t, f)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("openOutput did not create %s: %v", path, err)
	}
}
