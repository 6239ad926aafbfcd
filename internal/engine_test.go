package internal

import (
	"os"
	"path/filepath"
	"testing"

	tt "github.com/gnolang/depwarn/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const realmSource = `package foo

import "std"

func Height() int64 {
	return std.GetHeight()
}

func Caller() std.Address {
	return std.PrevRealm().Addr() //nolint:deprecated
}

func Chain() string {
	return std.GetChainID()
}
`

func TestEngineRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.gno")
	require.NoError(t, os.WriteFile(path, []byte(realmSource), 0o644))

	engine, err := NewEngine(nil)
	require.NoError(t, err)

	events, err := engine.Run(path)
	require.NoError(t, err)

	assert.Equal(t, []tt.DeprecationEvent{
		{Method: "std.GetHeight", AlternateMethod: "std.ChainHeight", CalledFrom: path + ":6:9"},
		{Method: "std.GetChainID", AlternateMethod: "std.ChainID", CalledFrom: path + ":14:9"},
	}, events)
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine([]tt.DeprecationRule{
		{Package: "strings", Function: "Title", Alternative: "cases.Title"},
	})
	require.NoError(t, err)

	events, err := engine.RunSource([]byte(`package main

import "strings"

func main() {
	_ = strings.Title("x")
}
`))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "strings.Title", events[0].Method)
	assert.Equal(t, "cases.Title", events[0].AlternateMethod)
	assert.Equal(t, "6:6", events[0].CalledFrom)
}

func TestEngineRunSourceUnregisteredReceivers(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	events, err := engine.RunSource([]byte(`package main

import "net"

type Thing struct{}

func (Thing) Addr() string { return "" }

func main() {
	_ = Thing{}.Addr()
	_ = (&net.TCPAddr{}).Addr()
	conn.Addr()
}
`))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEngineParseError(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	_, err = engine.RunSource([]byte("package"))
	assert.ErrorContains(t, err, "error parsing content")
}

func TestEngineInvalidRule(t *testing.T) {
	t.Parallel()
	_, err := NewEngine([]tt.DeprecationRule{{Package: "std"}})
	assert.Error(t, err)
}

func TestEngineIgnoreFunc(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	assert.True(t, engine.IgnoreFunc("std.GetHeight"))
	assert.False(t, engine.IgnoreFunc("std.DoesNotExist"))

	events, err := engine.RunSource([]byte(realmSource))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "std.GetChainID", events[0].Method)
	assert.Len(t, engine.Rules(), len(DefaultRules())-1)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnorePath("*_test.gno")
	engine.IgnorePath("vendor/")
	engine.IgnorePath("internal/testdata/")

	tests := []struct {
		path     string
		expected bool
	}{
		{"foo_test.gno", true},
		{"pkg/foo_test.gno", true},
		{"vendor/std/std.gno", true},
		{"vendor", true},
		{"pkg/foo.gno", false},
		{"vendored/foo.gno", false},
		{"pkg/vendor/foo.gno", true},
		{"/abs/path/vendor/x/y.gno", true},
		{"pkg/myvendor/foo.gno", false},
		{"pkg/internal/testdata/x.gno", true},
		{"pkg/testdata/x.gno", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, engine.isIgnoredPath(tc.path), tc.path)
	}

	events, err := engine.Run("pkg/does_not_matter_test.gno")
	assert.NoError(t, err)
	assert.Empty(t, events)
}
