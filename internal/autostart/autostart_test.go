//go:build !windows && !darwin

package autostart

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(t *testing.T) (*Entry, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	e := New("TouchRelay", "touchrelay")
	e.Executable = func() (string, error) { return "/opt/touchrelay/touchrelay", nil }
	return e, filepath.Join(dir, "autostart", "touchrelay.desktop")
}

func TestEnableWritesDesktopEntry(t *testing.T) {
	e, path := newTestEntry(t)
	assert.False(t, e.IsEnabled())

	require.NoError(t, e.Enable())
	assert.True(t, e.IsEnabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name=TouchRelay\n")
	assert.Contains(t, string(data), `Exec="/opt/touchrelay/touchrelay"`)
}

func TestDisableIsIdempotent(t *testing.T) {
	e, path := newTestEntry(t)
	require.NoError(t, e.Disable())

	require.NoError(t, e.Enable())
	require.NoError(t, e.Disable())
	assert.False(t, e.IsEnabled())
	assert.NoFileExists(t, path)
}

func TestToggleReturnsNewState(t *testing.T) {
	e, _ := newTestEntry(t)

	on, err := e.Toggle()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, e.IsEnabled())

	on, err = e.Toggle()
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, e.IsEnabled())
}

func TestToggleKeepsStateOnError(t *testing.T) {
	e, _ := newTestEntry(t)
	e.Executable = func() (string, error) { return "", errors.New("no executable") }

	on, err := e.Toggle()
	assert.Error(t, err)
	assert.False(t, on)
	assert.False(t, e.IsEnabled())
}
