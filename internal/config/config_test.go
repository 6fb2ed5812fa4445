package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	require.NoError(t, mgr.Load())
	assert.Equal(t, *DefaultConfig(), mgr.Get())
	assert.Equal(t, "0.0.0.0:8000", DefaultConfig().ListenAddr())
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"port":9001},"log":{"level":"debug"}}`), 0644))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, int64(64<<10), cfg.Server.MaxFrameBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Tray.Enabled)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":      `{"server":`,
		"port":        `{"server":{"port":70000}}`,
		"host":        `{"server":{"host":"::1"}}`,
		"frame limit": `{"server":{"max_frame_bytes":0}}`,
		"log format":  `{"log":{"format":"xml"}}`,
		"wrong type":  `{"server":{"port":"8000"}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			mgr, err := NewManager(path)
			require.NoError(t, err)
			assert.Error(t, mgr.Load())
			// a failed load leaves the previous configuration in place
			assert.Equal(t, *DefaultConfig(), mgr.Get())
		})
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "touchrelay", "config.json")
	mgr, err := NewManager(path)
	require.NoError(t, err)

	cfg := mgr.Get()
	cfg.Server.Port = 8123
	cfg.Tray.Enabled = false
	require.NoError(t, mgr.Set(cfg))
	require.NoError(t, mgr.Save())

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, cfg, reloaded.Get())
}

func TestSetValidates(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	cfg := mgr.Get()
	cfg.Server.Port = 0
	assert.Error(t, mgr.Set(cfg))
	assert.Equal(t, 8000, mgr.Get().Server.Port)
}

func TestGetReturnsCopy(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	cfg := mgr.Get()
	cfg.Server.Port = 1
	assert.Equal(t, 8000, mgr.Get().Server.Port)
}

func TestDefaultPathUsesAppDirectory(t *testing.T) {
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.json", filepath.Base(p))
	assert.Equal(t, "touchrelay", filepath.Base(filepath.Dir(p)))
}
