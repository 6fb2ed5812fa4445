// Package config provides configuration management for the relay server.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

// Config represents the application configuration
type Config struct {
	// Server contains the HTTP/WebSocket listener settings
	Server ServerConfig `json:"server"`

	// Log contains logging settings
	Log LogConfig `json:"log"`

	// Tray contains system tray settings
	Tray TrayConfig `json:"tray"`

	// OpenBrowserOnStart opens the touch page locally once the server is up
	OpenBrowserOnStart bool `json:"open_browser_on_start"`
}

// ServerConfig contains listener settings
type ServerConfig struct {
	// Host is the IPv4 address to bind (default: all interfaces)
	Host string `json:"host"`

	// Port is the TCP port for the web page and WebSocket (default: 8000)
	Port int `json:"port"`

	// MaxFrameBytes caps the size of a single WebSocket message
	MaxFrameBytes int64 `json:"max_frame_bytes"`

	// FirewallRule creates an inbound allow rule for Port on Windows
	FirewallRule bool `json:"firewall_rule"`
}

// LogConfig contains logging settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level"`

	// Format is "text" or "json"
	Format string `json:"format"`
}

// TrayConfig contains system tray settings
type TrayConfig struct {
	// Enabled shows the tray icon; when false the server runs headless
	Enabled bool `json:"enabled"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8000,
			MaxFrameBytes: 64 << 10,
			FirewallRule:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tray: TrayConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values the server cannot use
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Host != "" && net.ParseIP(c.Server.Host).To4() == nil {
		return fmt.Errorf("server.host %q is not an IPv4 address", c.Server.Host)
	}
	if c.Server.MaxFrameBytes <= 0 {
		return fmt.Errorf("server.max_frame_bytes must be positive, got %d", c.Server.MaxFrameBytes)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// ListenAddr returns host:port for the listener
func (c *Config) ListenAddr() string {
	host := c.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
}

// NewManager creates a configuration manager for path.
// An empty path selects the per-user default location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}, nil
}

// DefaultPath returns the path to the per-user configuration file
func DefaultPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "touchrelay")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "touchrelay")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(configDir, "touchrelay")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the file backing this manager
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. Fields missing from the file keep
// their defaults; a missing file leaves the defaults untouched.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		return nil
	}
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}
	m.config = cfg
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	slog.Info("saving configuration", "component", "config", "path", m.configPath, "bytes", len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set replaces the configuration after validating it
func (m *Manager) Set(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()
	return nil
}
