//go:build !windows

package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name={{.Name}}
Exec="{{.ExecutablePath}}"
Terminal=false
NoDisplay=true
X-GNOME-Autostart-enabled=true
`

type templateData struct {
	Label          string
	Name           string
	ExecutablePath string
}

// Enable writes the LaunchAgent plist (macOS) or XDG autostart entry
func (e *Entry) Enable() error {
	execPath, err := e.executablePath()
	if err != nil {
		return err
	}

	path, err := e.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	text := xdgDesktopEntry
	if runtime.GOOS == "darwin" {
		text = macLaunchAgentPlist
	}
	tmpl, err := template.New("autostart").Parse(text)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, templateData{
		Label:          e.label(),
		Name:           e.Name,
		ExecutablePath: execPath,
	})
}

// Disable removes the entry; a missing entry is not an error
func (e *Entry) Disable() error {
	path, err := e.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsEnabled checks if the entry file exists
func (e *Entry) IsEnabled() bool {
	path, err := e.path()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (e *Entry) label() string {
	return "com." + e.ID + ".agent"
}

func (e *Entry) path() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", e.label()+".plist"), nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "autostart", e.ID+".desktop"), nil
}
