// Package autostart registers the application to launch at login.
package autostart

import (
	"fmt"
	"os"
)

// Entry is the launch-at-login registration of one executable
type Entry struct {
	// Name is the display name, also the Windows Run value name
	Name string

	// ID names the files on unix: <ID>.desktop, com.<ID>.agent.plist
	ID string

	// Executable returns the program to launch (default: os.Executable)
	Executable func() (string, error)
}

// New creates an Entry for the running executable
func New(name, id string) *Entry {
	return &Entry{Name: name, ID: id, Executable: os.Executable}
}

func (e *Entry) executablePath() (string, error) {
	exe := e.Executable
	if exe == nil {
		exe = os.Executable
	}
	path, err := exe()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return path, nil
}

// Toggle disables the entry when it is enabled and enables it otherwise.
// It returns the resulting state.
func (e *Entry) Toggle() (bool, error) {
	if e.IsEnabled() {
		if err := e.Disable(); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := e.Enable(); err != nil {
		return false, err
	}
	return true, nil
}
