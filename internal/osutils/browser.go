// Package osutils wraps the few OS integrations the relay needs outside the
// input path: opening URLs and the Windows firewall.
package osutils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand returns the command that opens url with the desktop's default handler
func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("opening URLs is not supported on %s", goos)
	}
}

// OpenURL opens url in the default browser without waiting for it
func OpenURL(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
