package tray

import (
	"log/slog"

	"touchrelay/internal/osutils"
)

// DefaultAboutURL is the project page opened by About
const DefaultAboutURL = "https://github.com/DeltaFoundry/TouchRelay"

// MenuAction identifies a tray menu entry
type MenuAction int

const (
	ActionOpenWebUI MenuAction = iota
	ActionToggleAutostart
	ActionAbout
	ActionQuit
)

func (a MenuAction) String() string {
	switch a {
	case ActionOpenWebUI:
		return "open-web-ui"
	case ActionToggleAutostart:
		return "toggle-autostart"
	case ActionAbout:
		return "about"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Autostarter is the persisted launch-at-login setting.
// *autostart.Entry satisfies it.
type Autostarter interface {
	IsEnabled() bool
	Toggle() (bool, error)
}

// Controller implements the tray menu actions. It shares nothing with the
// server except the URL of the touch page.
type Controller struct {
	// WebURL is opened by "Open Web Interface"
	WebURL string

	// AboutURL is opened by "About"
	AboutURL string

	Autostart Autostarter

	// Open launches a URL (default: osutils.OpenURL)
	Open func(url string) error

	// OnQuit stops the tray loop, which shuts the server down
	OnQuit func()

	logger *slog.Logger
}

// NewController creates a controller for the page at webURL
func NewController(webURL string, auto Autostarter, onQuit func(), logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		WebURL:    webURL,
		AboutURL:  DefaultAboutURL,
		Autostart: auto,
		Open:      osutils.OpenURL,
		OnQuit:    onQuit,
		logger:    logger.With("component", "tray"),
	}
}

// IsAutostartEnabled reports the persisted launch-at-login state
func (c *Controller) IsAutostartEnabled() bool {
	if c.Autostart == nil {
		return false
	}
	return c.Autostart.IsEnabled()
}

// ToggleAutostart flips launch-at-login and returns the new state
func (c *Controller) ToggleAutostart() (bool, error) {
	if c.Autostart == nil {
		return false, nil
	}
	on, err := c.Autostart.Toggle()
	if err != nil {
		c.logger.Error("failed to toggle autostart", "error", err)
		return on, err
	}
	c.logger.Info("autostart changed", "enabled", on)
	return on, nil
}

// OpenInBrowser opens url with the desktop's default browser
func (c *Controller) OpenInBrowser(url string) error {
	open := c.Open
	if open == nil {
		open = osutils.OpenURL
	}
	if err := open(url); err != nil {
		c.logger.Warn("failed to open browser", "url", url, "error", err)
		return err
	}
	return nil
}

// OpenWebUI opens the touch page
func (c *Controller) OpenWebUI() error {
	return c.OpenInBrowser(c.WebURL)
}

// About opens the project page
func (c *Controller) About() error {
	url := c.AboutURL
	if url == "" {
		url = DefaultAboutURL
	}
	return c.OpenInBrowser(url)
}

// Quit ends the tray loop
func (c *Controller) Quit() {
	c.logger.Info("quit requested")
	if c.OnQuit != nil {
		c.OnQuit()
	}
}

// Handle runs the action for a menu click. It reports whether the menu must
// be refreshed to show a changed state.
func (c *Controller) Handle(action MenuAction) bool {
	switch action {
	case ActionOpenWebUI:
		_ = c.OpenWebUI()
	case ActionToggleAutostart:
		_, _ = c.ToggleAutostart()
		return true
	case ActionAbout:
		_ = c.About()
	case ActionQuit:
		c.Quit()
	default:
		c.logger.Warn("unknown menu action", "action", int(action))
	}
	return false
}

// Install adds the controller's menu to t: Open Web Interface, Start at
// login, About and Quit.
func Install(t *Tray, c *Controller) {
	t.AddMenuItem("Open Web Interface", "Open the touch page in a browser", func() {
		c.Handle(ActionOpenWebUI)
	})

	var autostartID int
	autostartID = t.AddCheckbox("Start at login", "Launch automatically when you log in", c.IsAutostartEnabled(), func() {
		if c.Handle(ActionToggleAutostart) {
			t.SetItemChecked(autostartID, c.IsAutostartEnabled())
		}
	})

	t.AddSeparator()
	t.AddMenuItem("About", "Project page", func() {
		c.Handle(ActionAbout)
	})
	t.AddMenuItem("Quit", "Stop the server and exit", func() {
		c.Handle(ActionQuit)
	})
}
