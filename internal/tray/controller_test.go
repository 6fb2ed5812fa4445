package tray

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAutostart struct {
	enabled bool
	err     error
}

func (f *fakeAutostart) IsEnabled() bool { return f.enabled }

func (f *fakeAutostart) Toggle() (bool, error) {
	if f.err != nil {
		return f.enabled, f.err
	}
	f.enabled = !f.enabled
	return f.enabled, nil
}

func newTestController(auto Autostarter) (*Controller, *[]string, *int) {
	var opened []string
	quits := 0
	c := NewController("http://192.168.1.20:8000/", auto, func() { quits++ },
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Open = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	return c, &opened, &quits
}

func TestControllerToggleAutostart(t *testing.T) {
	auto := &fakeAutostart{}
	c, _, _ := newTestController(auto)

	assert.False(t, c.IsAutostartEnabled())
	on, err := c.ToggleAutostart()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, c.IsAutostartEnabled())

	on, err = c.ToggleAutostart()
	require.NoError(t, err)
	assert.False(t, on)
}

func TestControllerToggleFailureKeepsState(t *testing.T) {
	auto := &fakeAutostart{enabled: true, err: errors.New("access denied")}
	c, _, _ := newTestController(auto)

	on, err := c.ToggleAutostart()
	assert.Error(t, err)
	assert.True(t, on)
	assert.True(t, c.IsAutostartEnabled())
	// the menu is refreshed even when the toggle failed
	assert.True(t, c.Handle(ActionToggleAutostart))
}

func TestControllerOpensURLs(t *testing.T) {
	c, opened, _ := newTestController(&fakeAutostart{})

	assert.False(t, c.Handle(ActionOpenWebUI))
	assert.False(t, c.Handle(ActionAbout))
	assert.Equal(t, []string{"http://192.168.1.20:8000/", DefaultAboutURL}, *opened)
}

func TestControllerOpenError(t *testing.T) {
	c, _, _ := newTestController(&fakeAutostart{})
	c.Open = func(string) error { return errors.New("no browser") }
	assert.Error(t, c.OpenWebUI())
}

func TestControllerQuit(t *testing.T) {
	c, opened, quits := newTestController(&fakeAutostart{})
	assert.False(t, c.Handle(ActionQuit))
	assert.Equal(t, 1, *quits)
	assert.Empty(t, *opened)
}

func TestControllerWithoutAutostart(t *testing.T) {
	c, _, _ := newTestController(nil)
	assert.False(t, c.IsAutostartEnabled())
	on, err := c.ToggleAutostart()
	assert.NoError(t, err)
	assert.False(t, on)
}

func TestInstallBuildsMenu(t *testing.T) {
	auto := &fakeAutostart{enabled: true}
	c, opened, quits := newTestController(auto)
	tr := New("TouchRelay", "tooltip", nil)
	Install(tr, c)

	var titles []string
	for _, mi := range tr.items {
		if mi == nil {
			titles = append(titles, "-")
			continue
		}
		titles = append(titles, mi.Title)
	}
	assert.Equal(t, []string{"Open Web Interface", "Start at login", "-", "About", "Quit"}, titles)

	startAtLogin := tr.items[1]
	assert.True(t, startAtLogin.Checkbox)
	assert.True(t, startAtLogin.Checked)

	// clicking the checkbox toggles the store and refreshes the mark
	startAtLogin.Callback()
	assert.False(t, auto.enabled)
	assert.False(t, tr.IsItemChecked(startAtLogin.ID))

	tr.items[0].Callback()
	assert.Equal(t, []string{"http://192.168.1.20:8000/"}, *opened)

	tr.items[4].Callback()
	assert.Equal(t, 1, *quits)
}
