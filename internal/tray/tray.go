// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Tooltip  string
	Checkbox bool
	Checked  bool
	Callback func()
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	title   string
	tooltip string
	icon    []byte
	items   []*MenuItem
	quitCh  chan struct{}
}

// New creates a new system tray. Menu items must be added before Run.
func New(title, tooltip string, icon []byte) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		icon:    icon,
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title, tooltip string, callback func()) int {
	return t.add(&MenuItem{Title: title, Tooltip: tooltip, Callback: callback})
}

// AddCheckbox adds a menu item with a check mark
func (t *Tray) AddCheckbox(title, tooltip string, checked bool, callback func()) int {
	return t.add(&MenuItem{Title: title, Tooltip: tooltip, Checkbox: true, Checked: checked, Callback: callback})
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	t.items = append(t.items, nil) // nil indicates separator
	t.mu.Unlock()
}

// SetItemChecked sets the checked state of a menu item
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.Checked = checked
	if mi.item == nil {
		return
	}
	if checked {
		mi.item.Check()
	} else {
		mi.item.Uncheck()
	}
}

// IsItemChecked reports the last checked state set for a menu item
func (t *Tray) IsItemChecked(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return false
	}
	return t.items[id].Checked
}

// Run starts the tray event loop (blocks until Stop)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() {
		close(t.quitCh)
	})
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.mu.Lock()
	defer t.mu.Unlock()

	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	if len(t.icon) > 0 {
		systray.SetIcon(t.icon)
	}

	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}

		if menuItem.Checkbox {
			menuItem.item = systray.AddMenuItemCheckbox(menuItem.Title, menuItem.Tooltip, menuItem.Checked)
		} else {
			menuItem.item = systray.AddMenuItem(menuItem.Title, menuItem.Tooltip)
		}

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(ch <-chan struct{}, callback func()) {
				for {
					select {
					case <-ch:
						callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem.item.ClickedCh, menuItem.Callback)
		}
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
