// Package assets embeds the touch-surface web page.
// The files are served verbatim; nothing is rendered server side.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
)

//go:embed static/*
var staticFS embed.FS

// File describes one embedded document
type File struct {
	Name        string
	ContentType string
}

// Files lists the served documents by URL path
var Files = map[string]File{
	"/":                 {Name: "index.html", ContentType: "text/html; charset=utf-8"},
	"/static/style.css": {Name: "style.css", ContentType: "text/css; charset=utf-8"},
	"/static/app.js":    {Name: "app.js", ContentType: "application/javascript; charset=utf-8"},
	"/static/icon.ico":  {Name: "icon.ico", ContentType: "image/x-icon"},
}

// Read returns the bytes of an embedded file
func Read(name string) ([]byte, error) {
	data, err := fs.ReadFile(staticFS, "static/"+name)
	if err != nil {
		return nil, fmt.Errorf("embedded asset %s: %w", name, err)
	}
	return data, nil
}

// Icon returns the application icon, used by the tray as well as the page
func Icon() []byte {
	data, err := Read("icon.ico")
	if err != nil {
		return nil
	}
	return data
}

// Handler serves f with its content type. Only GET and HEAD are allowed.
func Handler(f File) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data, err := Read(f.Name)
		if err != nil {
			http.Error(w, "Asset missing", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", f.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "no-cache")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(data)
	})
}
