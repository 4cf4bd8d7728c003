package public

import (
	"embed"
	"io/fs"
	"net/http"
)

// Prefix is the URL path the embedded assets are served under.
const Prefix = "/public/static/"

// Stylesheet is the URL of the viewer stylesheet.
const Stylesheet = Prefix + "app.css"

//go:embed static/*
var assets embed.FS

// Handler serves the embedded assets below Prefix.
func Handler() (http.Handler, error) {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	return http.StripPrefix(Prefix, http.FileServer(http.FS(sub))), nil
}
