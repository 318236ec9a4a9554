package server

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the editor under basePath on mux and returns the
// registered pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	comp, err := New(append(fns, WithBasePath(basePath))...)
	if err != nil {
		return "", err
	}
	return comp.RegisterRoutes(mux, basePath)
}

func registerHandler(mux Mux, basePath string, h http.Handler) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("server: missing mux")
	}
	base := normaliseBase(basePath)
	if base == "/" {
		mux.Handle("/", h)
		return "/", nil
	}
	pattern := base + "/"
	mux.Handle(pattern, http.StripPrefix(base, h))
	return pattern, nil
}

// normaliseBase returns "/" or a path with a leading and no trailing slash.
func normaliseBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if basePath == "" {
		return "/"
	}
	return basePath
}

// link joins the base path with an absolute route.
func link(base, route string) string {
	if base == "/" {
		return route
	}
	return base + route
}
