package middleware

import (
	"context"
	"net/http"
	"strings"
)

type basePathKey struct{}

// BasePath stores the normalised mount point of the viewer routes in the request context so
// handlers can build links below it.
func BasePath(basePath string) func(http.Handler) http.Handler {
	base := NormalizeBasePath(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), basePathKey{}, base)))
		})
	}
}

// BasePathFromContext returns the mount point, or "/" outside BasePath.
func BasePathFromContext(ctx context.Context) string {
	if base, ok := ctx.Value(basePathKey{}).(string); ok && base != "" {
		return base
	}
	return "/"
}

// NormalizeBasePath returns base with a leading slash and no trailing slash, or "/".
func NormalizeBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return "/"
	}
	return "/" + base
}
