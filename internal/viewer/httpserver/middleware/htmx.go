package middleware

import (
	"context"
	"net/http"
	"strings"
)

type htmxKey struct{}

// HTMX flags requests sent by htmx (HX-Request: true) in the context.
func HTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isHTMX := strings.EqualFold(r.Header.Get("HX-Request"), "true")
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), htmxKey{}, isHTMX)))
		})
	}
}

// IsHTMXRequest reports whether HTMX marked the request as an htmx request.
func IsHTMXRequest(ctx context.Context) bool {
	isHTMX, _ := ctx.Value(htmxKey{}).(bool)
	return isHTMX
}

// RequireHTMX answers 404 to requests that did not come from htmx, so table fragments are
// only reachable from the page.
func RequireHTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsHTMXRequest(r.Context()) {
				http.NotFound(w, r)
				return
			}
			w.Header().Add("Vary", "HX-Request")
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks responses as uncacheable. Views depend on the snapshot and the caller's
// filter cookie.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
