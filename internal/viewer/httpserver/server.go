package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/httpserver/httpx"
	custommw "finitefield.org/product-viewer/internal/viewer/httpserver/middleware"
	"finitefield.org/product-viewer/internal/viewer/httpserver/ui"
	"finitefield.org/product-viewer/internal/viewer/observability"
	"finitefield.org/product-viewer/public"
)

// Config holds runtime options for the viewer HTTP server.
type Config struct {
	Address      string
	BasePath     string
	DataDir      string
	Session      *catalog.Session
	Logger       *zap.Logger
	Preferences  custommw.PreferencesConfig
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	base := custommw.NormalizeBasePath(cfg.BasePath)
	prefsCfg := cfg.Preferences
	if prefsCfg.CookiePath == "" {
		prefsCfg.CookiePath = base
	}
	prefs, err := custommw.NewPreferences(prefsCfg)
	if err != nil {
		return nil, err
	}

	static, err := public.Handler()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.RequestLogger)
	router.Use(observability.Recovery)
	router.Use(chimw.Timeout(firstPositive(cfg.WriteTimeout, 30*time.Second)))

	router.Handle(public.Prefix+"*", static)

	handlers := ui.NewHandlers(ui.Dependencies{
		Session: cfg.Session,
		DataDir: cfg.DataDir,
	})
	router.Get("/healthz", handlers.Healthz)

	mountViewerRoutes(router, base, handlers, prefs)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  firstPositive(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: firstPositive(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  firstPositive(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

func mountViewerRoutes(router chi.Router, base string, h *ui.Handlers, prefs *custommw.Preferences) {
	// Mounting at base also serves the bare base path without a trailing slash.
	router.Route(base, func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.BasePath(base))

		withPrefs := r.With(prefs.Middleware())
		withPrefs.Get("/", h.ProductsPage)
		RegisterFragment(withPrefs, "/products/table", h.ProductsTable)

		r.Route("/api", func(api chi.Router) {
			api.NotFound(httpx.NotFound)
			api.MethodNotAllowed(httpx.MethodNotAllowed)
			api.Get("/products", h.ProductsAPI)
		})
	})
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

func firstPositive(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
