package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/requestctx"
)

const (
	defaultPreferencesCookie = "viewer_prefs"
	defaultPreferencesMaxAge = 30 * 24 * time.Hour
	maxSearchLength          = 200
)

// ErrInvalidPreferencesConfig indicates the preference store was configured without keys.
var ErrInvalidPreferencesConfig = errors.New("preferences: invalid config")

// PreferencesConfig controls the signed filter preference cookie.
type PreferencesConfig struct {
	CookieName string
	CookiePath string
	HashKey    []byte
	Secure     bool
	MaxAge     time.Duration
}

type filterPreferences struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"q,omitempty"`
}

// Preferences remembers the last applied filter per browser in a signed cookie.
type Preferences struct {
	cfg   PreferencesConfig
	codec *securecookie.SecureCookie
}

// NewPreferences constructs the preference store.
func NewPreferences(cfg PreferencesConfig) (*Preferences, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidPreferencesConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultPreferencesCookie
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultPreferencesMaxAge
	}

	codec := securecookie.New(cfg.HashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.MaxAge.Seconds()))

	return &Preferences{cfg: cfg, codec: codec}, nil
}

// Middleware resolves the filter selection of the request. Explicit category or q
// parameters win and are stored; a request without them restores the stored selection.
// Search terms longer than maxSearchLength runes are applied in full but not stored.
func (p *Preferences) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query, explicit := QueryFromURL(r)
			if explicit {
				if err := p.save(w, query); err != nil {
					requestctx.Logger(r.Context()).Warn("preferences: save failed", zap.Error(err))
				}
			} else if stored, ok := p.load(r); ok {
				query = stored
			}

			ctx := requestctx.WithQuery(r.Context(), query)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// QueryFromURL reads the category and q parameters verbatim. explicit is false when neither
// is present.
func QueryFromURL(r *http.Request) (requestctx.Query, bool) {
	values := r.URL.Query()
	_, hasCategory := values["category"]
	_, hasSearch := values["q"]
	return requestctx.Query{
		Category: values.Get("category"),
		Search:   values.Get("q"),
	}, hasCategory || hasSearch
}

func (p *Preferences) load(r *http.Request) (requestctx.Query, bool) {
	cookie, err := r.Cookie(p.cfg.CookieName)
	if err != nil {
		return requestctx.Query{}, false
	}
	var stored filterPreferences
	if err := p.codec.Decode(p.cfg.CookieName, cookie.Value, &stored); err != nil {
		requestctx.Logger(r.Context()).Debug("preferences: discard cookie", zap.Error(err))
		return requestctx.Query{}, false
	}
	return requestctx.Query{
		Category: stored.Category,
		Search:   stored.Search,
		Restored: true,
	}, true
}

func (p *Preferences) save(w http.ResponseWriter, q requestctx.Query) error {
	if utf8.RuneCountInString(q.Search) > maxSearchLength {
		q.Search = ""
	}
	if q.Category == "" && q.Search == "" {
		http.SetCookie(w, p.cookie("", -1))
		return nil
	}
	encoded, err := p.codec.Encode(p.cfg.CookieName, filterPreferences{Category: q.Category, Search: q.Search})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	http.SetCookie(w, p.cookie(encoded, int(p.cfg.MaxAge.Seconds())))
	return nil
}

func (p *Preferences) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    value,
		Path:     p.cfg.CookiePath,
		MaxAge:   maxAge,
		Secure:   p.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
