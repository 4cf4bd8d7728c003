package catalog

import (
	"path/filepath"
	"sync"
)

// Session memoizes load results per data directory for the lifetime of the session. A
// directory is read from disk once; later calls return the stored result until Invalidate
// is called for it. Failed loads are memoized as well.
type Session struct {
	loader *Loader

	mu    sync.Mutex
	memo  map[string]Result
	loads int
}

// NewSession creates a session backed by the loader.
func NewSession(loader *Loader) *Session {
	if loader == nil {
		loader = NewLoader()
	}
	return &Session{
		loader: loader,
		memo:   make(map[string]Result),
	}
}

// Load returns the memoized result for dir, reading the filesystem on first use.
func (s *Session) Load(dir string) Result {
	key := sessionKey(dir)

	s.mu.Lock()
	defer s.mu.Unlock()

	if result, ok := s.memo[key]; ok {
		return result
	}
	result := s.loader.Load(dir)
	s.memo[key] = result
	s.loads++
	return result
}

// Cached returns the memoized result for dir without touching the filesystem.
func (s *Session) Cached(dir string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.memo[sessionKey(dir)]
	return result, ok
}

// Invalidate drops the memoized result for dir.
func (s *Session) Invalidate(dir string) {
	s.mu.Lock()
	delete(s.memo, sessionKey(dir))
	s.mu.Unlock()
}

// Loads reports how many times the session read from the filesystem.
func (s *Session) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func sessionKey(dir string) string {
	return filepath.Clean(dir)
}
