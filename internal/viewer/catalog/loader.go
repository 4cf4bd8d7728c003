package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// SnapshotPattern matches snapshot file names inside the data directory.
const SnapshotPattern = "all_products_*.json"

// ErrNoSnapshot indicates the data directory holds no file matching SnapshotPattern.
var ErrNoSnapshot = errors.New("no snapshot file found")

// Reason classifies load failures.
type Reason string

const (
	// ReasonNoSnapshot means no matching file exists (or the directory is missing).
	ReasonNoSnapshot Reason = "no_snapshot"
	// ReasonUnreadable covers I/O and permission errors.
	ReasonUnreadable Reason = "unreadable"
	// ReasonMalformed covers JSON that is not an array of objects.
	ReasonMalformed Reason = "malformed"
)

// LoadError describes why a snapshot could not be loaded.
type LoadError struct {
	Reason Reason
	Dir    string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	target := e.Path
	if target == "" {
		target = e.Dir
	}
	return fmt.Sprintf("load snapshot %s (%s): %v", target, e.Reason, e.Err)
}

// Unwrap exposes the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// Snapshot identifies the file a product set was read from.
type Snapshot struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	ModTime time.Time `json:"modified_at" yaml:"modified_at"`
	Size    int64     `json:"size"`
}

// IsZero reports whether no snapshot file was selected.
func (s Snapshot) IsZero() bool {
	return s.Path == ""
}

// Result is the outcome of a load. Failures never escape as errors from Loader.Load; they
// are carried in Err next to an empty product set.
type Result struct {
	Products ProductSet
	Snapshot Snapshot
	LoadedAt time.Time
	Err      error
}

// Empty reports the "nothing to show" condition shared by failed and empty loads.
func (r Result) Empty() bool {
	return r.Products.Empty()
}

// Failed reports whether the load produced a diagnostic.
func (r Result) Failed() bool {
	return r.Err != nil
}

// LoadError returns the typed failure, if any.
func (r Result) LoadError() (*LoadError, bool) {
	var loadErr *LoadError
	if errors.As(r.Err, &loadErr) {
		return loadErr, true
	}
	return nil, false
}

// Loader reads the newest snapshot from a directory.
type Loader struct {
	logger *zap.Logger
	now    func() time.Time
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp results.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLoader constructs a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load selects the newest snapshot in dir and parses it. It never fails hard: on any error
// the diagnostic is logged and returned in Result.Err with an empty product set.
func (l *Loader) Load(dir string) Result {
	result := Result{LoadedAt: l.now()}

	snapshot, err := FindLatest(dir)
	if err != nil {
		result.Err = err
		l.logFailure(err)
		return result
	}
	result.Snapshot = snapshot

	products, err := ReadSnapshot(snapshot.Path)
	if err != nil {
		result.Err = err
		l.logFailure(err)
		return result
	}
	result.Products = products

	l.logger.Info("snapshot loaded",
		zap.String("path", snapshot.Path),
		zap.Time("modified_at", snapshot.ModTime),
		zap.Int("records", products.Len()),
		zap.Int("fields", products.Schema().Len()),
	)
	return result
}

func (l *Loader) logFailure(err error) {
	fields := []zap.Field{zap.Error(err)}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		fields = append(fields,
			zap.String("reason", string(loadErr.Reason)),
			zap.String("dir", loadErr.Dir),
			zap.String("path", loadErr.Path),
		)
	}
	l.logger.Warn("snapshot load failed", fields...)
}

// FindLatest returns the matching file with the most recent modification time. Ties keep
// the first file encountered, so the choice among equal timestamps is not guaranteed.
func FindLatest(dir string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, &LoadError{Reason: ReasonNoSnapshot, Dir: dir, Err: ErrNoSnapshot}
		}
		return Snapshot{}, &LoadError{Reason: ReasonUnreadable, Dir: dir, Err: err}
	}

	var latest Snapshot
	for _, entry := range entries {
		name := entry.Name()
		if ok, _ := filepath.Match(SnapshotPattern, name); !ok {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if latest.IsZero() || info.ModTime().After(latest.ModTime) {
			latest = Snapshot{
				Path:    path,
				Name:    name,
				ModTime: info.ModTime(),
				Size:    info.Size(),
			}
		}
	}

	if latest.IsZero() {
		return Snapshot{}, &LoadError{Reason: ReasonNoSnapshot, Dir: dir, Err: ErrNoSnapshot}
	}
	return latest, nil
}

// ReadSnapshot parses a snapshot file into a product set, preserving array order.
func ReadSnapshot(path string) (ProductSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProductSet{}, &LoadError{Reason: ReasonUnreadable, Dir: filepath.Dir(path), Path: path, Err: err}
	}
	products, err := ParseSnapshot(data)
	if err != nil {
		return ProductSet{}, &LoadError{Reason: ReasonMalformed, Dir: filepath.Dir(path), Path: path, Err: err}
	}
	return products, nil
}

// ParseSnapshot decodes a JSON array of flat objects.
func ParseSnapshot(data []byte) (ProductSet, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return ProductSet{}, fmt.Errorf("decode snapshot: %w", err)
	}

	records := make([]*Record, 0, len(rows))
	for i, row := range rows {
		fields := make(map[string]Value, len(row))
		for key, raw := range row {
			value, err := decodeValue(raw)
			if err != nil {
				return ProductSet{}, fmt.Errorf("record %d field %q: %w", i, key, err)
			}
			fields[key] = value
		}
		records = append(records, &Record{fields: fields})
	}
	return NewProductSet(records), nil
}
