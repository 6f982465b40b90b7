package dataset

import "sync"

// Repository owns the one-per-process dataset load. It is constructed once at
// startup and handed to whoever renders; the table is read exactly once and
// cached until Reload or SetPath drops it. Load failures are not cached so a
// later call can succeed once the file shows up.
type Repository struct {
	mu    sync.Mutex
	path  string
	table *Table
}

// NewRepository returns a repository for the spreadsheet at path. An empty
// path falls back to DefaultPath.
func NewRepository(path string) *Repository {
	if path == "" {
		path = DefaultPath
	}
	return &Repository{path: path}
}

// Path returns the current spreadsheet path.
func (r *Repository) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// SetPath switches the repository to a different file and drops the cache.
func (r *Repository) SetPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path != "" && path != r.path {
		r.path = path
		r.table = nil
	}
}

// Table returns the cached table, loading it on first use.
func (r *Repository) Table() (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.table != nil {
		return r.table, nil
	}
	t, err := Load(r.path)
	if err != nil {
		return nil, err
	}
	r.table = t
	return t, nil
}

// Reload drops the cache and reads the file again.
func (r *Repository) Reload() (*Table, error) {
	r.mu.Lock()
	r.table = nil
	r.mu.Unlock()
	return r.Table()
}
