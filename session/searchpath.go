// Package session implements C6 (the per-session search path) and C9
// (the transaction handle): the two pieces of per-caller state that
// sit between a request and the catalog package's pure name-storage
// machinery.
package session

import (
	"fmt"
	"sync"

	"github.com/heron-db/catalog/catalog"
)

// Site is one (catalog, schema) probe site.
type Site struct {
	Catalog string
	Schema  string
}

// SearchPath is C6: the per-session ordered list of probe sites
// consulted when a name arrives without a full qualifier. Per
// spec.md §5 it is session-local and never shared, so it needs no
// internal locking for cross-goroutine safety beyond the ordinary
// mutation guard below (a session is used by one goroutine at a time
// by convention, but the mutex keeps Set/Get races harmless).
type SearchPath struct {
	mu              sync.Mutex
	path            []Site
	defaultDatabase string
}

// NewSearchPath builds a search path with a default database and an
// initial, non-empty list of sites.
func NewSearchPath(defaultDatabase string, path []Site) (*SearchPath, error) {
	sp := &SearchPath{defaultDatabase: defaultDatabase}
	if err := sp.Set(path); err != nil {
		return nil, err
	}
	return sp, nil
}

// Get returns the user-visible path: exactly what was last Set,
// never the implicit temp/system boundary entries (spec.md §4.6).
func (sp *SearchPath) Get() []Site {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return append([]Site(nil), sp.path...)
}

// Set replaces the path. Must be non-empty.
func (sp *SearchPath) Set(path []Site) error {
	if len(path) == 0 {
		return fmt.Errorf("search path must not be empty: %w", catalog.ErrInvalidArgument)
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.path = append([]Site(nil), path...)
	return nil
}

// DefaultDatabase returns the session's currently-selected database
// name.
func (sp *SearchPath) DefaultDatabase() string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.defaultDatabase
}

// SetDefaultDatabase changes the session's currently-selected
// database.
func (sp *SearchPath) SetDefaultDatabase(name string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.defaultDatabase = name
}

// effective returns the path actually probed during resolution:
// ("temp", DEFAULT_SCHEMA) at the front, the user path in the middle,
// ("system", DEFAULT_SCHEMA) at the end.
func (sp *SearchPath) effective() []Site {
	sp.mu.Lock()
	user := append([]Site(nil), sp.path...)
	sp.mu.Unlock()

	out := make([]Site, 0, len(user)+2)
	out = append(out, Site{Catalog: catalog.TempCatalogName, Schema: catalog.DefaultSchemaName})
	out = append(out, user...)
	out = append(out, Site{Catalog: catalog.SystemCatalogName, Schema: catalog.DefaultSchemaName})
	return out
}

// SchemasForCatalog returns, in path order, every schema paired with
// cat in the effective path.
func (sp *SearchPath) SchemasForCatalog(cat string) []string {
	var out []string
	for _, s := range sp.effective() {
		if s.Catalog == cat {
			out = append(out, s.Schema)
		}
	}
	return out
}

// CatalogsForSchema returns, in path order, every catalog paired with
// schema in the effective path.
func (sp *SearchPath) CatalogsForSchema(schema string) []string {
	var out []string
	for _, s := range sp.effective() {
		if s.Schema == schema {
			out = append(out, s.Catalog)
		}
	}
	return out
}

// Sites returns the full effective path (including the implicit
// temp/system boundary entries), for the resolver's
// both-parts-invalid case.
func (sp *SearchPath) Sites() []Site {
	return sp.effective()
}
