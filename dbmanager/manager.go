// Package dbmanager implements C5: the process-wide registry of
// attached catalogs, plus the two distinguished catalogs every lookup
// eventually bottoms out at — "system" and "temp".
package dbmanager

import (
	"fmt"
	"sort"
	"sync"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"
)

// Manager is the database manager: attach/detach/get/list over
// user-attached catalogs, plus the shared system catalog. Grounded on
// the teacher's multicatalog.go (AddCatalog/RemoveCatalog/IsExists),
// generalized from a single Arrow-Flight-table catalog map to the
// full entry model, and reusing its reader-writer locking discipline
// per spec.md §5 ("read frequently, mutated rarely").
type Manager struct {
	mu       sync.RWMutex
	catalogs map[string]*catalog.Catalog
	order    map[string]int
	seq      int

	system *catalog.Catalog
}

// New constructs a manager with an empty, immutable-after-bootstrap
// system catalog. Callers typically follow with Bootstrap (see
// bootstrap.go) before serving any session.
func New() *Manager {
	sys := catalog.NewCatalog(catalog.SystemCatalogName, true, false)
	return &Manager{
		catalogs: make(map[string]*catalog.Catalog),
		order:    make(map[string]int),
		system:   sys,
	}
}

// System returns the shared, read-only system catalog.
func (m *Manager) System() *catalog.Catalog { return m.system }

// Attach registers a new catalog under name. Fails with
// ErrAlreadyExists if the name is taken, and with ErrInvalidArgument
// if it is one of the reserved names "system"/"temp".
func (m *Manager) Attach(name string, cat *catalog.Catalog) error {
	if name == catalog.SystemCatalogName || name == catalog.TempCatalogName {
		return fmt.Errorf("catalog name %q is reserved: %w", name, catalog.ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.catalogs[name]; exists {
		return fmt.Errorf("catalog with name %q: %w", name, catalog.ErrAlreadyExists)
	}
	m.catalogs[name] = cat
	m.order[name] = m.seq
	m.seq++
	return nil
}

// Detach removes an attached catalog. Fails with ErrNotFound if name
// is not attached.
func (m *Manager) Detach(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.catalogs[name]; !exists {
		return fmt.Errorf("Catalog %q does not exist!: %w", name, catalog.ErrNotFound)
	}
	delete(m.catalogs, name)
	return nil
}

// Get resolves a catalog by name, including the reserved "system"
// name. The reserved "temp" name is session-scoped and is
// intentionally NOT resolvable here — callers go through
// session.Session.Temp instead (spec.md §9 Design Notes).
func (m *Manager) Get(name string) (*catalog.Catalog, error) {
	if name == catalog.SystemCatalogName {
		return m.system, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cat, ok := m.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("Catalog %q does not exist!: %w", name, catalog.ErrNotFound)
	}
	return cat, nil
}

// GetForSession resolves name against both the manager's attached
// catalogs and the calling session's private temp catalog.
func (m *Manager) GetForSession(sess *session.Session, name string) (*catalog.Catalog, error) {
	if name == catalog.TempCatalogName {
		if sess.Temp == nil {
			return nil, fmt.Errorf("Catalog %q does not exist!: %w", name, catalog.ErrNotFound)
		}
		return sess.Temp, nil
	}
	return m.Get(name)
}

// List returns every user-attached catalog (excluding system/temp),
// in attach order.
func (m *Manager) List() []*catalog.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.catalogs))
	for name := range m.catalogs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return m.order[names[i]] < m.order[names[j]] })
	out := make([]*catalog.Catalog, len(names))
	for i, n := range names {
		out[i] = m.catalogs[n]
	}
	return out
}

// DefaultDatabase forwards to the session's search path; kept on the
// manager per spec.md §4.5's `default_database(session)` surface so
// callers with only a Manager + Session need not reach into
// session.SearchPath themselves.
func (m *Manager) DefaultDatabase(sess *session.Session) string {
	return sess.SearchPath.DefaultDatabase()
}
