package heron

import (
	"fmt"
	"log/slog"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/dbmanager"
	"github.com/heron-db/catalog/resolver"
	"github.com/heron-db/catalog/session"
)

// Options configures a new Engine.
type Options struct {
	// Logger is used for internal logging of bootstrap and attach/detach
	// events.
	// OPTIONAL: uses slog.Default() if nil.
	Logger *slog.Logger

	// SkipBootstrap, if true, leaves the system catalog empty instead of
	// querying a DuckDB instance for its built-in functions and types.
	// OPTIONAL: intended for tests that don't need built-ins resolvable.
	SkipBootstrap bool
}

// Engine is the facade spec.md §6 describes: catalog.get/get_or_fail,
// resolve_entry, resolve_schema, list_schemas/list_all_schemas,
// attach/detach and set_search_path/get_search_path all reachable from
// one value, backed by a database manager (C5) and resolver (C7/C8).
type Engine struct {
	Manager  *dbmanager.Manager
	Resolver *resolver.Resolver
	logger   *slog.Logger
}

// New constructs an Engine and, unless opts.SkipBootstrap is set, seeds
// its system catalog from a real DuckDB instance's built-in functions
// and types (dbmanager.Manager.Bootstrap).
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := dbmanager.New()
	if !opts.SkipBootstrap {
		if err := m.Bootstrap(logger); err != nil {
			return nil, fmt.Errorf("bootstrap system catalog: %w", err)
		}
	}

	return &Engine{
		Manager:  m,
		Resolver: resolver.New(m),
		logger:   logger,
	}, nil
}

// NewSession opens a session with a private temp catalog and a search
// path defaulting to defaultDatabase.main.
func (e *Engine) NewSession(identity, defaultDatabase string) (*session.Session, error) {
	return session.New(identity, defaultDatabase)
}

// Attach registers a new, empty catalog under name.
func (e *Engine) Attach(name string) error {
	cat := catalog.NewCatalog(name, false, false)
	if err := e.Manager.Attach(name, cat); err != nil {
		return err
	}
	e.logger.Info("catalog attached", "catalog", name)
	return nil
}

// Detach removes a previously-attached catalog.
func (e *Engine) Detach(name string) error {
	if err := e.Manager.Detach(name); err != nil {
		return err
	}
	e.logger.Info("catalog detached", "catalog", name)
	return nil
}

// Get resolves a catalog by name, returning (nil, nil) if absent —
// spec.md §4's `Catalog.Get` split from GetOrFail.
func (e *Engine) Get(sess *session.Session, name string) (*catalog.Catalog, error) {
	cat, err := e.Manager.GetForSession(sess, name)
	if err != nil {
		return nil, nil
	}
	return cat, nil
}

// GetOrFail is Get, decorated with the literal not-found message from
// spec.md §6.
func (e *Engine) GetOrFail(sess *session.Session, name string) (*catalog.Catalog, error) {
	cat, err := e.Manager.GetForSession(sess, name)
	if err != nil {
		return nil, fmt.Errorf("Catalog %q does not exist!: %w", name, catalog.ErrNotFound)
	}
	return cat, nil
}

// ResolveEntry is C7's lookup loop, enriched with C8's suggestions on
// a miss.
func (e *Engine) ResolveEntry(tx *catalog.TxnState, sess *session.Session, kind catalog.EntryKind, catalogName, schemaName, name string, ifExists bool) (*catalog.Entry, error) {
	return e.Resolver.ResolveEntry(tx, sess, kind, catalogName, schemaName, name, ifExists)
}

// ResolveSchema resolves a schema by optional catalog qualifier.
func (e *Engine) ResolveSchema(sess *session.Session, catalogName, schemaName string, ifExists bool) (*catalog.Schema, error) {
	return e.Resolver.ResolveSchema(sess, catalogName, schemaName, ifExists)
}

// ListSchemas lists every schema of one catalog (or the session's
// default database).
func (e *Engine) ListSchemas(sess *session.Session, catalogName string) ([]*catalog.Schema, error) {
	return e.Resolver.ListSchemas(sess, catalogName)
}

// ListAllSchemas lists every schema across every attached catalog,
// sorted by (catalog_name, schema_name).
func (e *Engine) ListAllSchemas() []*catalog.Schema {
	return e.Resolver.ListAllSchemas()
}

// SetSearchPath replaces sess's search path.
func (e *Engine) SetSearchPath(sess *session.Session, path []session.Site) error {
	return sess.SearchPath.Set(path)
}

// GetSearchPath returns sess's current search path.
func (e *Engine) GetSearchPath(sess *session.Session) []session.Site {
	return sess.SearchPath.Get()
}

// ResolveSetting validates a configuration parameter name, returning
// nil if it is a known setting and a suggestion-enriched
// catalog.ErrNotFound otherwise (spec.md §4.8 layer 3, §6).
func (e *Engine) ResolveSetting(name string) error {
	return resolver.ResolveSetting(name)
}
