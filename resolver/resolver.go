package resolver

import (
	"fmt"
	"sort"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/dbmanager"
	"github.com/heron-db/catalog/session"
)

// Resolver is the heart of name resolution (C7): given a database
// manager and a session's search path, it turns a possibly-partial
// name into a sequence of lookups and returns the first hit, enriching
// a miss with suggestions from notFoundMessage (suggest.go).
type Resolver struct {
	Manager *dbmanager.Manager
}

// New wraps a database manager in a Resolver.
func New(m *dbmanager.Manager) *Resolver {
	return &Resolver{Manager: m}
}

// visitedSchema is a (catalog, schema) probe result: the schema object actually
// reached, kept for the suggestion engine's local-suggestion pass.
type visitedSchema struct {
	site   session.Site
	schema *catalog.Schema
}

// ResolveEntry looks up name of kind kind, starting from the optional
// catalogName/schemaName qualifiers and falling back to sess's search
// path. If the entry is absent and ifExists is false, the returned
// error is a catalog.ErrNotFound decorated with a suggestion
// (spec.md §4.7-4.8). If ifExists is true, a miss returns (nil, nil).
func (r *Resolver) ResolveEntry(tx *catalog.TxnState, sess *session.Session, kind catalog.EntryKind, catalogName, schemaName, name string, ifExists bool) (*catalog.Entry, error) {
	if !catalog.IsInvalidCatalog(catalogName) {
		if _, err := r.Manager.GetForSession(sess, catalogName); err != nil {
			return nil, fmt.Errorf("Catalog %q does not exist!: %w", catalogName, catalog.ErrNotFound)
		}
	}

	sites := CandidateSites(sess.SearchPath, sess.SearchPath.DefaultDatabase(), catalogName, schemaName)

	var visited []visitedSchema
	for _, site := range sites {
		cat, err := r.Manager.GetForSession(sess, site.Catalog)
		if err != nil {
			continue
		}
		schema, err := cat.GetSchema(site.Schema)
		if err != nil {
			continue
		}
		visited = append(visited, visitedSchema{site: site, schema: schema})

		if entry, err := schema.Get(tx, kind, name); err == nil {
			return entry, nil
		}
	}

	if ifExists {
		return nil, nil
	}

	msg := r.notFoundMessage(tx, sess, kind, name, visited)
	return nil, fmt.Errorf("%s: %w", msg, catalog.ErrNotFound)
}

// ResolveSchema resolves a schema by optional catalog qualifier,
// falling back to sess's default database.
func (r *Resolver) ResolveSchema(sess *session.Session, catalogName, schemaName string, ifExists bool) (*catalog.Schema, error) {
	name := catalogName
	if catalog.IsInvalidCatalog(name) {
		name = sess.SearchPath.DefaultDatabase()
	}
	cat, err := r.Manager.GetForSession(sess, name)
	if err != nil {
		if ifExists {
			return nil, nil
		}
		return nil, fmt.Errorf("Catalog %q does not exist!: %w", name, catalog.ErrNotFound)
	}
	schema, err := cat.GetSchema(schemaName)
	if err != nil {
		if ifExists {
			return nil, nil
		}
		return nil, err
	}
	return schema, nil
}

// ListSchemas lists every schema of one catalog (or the session's
// default database, if catalogName is unspecified).
func (r *Resolver) ListSchemas(sess *session.Session, catalogName string) ([]*catalog.Schema, error) {
	name := catalogName
	if catalog.IsInvalidCatalog(name) {
		name = sess.SearchPath.DefaultDatabase()
	}
	cat, err := r.Manager.GetForSession(sess, name)
	if err != nil {
		return nil, err
	}
	return cat.GetAllSchemas(), nil
}

// ListAllSchemas lists every schema across every attached catalog,
// sorted by (catalog_name, schema_name) per spec.md §6.
func (r *Resolver) ListAllSchemas() []*catalog.Schema {
	var out []*catalog.Schema
	for _, cat := range r.Manager.List() {
		out = append(out, cat.GetAllSchemas()...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Catalog.Name != out[j].Catalog.Name {
			return out[i].Catalog.Name < out[j].Catalog.Name
		}
		return out[i].Name < out[j].Name
	})
	return out
}
