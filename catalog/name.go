// Package catalog implements the in-memory naming authority of an
// analytical database: schemas, tables, views, sequences, types,
// functions, macros, collations and indexes, addressed by a
// three-part qualified name and mutated through a transaction handle.
//
// The package is organized bottom-up: name.go (qualified names),
// kind.go/entry.go (the closed set of entry kinds and their payloads),
// registry.go (per-schema, per-kind storage with MVCC-style
// visibility), schema.go (one registry per kind) and catalog.go (one
// schema registry per attached database). Cross-database resolution
// and "did you mean" suggestions live one level up, in the resolver
// package, which only depends on the interfaces exposed here.
package catalog

import "strings"

// Reserved catalog and schema identifiers (spec.md §6).
const (
	// SystemCatalogName is the reserved, read-only catalog holding
	// built-in functions and types.
	SystemCatalogName = "system"

	// TempCatalogName is the reserved, session-local catalog.
	TempCatalogName = "temp"

	// DefaultSchemaName is the schema created by default in any newly
	// attached catalog.
	DefaultSchemaName = "main"
)

// InvalidCatalog and InvalidSchema are the sentinel values meaning
// "unspecified" in a QualifiedName. No component other than this file
// may special-case them directly — everyone else calls
// IsInvalidCatalog/IsInvalidSchema.
const (
	InvalidCatalog = ""
	InvalidSchema  = ""
)

// IsInvalidCatalog reports whether a catalog name is the "unspecified"
// sentinel.
func IsInvalidCatalog(name string) bool {
	return name == InvalidCatalog
}

// IsInvalidSchema reports whether a schema name is the "unspecified"
// sentinel.
func IsInvalidSchema(name string) bool {
	return name == InvalidSchema
}

// QualifiedName is a three-part name Q = (catalog, schema, name). The
// first two parts are optional and represented by the Invalid*
// sentinels above.
type QualifiedName struct {
	Catalog string
	Schema  string
	Name    string
}

// NewQualifiedName builds a fully-specified qualified name.
func NewQualifiedName(catalog, schema, name string) QualifiedName {
	return QualifiedName{Catalog: catalog, Schema: schema, Name: name}
}

// Format renders the name with the minimal qualification requested.
// qualifyCatalog=false, qualifySchema=false yields the bare name;
// combinations prepend "catalog." and/or "schema." in order.
func (q QualifiedName) Format(qualifyCatalog, qualifySchema bool) string {
	var b strings.Builder
	if qualifyCatalog && !IsInvalidCatalog(q.Catalog) {
		b.WriteString(q.Catalog)
		b.WriteByte('.')
	}
	if qualifySchema && !IsInvalidSchema(q.Schema) {
		b.WriteString(q.Schema)
		b.WriteByte('.')
	}
	b.WriteString(q.Name)
	return b.String()
}

// String renders the name fully qualified whenever catalog/schema are
// specified; used for error messages and logging.
func (q QualifiedName) String() string {
	return q.Format(!IsInvalidCatalog(q.Catalog), !IsInvalidSchema(q.Schema))
}
