// Package heron provides a high-level facade over the catalog,
// session and database-manager packages: attach/detach catalogs,
// resolve qualified names, and manage a session's search path,
// mirroring spec.md §6's External Interfaces in one entry point.
//
// The facade wires C2-C9 together; it intentionally does not
// duplicate every typed create/drop/alter call already exposed on
// catalog.Schema — ResolveSchema hands back the schema object those
// calls are made against.
package heron
