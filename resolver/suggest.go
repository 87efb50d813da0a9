package resolver

import (
	"fmt"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"
)

// suggestionCap is the per-name Levenshtein distance cap beyond which
// a candidate is not considered a typo for suggestion purposes
// (spec.md §4.8 "Levenshtein details").
func suggestionCap(name string) int {
	return len(name)/2 + 1
}

// match is a candidate suggestion: the entry found, its distance from
// the requested name, and the site it was found at.
type match struct {
	entry    *catalog.Entry
	distance int
	site     session.Site
}

// notFoundMessage builds the full `'<Kind> with name <n> does not
// exist!'`-prefixed error text for a miss, trying the three
// suggestion layers in order (spec.md §4.8): an exact extension-table
// hit short-circuits with its own message shape; otherwise the
// closest local (visited) or global (unseen) match is appended as a
// "Did you mean" hint, minimally qualified if it came from an unseen
// site.
func (r *Resolver) notFoundMessage(tx *catalog.TxnState, sess *session.Session, kind catalog.EntryKind, name string, visited []visitedSchema) string {
	base := fmt.Sprintf("%s with name %s does not exist!", kind, name)

	if kind.IsFunctionKind() {
		if ext := lookupExtension(extensionFunctions, name); ext != "" {
			return extensionHintMessage(kind, name, ext)
		}
	}

	distanceCap := suggestionCap(name)

	local := closestAcross(tx, kind, name, distanceCap, visitedSites(visited))
	global := closestAcross(tx, kind, name, distanceCap, r.allSites())

	winner := local
	qualifyCatalog, qualifySchema := false, false
	if global != nil && (winner == nil || global.distance < winner.distance) {
		winner = global
		qualifyCatalog, qualifySchema = r.minimalQualification(sess, winner.site)
	}

	if winner == nil {
		return base
	}
	qname := catalog.NewQualifiedName(winner.site.Catalog, winner.site.Schema, winner.entry.Name).Format(qualifyCatalog, qualifySchema)
	return fmt.Sprintf("%s\nDid you mean %q?", base, qname)
}

// extensionHintMessage is the install-hint message shape from
// spec.md §6, used verbatim when the extension registry holds an
// exact (case-insensitive) match for name.
func extensionHintMessage(kind catalog.EntryKind, name, extension string) string {
	return fmt.Sprintf(
		"%s with name %q is not in the catalog, but it exists in the %s extension.\n\nTo install and load the extension, run:\nINSTALL %s;\nLOAD %s;",
		kind, name, extension, extension, extension,
	)
}

// siteSchema pairs a probe site with the schema object found there,
// shared by both the local (visited) and global (every attached
// catalog) suggestion passes.
type siteSchema struct {
	site   session.Site
	schema *catalog.Schema
}

func visitedSites(visited []visitedSchema) []siteSchema {
	out := make([]siteSchema, len(visited))
	for i, v := range visited {
		out[i] = siteSchema{site: v.site, schema: v.schema}
	}
	return out
}

// allSites enumerates every schema of every attached catalog, sorted
// by (catalog_name, schema_name) per spec.md §6 — the deterministic
// order this module's Open-Question decision requires (see
// DESIGN.md).
func (r *Resolver) allSites() []siteSchema {
	var out []siteSchema
	for _, schema := range r.ListAllSchemas() {
		out = append(out, siteSchema{
			site:   session.Site{Catalog: schema.Catalog.Name, Schema: schema.Name},
			schema: schema,
		})
	}
	return out
}

// closestAcross returns the single closest match to name across every
// site in sites, breaking ties by the order sites are given in (the
// schema-visit order for local suggestions, the (catalog,schema) sort
// order for global ones).
func closestAcross(tx *catalog.TxnState, kind catalog.EntryKind, name string, distanceCap int, sites []siteSchema) *match {
	var best *match
	for _, s := range sites {
		entry, d, ok := s.schema.Registry(kind).ClosestMatch(tx, name, distanceCap)
		if !ok {
			continue
		}
		if best == nil || d < best.distance {
			best = &match{entry: entry, distance: d, site: s.site}
		}
	}
	return best
}

// minimalQualification determines, per spec.md §4.8, the smallest
// prefix that would uniquely identify site under sess's current
// search path.
func (r *Resolver) minimalQualification(sess *session.Session, site session.Site) (qualifyCatalog, qualifySchema bool) {
	bySchema := CandidateSites(sess.SearchPath, sess.SearchPath.DefaultDatabase(), catalog.InvalidCatalog, site.Schema)
	if containsSite(bySchema, site) {
		return false, true
	}
	byCatalog := CandidateSites(sess.SearchPath, sess.SearchPath.DefaultDatabase(), site.Catalog, catalog.InvalidSchema)
	if containsSite(byCatalog, site) {
		return true, false
	}
	return true, true
}

func containsSite(sites []session.Site, target session.Site) bool {
	for _, s := range sites {
		if s == target {
			return true
		}
	}
	return false
}
