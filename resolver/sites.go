// Package resolver implements C7 (turning a possibly-partial name
// into an ordered probe sequence and returning the first hit) and C8
// (synthesizing "did you mean" suggestions on a miss) — the two
// pieces that sit above dbmanager/catalog and give the rest of the
// system its name-resolution contract (spec.md §4.7-4.8).
package resolver

import (
	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"
)

// CandidateSites enumerates the ordered (catalog, schema) probe sites
// for a lookup, per the table in spec.md §4.7. catalogName/schemaName
// use catalog.InvalidCatalog/InvalidSchema for "unspecified".
func CandidateSites(sp *session.SearchPath, defaultDatabase, catalogName, schemaName string) []session.Site {
	switch {
	case catalog.IsInvalidCatalog(catalogName) && catalog.IsInvalidSchema(schemaName):
		return sp.Sites()

	case catalog.IsInvalidCatalog(catalogName):
		cats := sp.CatalogsForSchema(schemaName)
		if len(cats) == 0 {
			return []session.Site{{Catalog: defaultDatabase, Schema: schemaName}}
		}
		sites := make([]session.Site, len(cats))
		for i, c := range cats {
			sites[i] = session.Site{Catalog: c, Schema: schemaName}
		}
		return sites

	case catalog.IsInvalidSchema(schemaName):
		schemas := sp.SchemasForCatalog(catalogName)
		if len(schemas) == 0 {
			return []session.Site{{Catalog: catalogName, Schema: catalog.DefaultSchemaName}}
		}
		sites := make([]session.Site, len(schemas))
		for i, s := range schemas {
			sites[i] = session.Site{Catalog: catalogName, Schema: s}
		}
		return sites

	default:
		return []session.Site{{Catalog: catalogName, Schema: schemaName}}
	}
}
