package resolver

import (
	"reflect"
	"testing"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"
)

func TestCandidateSitesBothInvalidIsSearchPath(t *testing.T) {
	sp, _ := session.NewSearchPath("db1", []session.Site{{Catalog: "db1", Schema: "main"}})
	sites := CandidateSites(sp, "db1", catalog.InvalidCatalog, catalog.InvalidSchema)
	want := sp.Sites()
	if !reflect.DeepEqual(sites, want) {
		t.Errorf("CandidateSites(invalid,invalid) = %v, want %v", sites, want)
	}
}

func TestCandidateSitesSchemaOnlyFallsBackToDefaultDatabase(t *testing.T) {
	sp, _ := session.NewSearchPath("db1", []session.Site{{Catalog: "db1", Schema: "main"}})
	sites := CandidateSites(sp, "db1", catalog.InvalidCatalog, "s2")
	want := []session.Site{{Catalog: "db1", Schema: "s2"}}
	if !reflect.DeepEqual(sites, want) {
		t.Errorf("CandidateSites(invalid,\"s2\") = %v, want %v", sites, want)
	}
}

func TestCandidateSitesCatalogOnlyFallsBackToDefaultSchema(t *testing.T) {
	sp, _ := session.NewSearchPath("db1", []session.Site{{Catalog: "db1", Schema: "main"}})
	sites := CandidateSites(sp, "db1", "db2", catalog.InvalidSchema)
	want := []session.Site{{Catalog: "db2", Schema: catalog.DefaultSchemaName}}
	if !reflect.DeepEqual(sites, want) {
		t.Errorf("CandidateSites(\"db2\",invalid) = %v, want %v", sites, want)
	}
}

func TestCandidateSitesFullyQualified(t *testing.T) {
	sp, _ := session.NewSearchPath("db1", []session.Site{{Catalog: "db1", Schema: "main"}})
	sites := CandidateSites(sp, "db1", "db2", "s2")
	want := []session.Site{{Catalog: "db2", Schema: "s2"}}
	if !reflect.DeepEqual(sites, want) {
		t.Errorf("CandidateSites(\"db2\",\"s2\") = %v, want %v", sites, want)
	}
}

func TestCandidateSitesBothInvalidContainsEveryReachableSite(t *testing.T) {
	sp, _ := session.NewSearchPath("db1", []session.Site{
		{Catalog: "db1", Schema: "main"},
		{Catalog: "db1", Schema: "extra"},
	})
	sites := CandidateSites(sp, "db1", catalog.InvalidCatalog, catalog.InvalidSchema)
	for _, want := range []session.Site{{Catalog: "db1", Schema: "main"}, {Catalog: "db1", Schema: "extra"}} {
		if !containsSite(sites, want) {
			t.Errorf("CandidateSites(invalid,invalid) missing reachable site %v: got %v", want, sites)
		}
	}
}
