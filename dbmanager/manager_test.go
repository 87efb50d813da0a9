package dbmanager

import (
	"errors"
	"testing"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/session"
)

func TestAttachAndGet(t *testing.T) {
	m := New()
	cat := catalog.NewCatalog("db1", false, false)
	if err := m.Attach("db1", cat); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	got, err := m.Get("db1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != cat {
		t.Errorf("Get returned a different catalog")
	}
}

func TestAttachRejectsReservedNames(t *testing.T) {
	m := New()
	for _, name := range []string{catalog.SystemCatalogName, catalog.TempCatalogName} {
		if err := m.Attach(name, catalog.NewCatalog(name, false, false)); !errors.Is(err, catalog.ErrInvalidArgument) {
			t.Errorf("Attach(%q): got %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestAttachConflict(t *testing.T) {
	m := New()
	m.Attach("db1", catalog.NewCatalog("db1", false, false))
	if err := m.Attach("db1", catalog.NewCatalog("db1", false, false)); !errors.Is(err, catalog.ErrAlreadyExists) {
		t.Errorf("Attach duplicate: got %v, want ErrAlreadyExists", err)
	}
}

func TestDetach(t *testing.T) {
	m := New()
	m.Attach("db1", catalog.NewCatalog("db1", false, false))
	if err := m.Detach("db1"); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if _, err := m.Get("db1"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Get after Detach: got %v, want ErrNotFound", err)
	}
}

func TestGetSystemCatalog(t *testing.T) {
	m := New()
	sys, err := m.Get(catalog.SystemCatalogName)
	if err != nil {
		t.Fatalf("Get(system): %v", err)
	}
	if !sys.IsSystem {
		t.Errorf("system catalog should have IsSystem = true")
	}
}

func TestListIsAttachOrder(t *testing.T) {
	m := New()
	m.Attach("zeta", catalog.NewCatalog("zeta", false, false))
	m.Attach("alpha", catalog.NewCatalog("alpha", false, false))
	list := m.List()
	if len(list) != 2 || list[0].Name != "zeta" || list[1].Name != "alpha" {
		t.Errorf("List() not in attach order: %v", namesOf(list))
	}
}

func namesOf(cats []*catalog.Catalog) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Name
	}
	return out
}

func TestGetForSessionResolvesTemp(t *testing.T) {
	m := New()
	sess, err := session.New("anonymous", "db1")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	cat, err := m.GetForSession(sess, catalog.TempCatalogName)
	if err != nil {
		t.Fatalf("GetForSession(temp): %v", err)
	}
	if cat != sess.Temp {
		t.Errorf("GetForSession(temp) did not return the session's own temp catalog")
	}
}
