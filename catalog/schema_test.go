package catalog

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func testColumns() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
}

func TestSchemaCreateTableAndGet(t *testing.T) {
	cat := NewCatalog("db", false, false)
	s := NewSchema("main", cat)
	tx := NewTxnState()

	entry, err := s.CreateTable(tx, "widgets", testColumns(), OnConflictError)
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if entry.Kind != KindTable {
		t.Errorf("Kind = %v, want KindTable", entry.Kind)
	}
	got, err := s.Get(tx, KindTable, "widgets")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OID != entry.OID {
		t.Errorf("Get mismatched OID")
	}
}

func TestSchemaDisjointNamespacesPerKind(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()

	if _, err := s.CreateTable(tx, "widgets", testColumns(), OnConflictError); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if _, err := s.CreateView(tx, "widgets", testColumns(), "SELECT 1", OnConflictError); err != nil {
		t.Errorf("CreateView should not conflict with a table of the same name: %v", err)
	}
}

func TestSchemaDropEntryBlockedByDependents(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()

	table, _ := s.CreateTable(tx, "widgets", testColumns(), OnConflictError)
	view, _ := s.CreateView(tx, "widgets_view", testColumns(), "SELECT * FROM widgets", OnConflictError)
	view.Dependencies = append(view.Dependencies, table)

	err := s.DropEntry(tx, KindTable, "widgets", DropOptions{})
	if !errors.Is(err, ErrHasDependents) {
		t.Errorf("DropEntry: got %v, want ErrHasDependents", err)
	}
}

func TestSchemaDropEntryCascade(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()

	table, _ := s.CreateTable(tx, "widgets", testColumns(), OnConflictError)
	view, _ := s.CreateView(tx, "widgets_view", testColumns(), "SELECT * FROM widgets", OnConflictError)
	view.Dependencies = append(view.Dependencies, table)

	if err := s.DropEntry(tx, KindTable, "widgets", DropOptions{Cascade: true}); err != nil {
		t.Fatalf("DropEntry cascade: %v", err)
	}
	if _, err := s.Get(tx, KindView, "widgets_view"); !errors.Is(err, ErrNotFound) {
		t.Errorf("dependent view should have been dropped by cascade")
	}
}

func TestSchemaDropEntryIfExists(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()
	if err := s.DropEntry(tx, KindTable, "missing", DropOptions{IfExists: true}); err != nil {
		t.Errorf("DropEntry IfExists on missing entry: got %v, want nil", err)
	}
}

func TestSchemaRenameEntry(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()
	table, _ := s.CreateTable(tx, "widgets", testColumns(), OnConflictError)

	renamed, err := s.RenameEntry(tx, KindTable, "widgets", "gadgets")
	if err != nil {
		t.Fatalf("RenameEntry: %v", err)
	}
	if renamed.OID != table.OID {
		t.Errorf("RenameEntry should preserve OID: got %d, want %d", renamed.OID, table.OID)
	}
	if _, err := s.Get(tx, KindTable, "widgets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name should be gone after rename")
	}
	if _, err := s.Get(tx, KindTable, "gadgets"); err != nil {
		t.Errorf("new name should resolve after rename: %v", err)
	}
}

func TestSchemaCreateOrAlterFunctionAddsOverload(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()

	if _, err := s.CreateOrAlterFunction(tx, "add_one", []string{"x"}, nil, "x + 1"); err != nil {
		t.Fatalf("first CreateOrAlterFunction: %v", err)
	}
	entry, err := s.CreateOrAlterFunction(tx, "add_one", []string{"x", "y"}, nil, "x + y")
	if err != nil {
		t.Fatalf("second CreateOrAlterFunction: %v", err)
	}
	info := entry.Payload.(*MacroInfo)
	if len(info.Overloads) != 1 {
		t.Errorf("expected 1 overload appended, got %d", len(info.Overloads))
	}
}

func TestSchemaEntryMutationsBumpCatalogVersion(t *testing.T) {
	cat := NewCatalog("db", false, false)
	s := NewSchema("main", cat)
	tx := NewTxnState()

	before := cat.Version()
	if _, err := s.CreateTable(tx, "widgets", testColumns(), OnConflictError); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	afterCreate := cat.Version()
	if afterCreate == before {
		t.Errorf("Version did not change after CreateTable")
	}

	if _, err := s.AlterEntry(tx, KindTable, "widgets", func(e *Entry) (*Entry, error) {
		return e, nil
	}); err != nil {
		t.Fatalf("AlterEntry: %v", err)
	}
	afterAlter := cat.Version()
	if afterAlter == afterCreate {
		t.Errorf("Version did not change after AlterEntry")
	}

	if _, err := s.RenameEntry(tx, KindTable, "widgets", "gadgets"); err != nil {
		t.Fatalf("RenameEntry: %v", err)
	}
	afterRename := cat.Version()
	if afterRename == afterAlter {
		t.Errorf("Version did not change after RenameEntry")
	}

	if err := s.DropEntry(tx, KindTable, "gadgets", DropOptions{}); err != nil {
		t.Fatalf("DropEntry: %v", err)
	}
	afterDrop := cat.Version()
	if afterDrop == afterRename {
		t.Errorf("Version did not change after DropEntry")
	}
}

func TestSchemaCreateIgnoreOnExistingEntryDoesNotBumpVersion(t *testing.T) {
	cat := NewCatalog("db", false, false)
	s := NewSchema("main", cat)
	tx := NewTxnState()

	if _, err := s.CreateTable(tx, "widgets", testColumns(), OnConflictError); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	before := cat.Version()
	if _, err := s.CreateTable(tx, "widgets", testColumns(), OnConflictIgnore); err != nil {
		t.Fatalf("CreateTable OnConflictIgnore: %v", err)
	}
	if cat.Version() != before {
		t.Errorf("Version changed after a no-op OnConflictIgnore create: got %d, want %d", cat.Version(), before)
	}
}
