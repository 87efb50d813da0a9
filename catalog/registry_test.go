package catalog

import (
	"errors"
	"testing"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()

	entry, err := r.Create(tx, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := r.Get(tx, "widgets")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OID != entry.OID {
		t.Errorf("Get returned OID %d, want %d", got.OID, entry.OID)
	}
}

func TestRegistryGetNotFound(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	if _, err := r.Get(tx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: got %v, want ErrNotFound", err)
	}
}

func TestRegistryCreateConflict(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	build := func(oid OID) *Entry { return &Entry{OID: oid, Kind: KindTable, Name: "widgets"} }

	if _, err := r.Create(tx, "widgets", OnConflictError, build); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := r.Create(tx, "widgets", OnConflictError, build); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second Create: got %v, want ErrAlreadyExists", err)
	}
}

func TestRegistryCreateOnConflictIgnore(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	first, err := r.Create(tx, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := r.Create(tx, "widgets", OnConflictIgnore, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	if err != nil {
		t.Fatalf("OnConflictIgnore Create: %v", err)
	}
	if second.OID != first.OID {
		t.Errorf("OnConflictIgnore returned a different entry: got OID %d, want %d", second.OID, first.OID)
	}
}

func TestRegistryCreateOnConflictReplace(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	first, _ := r.Create(tx, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets", Comment: "v1"}
	})
	second, err := r.Create(tx, "widgets", OnConflictReplace, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets", Comment: "v2"}
	})
	if err != nil {
		t.Fatalf("OnConflictReplace Create: %v", err)
	}
	if second.OID == first.OID {
		t.Errorf("OnConflictReplace should allocate a fresh OID")
	}
	got, _ := r.Get(tx, "widgets")
	if got.Comment != "v2" {
		t.Errorf("Get after replace: got comment %q, want %q", got.Comment, "v2")
	}
}

func TestRegistryDrop(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	r.Create(tx, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	if err := r.Drop(tx, "widgets"); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := r.Get(tx, "widgets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Drop: got %v, want ErrNotFound", err)
	}
	if err := r.Drop(tx, "widgets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Drop missing: got %v, want ErrNotFound", err)
	}
}

func TestRegistryUncommittedWritesAreInvisibleToOthers(t *testing.T) {
	r := NewRegistry(KindTable)
	writer := NewTxnState()
	reader := NewTxnState()

	r.Create(writer, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})

	if _, err := r.Get(reader, "widgets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("uncommitted write visible to other transaction: got %v, want ErrNotFound", err)
	}
	if _, err := r.Get(writer, "widgets"); err != nil {
		t.Errorf("uncommitted write should be visible to its own author: %v", err)
	}
}

func TestRegistryCommittedWriteVisibleToLaterSnapshot(t *testing.T) {
	r := NewRegistry(KindTable)
	writer := NewTxnState()
	r.Create(writer, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	writer.Commit()

	later := NewTxnState()
	if _, err := r.Get(later, "widgets"); err != nil {
		t.Errorf("committed write invisible to later snapshot: %v", err)
	}
}

func TestRegistryEarlierSnapshotDoesNotSeeLaterCommit(t *testing.T) {
	r := NewRegistry(KindTable)
	early := NewTxnState()

	writer := NewTxnState()
	r.Create(writer, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	writer.Commit()

	if _, err := r.Get(early, "widgets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("earlier snapshot should not see later commit: got %v", err)
	}
}

func TestRegistryConcurrentWritersCollide(t *testing.T) {
	r := NewRegistry(KindTable)
	a := NewTxnState()
	b := NewTxnState()

	build := func(oid OID) *Entry { return &Entry{OID: oid, Kind: KindTable, Name: "widgets"} }
	if _, err := r.Create(a, "widgets", OnConflictError, build); err != nil {
		t.Fatalf("a.Create: %v", err)
	}
	if _, err := r.Create(b, "widgets", OnConflictError, build); !errors.Is(err, ErrSerializationFailure) {
		t.Errorf("concurrent conflicting write: got %v, want ErrSerializationFailure", err)
	}
}

func TestRegistryScanOrderIsCreationOrder(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Create(tx, name, OnConflictError, func(oid OID) *Entry {
			return &Entry{OID: oid, Kind: KindTable, Name: name}
		})
	}
	entries := r.Scan(tx)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Scan()[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestRegistrySimilar(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	for _, name := range []string{"widgets", "gadgets", "orders"} {
		r.Create(tx, name, OnConflictError, func(oid OID) *Entry {
			return &Entry{OID: oid, Kind: KindTable, Name: name}
		})
	}
	entry, dist, ok := r.Similar(tx, "widget")
	if !ok {
		t.Fatalf("Similar: expected a match")
	}
	if entry.Name != "widgets" {
		t.Errorf("Similar(%q) = %q, want %q", "widget", entry.Name, "widgets")
	}
	if dist != 1 {
		t.Errorf("Similar(%q) distance = %d, want 1", "widget", dist)
	}
}

func TestRegistrySimilarBeyondThreshold(t *testing.T) {
	r := NewRegistry(KindTable)
	tx := NewTxnState()
	r.Create(tx, "widgets", OnConflictError, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: KindTable, Name: "widgets"}
	})
	if _, _, ok := r.Similar(tx, "completely_unrelated_name"); ok {
		t.Errorf("Similar: expected no match beyond the distance cap")
	}
}
