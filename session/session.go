package session

import (
	"github.com/google/uuid"

	"github.com/heron-db/catalog/catalog"
)

// Session is one SQL client connection's worth of catalog-facing
// state: its search path and its private temporary catalog (spec.md
// §3: "the session-local temporary catalog, whose lifetime is the
// session"; §9 Design Notes: "place it on the session context, not at
// process scope").
type Session struct {
	ID         uuid.UUID
	Identity   string
	SearchPath *SearchPath
	Temp       *catalog.Catalog
}

// New creates a session with a private temp catalog and a search
// path defaulting to defaultDatabase.main.
func New(identity, defaultDatabase string) (*Session, error) {
	path, err := NewSearchPath(defaultDatabase, []Site{{Catalog: defaultDatabase, Schema: catalog.DefaultSchemaName}})
	if err != nil {
		return nil, err
	}
	temp := catalog.NewCatalog(catalog.TempCatalogName, false, true)
	tx := catalog.NewTxnState()
	if _, err := temp.CreateSchema(catalog.DefaultSchemaName, catalog.OnConflictError); err != nil {
		return nil, err
	}
	tx.Commit()

	return &Session{
		ID:         uuid.New(),
		Identity:   identity,
		SearchPath: path,
		Temp:       temp,
	}, nil
}

// Close releases the session's temporary catalog. Per spec.md §3
// invariant 4, nothing else needs to happen: the temp catalog is
// unreferenced by any other session and becomes garbage once dropped
// here.
func (s *Session) Close() {
	s.Temp = nil
}
