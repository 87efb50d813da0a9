package catalog

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Catalog is C4: one attached database. It owns a set of named
// schemas and tracks its own version, bumped on every successful
// structural change, so that callers can cheaply detect "nothing
// changed since I last looked" (spec.md §4.4; grounded on the
// teacher's multicatalog.go AddCatalog/RemoveCatalog bookkeeping,
// generalized from one Arrow-table catalog to the full entry model).
type Catalog struct {
	OID  OID
	Name string

	IsSystem    bool
	IsTemporary bool

	// bootstrapMode, while true, lifts the system catalog's read-only
	// guard. Only BeginBootstrap sets it, and only dbmanager.Bootstrap
	// calls BeginBootstrap, to populate the system catalog's built-in
	// functions and types once at startup.
	bootstrapMode bool

	version atomic.Uint64

	mu      sync.RWMutex
	schemas map[string]*Schema
	order   map[string]int
	seq     int
}

// BeginBootstrap temporarily lifts the system catalog's read-only
// guard so a caller outside this package (dbmanager.Bootstrap) can
// populate it with built-in functions and types. The returned func
// restores the guard and must be called, typically via defer. Calling
// it on a non-system catalog is harmless but pointless, since the
// guard it lifts never applied there.
func (c *Catalog) BeginBootstrap() func() {
	c.bootstrapMode = true
	return func() { c.bootstrapMode = false }
}

// systemGuard reports ErrPermissionDenied if c is the system catalog
// and not currently mid-bootstrap (spec.md §3 invariant 3: "The
// system catalog is never mutated after initialisation").
func (c *Catalog) systemGuard(action string) error {
	if c.IsSystem && !c.bootstrapMode {
		return fmt.Errorf("cannot %s in system catalog: %w", action, ErrPermissionDenied)
	}
	return nil
}

// NewCatalog constructs an attached, empty catalog (callers typically
// follow up with a CreateSchema(DefaultSchemaName, ...) to match
// spec.md §6's "every newly attached catalog gets a main schema").
func NewCatalog(name string, isSystem, isTemporary bool) *Catalog {
	return &Catalog{
		OID:         nextOID(),
		Name:        name,
		IsSystem:    isSystem,
		IsTemporary: isTemporary,
		schemas:     make(map[string]*Schema),
		order:       make(map[string]int),
	}
}

// Version returns the catalog's current version counter.
func (c *Catalog) Version() uint64 { return c.version.Load() }

func (c *Catalog) bump() { c.version.Add(1) }

// CreateSchema creates a new, empty schema. Fails with
// ErrPermissionDenied if the catalog is the system catalog (it is
// read-only per spec.md §6).
func (c *Catalog) CreateSchema(name string, conflict OnConflict) (*Schema, error) {
	if err := c.systemGuard("create schema"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.schemas[name]; ok {
		switch conflict {
		case OnConflictIgnore:
			return existing, nil
		case OnConflictReplace:
			// replace below
		default:
			return nil, fmt.Errorf("schema with name %q: %w", name, ErrAlreadyExists)
		}
	}
	s := NewSchema(name, c)
	c.schemas[name] = s
	if _, seen := c.order[name]; !seen {
		c.order[name] = c.seq
		c.seq++
	}
	c.bump()
	return s, nil
}

// GetSchema returns the schema named name, or ErrNotFound.
func (c *Catalog) GetSchema(name string) (*Schema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema with name %s does not exist!: %w", name, ErrNotFound)
	}
	return s, nil
}

// DropSchema removes a schema and every entry it contains.
func (c *Catalog) DropSchema(name string, opts DropOptions) error {
	if err := c.systemGuard("drop schema"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.schemas[name]; !ok {
		if opts.IfExists {
			return nil
		}
		return fmt.Errorf("schema with name %s does not exist!: %w", name, ErrNotFound)
	}
	delete(c.schemas, name)
	c.bump()
	return nil
}

// GetAllSchemas returns every schema, sorted deterministically by
// name — the source (original_source/catalog.cpp GetAllSchemas)
// leaves iteration order as whatever its internal hash map yields;
// this resolves the spec's Open Question on suggestion tie-breaking
// by sorting explicitly (see DESIGN.md).
func (c *Catalog) GetAllSchemas() []*Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Schema, 0, len(c.schemas))
	for _, s := range c.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SchemaNames returns the sorted names of every attached schema.
func (c *Catalog) SchemaNames() []string {
	schemas := c.GetAllSchemas()
	out := make([]string, len(schemas))
	for i, s := range schemas {
		out[i] = s.Name
	}
	return out
}

// GetType resolves a type name to its KindType entry, looking in
// schema first and falling back to the system catalog's main schema
// if sys is non-nil and schema doesn't define it — the supplemented
// TypeExists system-catalog fallback (spec.md §4 supplemented
// feature, original_source/catalog.cpp's GetType).
func (c *Catalog) GetType(tx *TxnState, schemaName, name string, sys *Catalog) (*Entry, error) {
	s, err := c.GetSchema(schemaName)
	if err == nil {
		if e, err := s.Get(tx, KindType, name); err == nil {
			return e, nil
		}
	}
	if sys != nil && sys != c {
		if sysSchema, err := sys.GetSchema(DefaultSchemaName); err == nil {
			if e, err := sysSchema.Get(tx, KindType, name); err == nil {
				return e, nil
			}
		}
	}
	return nil, fmt.Errorf("Type with name %s does not exist!: %w", name, ErrNotFound)
}

// Verify runs the catalog's internal consistency checks: every
// schema's entries with dependencies must reference OIDs that still
// resolve within this catalog. Dependencies on entries in a different
// attached catalog are reported as dangling; callers needing
// cross-catalog checks compose their own check on top.
func (c *Catalog) Verify(tx *TxnState) error {
	c.mu.RLock()
	schemas := make([]*Schema, 0, len(c.schemas))
	for _, s := range c.schemas {
		schemas = append(schemas, s)
	}
	c.mu.RUnlock()

	known := make(map[OID]bool)
	for _, s := range schemas {
		for _, reg := range s.registries {
			for _, e := range reg.Scan(tx) {
				known[e.OID] = true
			}
		}
	}
	for _, s := range schemas {
		for _, reg := range s.registries {
			for _, e := range reg.Scan(tx) {
				for _, dep := range e.Dependencies {
					if !known[dep.OID] {
						return fmt.Errorf("entry %s references dangling dependency %s: %w", e.Name, dep.Name, ErrInvalidArgument)
					}
				}
			}
		}
	}
	return nil
}
