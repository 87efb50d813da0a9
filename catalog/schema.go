package catalog

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Schema is C3: a named collection of entries, one Registry per kind
// so that a table and a function may share a name without colliding
// (spec.md §3 invariant 1). Grounded on the teacher's per-schema
// table map in catalog/dynamic.go, generalized from one kind to all
// thirteen.
type Schema struct {
	OID     OID
	Name    string
	Catalog *Catalog // back-reference, non-owning

	registries [numEntryKinds]*Registry
}

// NewSchema constructs an empty schema owned by cat.
func NewSchema(name string, cat *Catalog) *Schema {
	s := &Schema{OID: nextOID(), Name: name, Catalog: cat}
	for k := EntryKind(0); k < numEntryKinds; k++ {
		s.registries[k] = NewRegistry(k)
	}
	return s
}

// Registry returns the registry backing one entry kind.
func (s *Schema) Registry(kind EntryKind) *Registry {
	return s.registries[kind]
}

// AllRegistries returns every kind's registry, in EntryKind order, for
// callers (snapshot serialization) that need to walk
// every kind without enumerating the closed set themselves.
func (s *Schema) AllRegistries() []*Registry {
	return append([]*Registry(nil), s.registries[:]...)
}

// Get looks up name under kind, visible to tx.
func (s *Schema) Get(tx *TxnState, kind EntryKind, name string) (*Entry, error) {
	return s.registries[kind].Get(tx, name)
}

// GetOrFail is Get with the qualified-name form of the not-found
// message, matching the source's GetEntry/GetEntryOrFail split
// (spec.md §4 supplemented feature, from original_source/catalog.cpp).
func (s *Schema) GetOrFail(tx *TxnState, kind EntryKind, name string) (*Entry, error) {
	e, err := s.Get(tx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("%s with name %s does not exist in schema %q!: %w", kind, name, s.Name, ErrNotFound)
	}
	return e, nil
}

func (s *Schema) create(tx *TxnState, kind EntryKind, name string, conflict OnConflict, payload Variant) (*Entry, error) {
	if err := s.Catalog.systemGuard("create " + kind.String()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("entry name must not be empty: %w", ErrInvalidArgument)
	}
	_, getErr := s.Get(tx, kind, name)
	alreadyExists := getErr == nil
	entry, err := s.registries[kind].Create(tx, name, conflict, func(oid OID) *Entry {
		return &Entry{OID: oid, Kind: kind, Name: name, Schema: s, Payload: payload}
	})
	if err != nil {
		return nil, err
	}
	// OnConflictIgnore against an existing entry returns that entry
	// untouched (registry.go's Create) — not a mutation, so the
	// version counter must not advance for it (spec.md §3 invariant 5).
	if !(alreadyExists && conflict == OnConflictIgnore) {
		s.Catalog.bump()
	}
	return entry, nil
}

// CreateTable creates a KindTable entry.
func (s *Schema) CreateTable(tx *TxnState, name string, columns *arrow.Schema, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindTable, name, conflict, &TableInfo{Columns: columns})
}

// CreateView creates a KindView entry.
func (s *Schema) CreateView(tx *TxnState, name string, columns *arrow.Schema, selectText string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindView, name, conflict, &ViewInfo{Columns: columns, SelectText: selectText})
}

// CreateSequence creates a KindSequence entry.
func (s *Schema) CreateSequence(tx *TxnState, name string, start, increment, min, max int64, cycle bool, conflict OnConflict) (*Entry, error) {
	info := &SequenceInfo{StartValue: start, Increment: increment, MinValue: min, MaxValue: max, Cycle: cycle}
	info.CurrentValue.Store(start)
	return s.create(tx, KindSequence, name, conflict, info)
}

// CreateType creates a KindType entry.
func (s *Schema) CreateType(tx *TxnState, name string, logical arrow.DataType, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindType, name, conflict, &TypeInfo{LogicalType: logical})
}

// CreateScalarFunction creates a KindScalarFunction entry.
func (s *Schema) CreateScalarFunction(tx *TxnState, name string, sigs []FunctionSignature, impl string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindScalarFunction, name, conflict, &FunctionInfo{Signatures: sigs, Implementation: impl})
}

// CreateAggregateFunction creates a KindAggregateFunction entry.
func (s *Schema) CreateAggregateFunction(tx *TxnState, name string, sigs []FunctionSignature, impl string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindAggregateFunction, name, conflict, &AggregateFunctionInfo{FunctionInfo{Signatures: sigs, Implementation: impl}})
}

// CreateTableFunction creates a KindTableFunction entry.
func (s *Schema) CreateTableFunction(tx *TxnState, name string, sigs []FunctionSignature, impl string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindTableFunction, name, conflict, &TableFunctionInfo{FunctionInfo{Signatures: sigs, Implementation: impl}})
}

// CreatePragmaFunction creates a KindPragmaFunction entry.
func (s *Schema) CreatePragmaFunction(tx *TxnState, name string, sigs []FunctionSignature, impl string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindPragmaFunction, name, conflict, &PragmaFunctionInfo{FunctionInfo{Signatures: sigs, Implementation: impl}})
}

// CreateCopyFunction creates a KindCopyFunction entry.
func (s *Schema) CreateCopyFunction(tx *TxnState, name string, sigs []FunctionSignature, impl string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindCopyFunction, name, conflict, &CopyFunctionInfo{FunctionInfo{Signatures: sigs, Implementation: impl}})
}

// CreateMacro creates a KindMacro entry.
func (s *Schema) CreateMacro(tx *TxnState, name string, params []string, defaults map[string][]byte, expr string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindMacro, name, conflict, &MacroInfo{Parameters: params, Defaults: defaults, Expression: expr})
}

// CreateOrAlterFunction is a supplemented convenience (original_source's
// AlterOnConflict macro-overload pattern): if name already exists as a
// KindMacro, the new overload is appended rather than conflicting.
func (s *Schema) CreateOrAlterFunction(tx *TxnState, name string, params []string, defaults map[string][]byte, expr string) (*Entry, error) {
	if _, err := s.Get(tx, KindMacro, name); err != nil {
		return s.CreateMacro(tx, name, params, defaults, expr, OnConflictError)
	}
	return s.AlterEntry(tx, KindMacro, name, func(e *Entry) (*Entry, error) {
		info := e.Payload.(*MacroInfo)
		next := *info
		next.Overloads = append(append([]MacroOverload{}, info.Overloads...), MacroOverload{Parameters: params, Defaults: defaults, Expression: expr})
		out := *e
		out.Payload = &next
		return &out, nil
	})
}

// CreateCollation creates a KindCollation entry.
func (s *Schema) CreateCollation(tx *TxnState, name, impl string, combinableWith []string, conflict OnConflict) (*Entry, error) {
	return s.create(tx, KindCollation, name, conflict, &CollationInfo{Implementation: impl, CombinableWith: combinableWith})
}

// CreateIndex creates a KindIndex entry on an existing table.
func (s *Schema) CreateIndex(tx *TxnState, name, table string, columns []string, unique bool, expr string, conflict OnConflict) (*Entry, error) {
	if _, err := s.Get(tx, KindTable, table); err != nil {
		return nil, fmt.Errorf("cannot index unknown table %q: %w", table, err)
	}
	return s.create(tx, KindIndex, name, conflict, &IndexInfo{TableName: table, Columns: columns, Unique: unique, Expression: expr})
}

// DropOptions controls Schema.DropEntry behavior.
type DropOptions struct {
	IfExists bool
	Cascade  bool
}

// DropEntry removes the named entry of kind, enforcing the dependency
// invariant: a drop without Cascade fails with ErrHasDependents if any
// other live entry in the schema still depends on it (spec.md §3
// invariant 6). With Cascade, dependents are dropped first,
// depth-first.
func (s *Schema) DropEntry(tx *TxnState, kind EntryKind, name string, opts DropOptions) error {
	if err := s.Catalog.systemGuard("drop " + kind.String()); err != nil {
		return err
	}
	entry, err := s.Get(tx, kind, name)
	if err != nil {
		if opts.IfExists {
			return nil
		}
		return err
	}

	dependents := s.findDependents(tx, entry)
	if len(dependents) > 0 {
		if !opts.Cascade {
			return fmt.Errorf("%s %q has %d dependent entries: %w", kind, name, len(dependents), ErrHasDependents)
		}
		for _, dep := range dependents {
			if err := s.DropEntry(tx, dep.Kind, dep.Name, opts); err != nil && err != ErrNotFound {
				return err
			}
		}
	}
	if err := s.registries[kind].Drop(tx, name); err != nil {
		return err
	}
	s.Catalog.bump()
	return nil
}

// findDependents scans every registry for live entries that list
// entry among their Dependencies.
func (s *Schema) findDependents(tx *TxnState, entry *Entry) []*Entry {
	var out []*Entry
	for _, reg := range s.registries {
		for _, e := range reg.Scan(tx) {
			for _, dep := range e.Dependencies {
				if dep.OID == entry.OID {
					out = append(out, e)
					break
				}
			}
		}
	}
	return out
}

// AlterEntry replaces an entry's payload via mutate, dispatched by
// kind so callers never need a type switch at the call site.
func (s *Schema) AlterEntry(tx *TxnState, kind EntryKind, name string, mutate func(*Entry) (*Entry, error)) (*Entry, error) {
	if err := s.Catalog.systemGuard("alter " + kind.String()); err != nil {
		return nil, err
	}
	entry, err := s.registries[kind].Alter(tx, name, mutate)
	if err != nil {
		return nil, err
	}
	s.Catalog.bump()
	return entry, nil
}

// RenameEntry renames an entry in place, leaving its OID and
// dependents' back-references (by OID, not name) intact.
func (s *Schema) RenameEntry(tx *TxnState, kind EntryKind, oldName, newName string) (*Entry, error) {
	if err := s.Catalog.systemGuard("rename " + kind.String()); err != nil {
		return nil, err
	}
	if s.registries[kind].Exists(tx, newName) {
		return nil, fmt.Errorf("%s with name %q: %w", kind, newName, ErrAlreadyExists)
	}
	current, err := s.registries[kind].Get(tx, oldName)
	if err != nil {
		return nil, err
	}
	renamed := *current
	renamed.Name = newName
	if err := s.registries[kind].Drop(tx, oldName); err != nil {
		return nil, err
	}
	if _, err := s.registries[kind].Create(tx, newName, OnConflictError, func(OID) *Entry { return &renamed }); err != nil {
		return nil, err
	}
	s.Catalog.bump()
	return &renamed, nil
}

// EntryCount returns the number of live entries visible to tx across
// every kind.
func (s *Schema) EntryCount(tx *TxnState) int {
	n := 0
	for _, reg := range s.registries {
		n += len(reg.Scan(tx))
	}
	return n
}
