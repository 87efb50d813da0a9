package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// OnConflict selects what Registry.Create does when a name already
// exists under the same kind.
type OnConflict int

const (
	// OnConflictError fails with ErrAlreadyExists (the default).
	OnConflictError OnConflict = iota
	// OnConflictIgnore leaves the existing entry untouched and returns
	// it without error.
	OnConflictIgnore
	// OnConflictReplace atomically drops the existing entry and
	// installs the new one, preserving the name's single OID history
	// only insofar as a fresh OID is allocated (DuckDB's CREATE OR
	// REPLACE semantics: same name, new identity).
	OnConflictReplace
)

// version is one entry in a name's visibility chain, newest first.
// entry == nil marks a tombstone (the name was dropped by txn).
type version struct {
	txn   *TxnState
	entry *Entry
	next  *version
}

// Registry is C2: storage for every entry of one kind within one
// schema, with MVCC-style visibility so that a transaction's writes
// are invisible to others until it commits (spec.md §4.2, §5). This
// generalizes the teacher's single-kind, non-transactional map
// (catalog/dynamic.go's table map guarded by a plain RWMutex) to all
// thirteen entry kinds sharing one chain-per-name shape.
type Registry struct {
	kind EntryKind

	mu     sync.RWMutex
	chains map[string]*version
	// order preserves first-insertion order for Scan, matching the
	// teacher's "declaration order" iteration over its table map
	// (achieved there via a parallel slice; here via a counter).
	order map[string]int
	seq   int
}

// NewRegistry constructs an empty registry for one entry kind.
func NewRegistry(kind EntryKind) *Registry {
	return &Registry{
		kind:   kind,
		chains: make(map[string]*version),
		order:  make(map[string]int),
	}
}

// Kind returns the entry kind this registry stores.
func (r *Registry) Kind() EntryKind { return r.kind }

// visible walks a chain and returns the newest version visible to tx
// (nil tx means "latest committed state").
func visible(head *version, tx *TxnState) *version {
	for v := head; v != nil; v = v.next {
		if v.txn == nil || v.txn.visibleTo(tx) {
			return v
		}
	}
	return nil
}

// Get returns the entry named name as visible to tx, or ErrNotFound.
func (r *Registry) Get(tx *TxnState, name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v := visible(r.chains[name], tx)
	if v == nil || v.entry == nil {
		return nil, fmt.Errorf("%s with name %s does not exist!: %w", r.kind, name, ErrNotFound)
	}
	return v.entry, nil
}

// Exists reports whether name resolves to a live entry under tx.
func (r *Registry) Exists(tx *TxnState, name string) bool {
	_, err := r.Get(tx, name)
	return err == nil
}

// Create installs a new entry, applying conflict handling per policy.
// build is called with a freshly allocated OID to produce the entry
// body once the caller is known to win any conflict, so rejected
// attempts never burn an OID on a losing race.
func (r *Registry) Create(tx *TxnState, name string, conflict OnConflict, build func(OID) *Entry) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	head := r.chains[name]
	cur := visible(head, tx)
	if cur != nil && cur.entry != nil {
		switch conflict {
		case OnConflictIgnore:
			return cur.entry, nil
		case OnConflictReplace:
			// fall through to install a replacement version below
		default:
			return nil, fmt.Errorf("%s with name %q: %w", r.kind, name, ErrAlreadyExists)
		}
	}
	if head != nil && head.txn != nil && !head.txn.committed() && head.txn.id != tx.id {
		return nil, fmt.Errorf("concurrent write to %q: %w", name, ErrSerializationFailure)
	}

	entry := build(nextOID())
	r.chains[name] = &version{txn: tx, entry: entry, next: head}
	if _, seen := r.order[name]; !seen {
		r.order[name] = r.seq
		r.seq++
	}
	return entry, nil
}

// Drop removes name, visible to tx going forward. Returns ErrNotFound
// if no live version is visible.
func (r *Registry) Drop(tx *TxnState, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	head := r.chains[name]
	cur := visible(head, tx)
	if cur == nil || cur.entry == nil {
		return fmt.Errorf("%s with name %s does not exist!: %w", r.kind, name, ErrNotFound)
	}
	if head != nil && head.txn != nil && !head.txn.committed() && head.txn.id != tx.id {
		return fmt.Errorf("concurrent write to %q: %w", name, ErrSerializationFailure)
	}
	r.chains[name] = &version{txn: tx, entry: nil, next: head}
	return nil
}

// Alter replaces name's entry with the result of mutate(current),
// atomically with respect to other writers. mutate must not retain
// or mutate the *Entry it is given; it should return a new value.
func (r *Registry) Alter(tx *TxnState, name string, mutate func(*Entry) (*Entry, error)) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	head := r.chains[name]
	cur := visible(head, tx)
	if cur == nil || cur.entry == nil {
		return nil, fmt.Errorf("%s with name %s does not exist!: %w", r.kind, name, ErrNotFound)
	}
	if head != nil && head.txn != nil && !head.txn.committed() && head.txn.id != tx.id {
		return nil, fmt.Errorf("concurrent write to %q: %w", name, ErrSerializationFailure)
	}
	next, err := mutate(cur.entry)
	if err != nil {
		return nil, err
	}
	r.chains[name] = &version{txn: tx, entry: next, next: head}
	return next, nil
}

// Scan returns every entry visible to tx, in first-creation order
// (ties among concurrently-created entries are broken by name).
func (r *Registry) Scan(tx *TxnState) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.chains))
	for name, head := range r.chains {
		if v := visible(head, tx); v != nil && v.entry != nil {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := r.order[names[i]], r.order[names[j]]
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	out := make([]*Entry, len(names))
	for i, n := range names {
		out[i] = visible(r.chains[n], tx).entry
	}
	return out
}

// Names returns the names of every live entry visible to tx, sorted,
// for use by the suggestion engine's candidate enumeration.
func (r *Registry) Names(tx *TxnState) []string {
	entries := r.Scan(tx)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	sort.Strings(out)
	return out
}
