package catalog

import "sync/atomic"

var (
	txnIDCounter    atomic.Uint64
	commitIDCounter atomic.Uint64
)

// TxnState is the catalog-visible half of a transaction: enough state
// for C2's per-entry visibility chains to decide what a given
// transaction can see, without the registry needing to know anything
// about sessions, contexts or commit/rollback orchestration — that
// lives in the session package's Transaction, which wraps a
// *TxnState and carries the rest (spec.md §4.9: "the handle carries
// commit/rollback responsibilities only by reference; the catalog
// never initiates commits itself").
type TxnState struct {
	id            uint64
	startSnapshot uint64
	commitID      atomic.Uint64 // 0 until Commit is called
	aborted       atomic.Bool
}

// NewTxnState begins a new transaction snapshot: it will see every
// write committed before this call, plus its own uncommitted writes.
func NewTxnState() *TxnState {
	return &TxnState{
		id:            txnIDCounter.Add(1),
		startSnapshot: commitIDCounter.Load(),
	}
}

// ID is the transaction's own identifier, used for self-visibility of
// uncommitted writes.
func (t *TxnState) ID() uint64 { return t.id }

// Commit marks the transaction committed and returns the commit
// sequence number assigned to it; subsequent transactions with a
// StartSnapshot >= this number will see its writes.
func (t *TxnState) Commit() uint64 {
	cid := commitIDCounter.Add(1)
	t.commitID.Store(cid)
	return cid
}

// Rollback marks the transaction aborted; its writes are never
// visible to any other transaction, committed or not.
func (t *TxnState) Rollback() {
	t.aborted.Store(true)
}

// IsAborted reports whether Rollback has been called.
func (t *TxnState) IsAborted() bool { return t.aborted.Load() }

// committed reports whether Commit has been called (regardless of
// whether it has propagated to any particular reader's snapshot yet).
func (t *TxnState) committed() bool { return t.commitID.Load() != 0 }

// visibleTo reports whether a version written by t is visible to a
// read under snapshot `reader`: either the same transaction (an
// uncommitted write is always visible to its own author), or a
// transaction that committed before reader's snapshot started.
func (t *TxnState) visibleTo(reader *TxnState) bool {
	if t.IsAborted() {
		return false
	}
	if reader != nil && t.id == reader.id {
		return true
	}
	cid := t.commitID.Load()
	if cid == 0 {
		return false // uncommitted, and not the reader's own
	}
	if reader == nil {
		// A nil reader means "latest committed state" (used by
		// non-transactional convenience wrappers).
		return true
	}
	return cid <= reader.startSnapshot
}
