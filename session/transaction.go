package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heron-db/catalog/catalog"
)

// Transaction is C9: the opaque value (catalog, session_context)
// every mutating catalog call accepts. It is deliberately thin — the
// visibility bookkeeping lives in catalog.TxnState; this just bundles
// that state with the caller's context and a wire-friendly UUID,
// grounded on the teacher's catalog/transaction.go doc comment ("ID
// should be globally unique, UUID recommended").
type Transaction struct {
	ID    uuid.UUID
	ctx   context.Context
	state *catalog.TxnState
}

// Begin starts a new transaction bound to ctx. Once ctx is cancelled,
// Check reports catalog.ErrCancelled (spec.md §5 "Cancellation");
// Commit and Rollback do not consult ctx.
func Begin(ctx context.Context) *Transaction {
	return &Transaction{ID: uuid.New(), ctx: ctx, state: catalog.NewTxnState()}
}

// FromContext builds a per-call transaction handle for non-
// transactional convenience overloads (spec.md §4.9: "non-
// transactional overloads construct a per-call handle from the
// session context").
func FromContext(ctx context.Context) *Transaction {
	return Begin(ctx)
}

// State returns the catalog-visible transaction snapshot this handle
// wraps.
func (t *Transaction) State() *catalog.TxnState { return t.state }

// Context returns the session context this transaction is bound to.
func (t *Transaction) Context() context.Context { return t.ctx }

// Check reports catalog.ErrCancelled if the bound context has already
// been cancelled. Callers invoke this before any mutation takes
// effect, never after.
func (t *Transaction) Check() error {
	if err := t.ctx.Err(); err != nil {
		return fmt.Errorf("transaction %s: %w", t.ID, catalog.ErrCancelled)
	}
	return nil
}

// Commit finalizes the transaction, making its writes visible to
// later snapshots, and returns the assigned commit sequence number.
func (t *Transaction) Commit() uint64 { return t.state.Commit() }

// Rollback aborts the transaction; none of its writes become visible.
func (t *Transaction) Rollback() { t.state.Rollback() }
