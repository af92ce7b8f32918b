package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// MemoryStateStore persists per-(learner, unit, sub-item) memory state.
// Exactly one row exists per key; rows are created on first rating and
// only ever mutated through an Upsert driven by the scheduler engine.
type MemoryStateStore interface {
	// GetForUpdate retrieves the state with a row-level lock (SELECT ...
	// FOR UPDATE). Call it inside a transaction when the row will be
	// written, so concurrent submissions for the same key serialize.
	// Returns ErrMemoryStateNotFound when absent.
	GetForUpdate(ctx context.Context, learnerID, unitID uuid.UUID, subID string) (*domain.MemoryState, error)

	// ListForLearner retrieves all of a learner's memory states, for
	// joining against decomposed sub-items during queue construction.
	ListForLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.MemoryState, error)

	// Upsert inserts the state row or updates it in place, keyed by
	// (learner_id, unit_id, sub_id). Validates the state first and
	// returns ErrInvalidEntity-wrapped errors on bad data.
	Upsert(ctx context.Context, state *domain.MemoryState) error

	// WithTx returns a MemoryStateStore bound to the given transaction.
	WithTx(tx *sql.Tx) MemoryStateStore
}
