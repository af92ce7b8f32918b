package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// ReviewLogStore persists the append-only audit trail of rating events.
// Entries are never updated or deleted.
type ReviewLogStore interface {
	// Append writes one log entry.
	Append(ctx context.Context, entry *domain.ReviewLogEntry) error

	// ListForLearner retrieves the learner's most recent entries, newest
	// first, capped at limit.
	ListForLearner(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.ReviewLogEntry, error)

	// WithTx returns a ReviewLogStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
