package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/store"
)

// MemoryStateStore implements store.MemoryStateStore on PostgreSQL.
//
// sub_id is stored as TEXT NOT NULL DEFAULT '' (empty = the basic card's
// single slot) so the (learner_id, unit_id, sub_id) uniqueness
// constraint backs the upsert's ON CONFLICT target.
type MemoryStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMemoryStateStore creates a PostgreSQL-backed MemoryStateStore. The
// db handle is initialized and managed by the caller. A nil logger falls
// back to the process default.
func NewMemoryStateStore(db store.DBTX, logger *slog.Logger) *MemoryStateStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "memory_state_store")),
	}
}

var _ store.MemoryStateStore = (*MemoryStateStore)(nil)

const memoryStateColumns = `learner_id, unit_id, sub_id, difficulty, stability, reps, lapses, last_review, created_at, updated_at`

// GetForUpdate implements store.MemoryStateStore.GetForUpdate. It takes
// a row-level lock so concurrent submissions for the same key serialize;
// only call it inside a transaction.
func (s *MemoryStateStore) GetForUpdate(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
	subID string,
) (*domain.MemoryState, error) {
	query := `
		SELECT ` + memoryStateColumns + `
		FROM memory_state
		WHERE learner_id = $1 AND unit_id = $2 AND sub_id = $3
		FOR UPDATE
	`

	state, err := scanMemoryState(s.db.QueryRowContext(ctx, query, learnerID, unitID, subID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMemoryStateNotFound
		}
		return nil, store.NewStoreError("memory_state", "get", "query failed", err)
	}
	return state, nil
}

// ListForLearner implements store.MemoryStateStore.ListForLearner.
func (s *MemoryStateStore) ListForLearner(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.MemoryState, error) {
	query := `
		SELECT ` + memoryStateColumns + `
		FROM memory_state
		WHERE learner_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, store.NewStoreError("memory_state", "list", "query failed", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var states []*domain.MemoryState
	for rows.Next() {
		state, err := scanMemoryState(rows)
		if err != nil {
			return nil, store.NewStoreError("memory_state", "list", "scan failed", err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("memory_state", "list", "iteration failed", err)
	}

	return states, nil
}

// Upsert implements store.MemoryStateStore.Upsert. Exactly one row per
// (learner, unit, sub_id) key survives the call.
func (s *MemoryStateStore) Upsert(ctx context.Context, state *domain.MemoryState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO memory_state (` + memoryStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (learner_id, unit_id, sub_id) DO UPDATE SET
			difficulty = EXCLUDED.difficulty,
			stability = EXCLUDED.stability,
			reps = EXCLUDED.reps,
			lapses = EXCLUDED.lapses,
			last_review = EXCLUDED.last_review,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		state.LearnerID,
		state.UnitID,
		state.SubID,
		state.Difficulty,
		state.Stability,
		state.Reps,
		state.Lapses,
		nullableTime(state.LastReview),
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("memory_state", "upsert", "exec failed", err)
	}

	return nil
}

// WithTx implements store.MemoryStateStore.WithTx.
func (s *MemoryStateStore) WithTx(tx *sql.Tx) store.MemoryStateStore {
	return &MemoryStateStore{db: tx, logger: s.logger}
}

func scanMemoryState(row rowScanner) (*domain.MemoryState, error) {
	var state domain.MemoryState
	var lastReview sql.NullTime
	if err := row.Scan(
		&state.LearnerID,
		&state.UnitID,
		&state.SubID,
		&state.Difficulty,
		&state.Stability,
		&state.Reps,
		&state.Lapses,
		&lastReview,
		&state.CreatedAt,
		&state.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastReview.Valid {
		state.LastReview = lastReview.Time
	}
	return &state, nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
