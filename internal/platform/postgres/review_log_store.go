package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/store"
)

// defaultHistoryLimit caps ListForLearner when the caller passes no limit.
const defaultHistoryLimit = 100

// ReviewLogStore implements store.ReviewLogStore on PostgreSQL. The
// review_log table is append-only; no update or delete statements exist.
type ReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewLogStore creates a PostgreSQL-backed ReviewLogStore. The db
// handle is initialized and managed by the caller. A nil logger falls
// back to the process default.
func NewReviewLogStore(db store.DBTX, logger *slog.Logger) *ReviewLogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// Append implements store.ReviewLogStore.Append.
func (s *ReviewLogStore) Append(ctx context.Context, entry *domain.ReviewLogEntry) error {
	query := `
		INSERT INTO review_log (id, learner_id, unit_id, sub_id, rating, reviewed_at, elapsed_days, scheduled_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.LearnerID,
		entry.UnitID,
		entry.SubID,
		int(entry.Rating),
		entry.ReviewedAt,
		entry.ElapsedDays,
		entry.ScheduledDays,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.NewStoreError("review_log", "append", "duplicate entry id", store.ErrDuplicate)
		}
		return store.NewStoreError("review_log", "append", "exec failed", err)
	}

	return nil
}

// ListForLearner implements store.ReviewLogStore.ListForLearner.
func (s *ReviewLogStore) ListForLearner(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.ReviewLogEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
		SELECT id, learner_id, unit_id, sub_id, rating, reviewed_at, elapsed_days, scheduled_days
		FROM review_log
		WHERE learner_id = $1
		ORDER BY reviewed_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		return nil, store.NewStoreError("review_log", "list", "query failed", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var entries []*domain.ReviewLogEntry
	for rows.Next() {
		var entry domain.ReviewLogEntry
		var rating int
		if err := rows.Scan(
			&entry.ID,
			&entry.LearnerID,
			&entry.UnitID,
			&entry.SubID,
			&rating,
			&entry.ReviewedAt,
			&entry.ElapsedDays,
			&entry.ScheduledDays,
		); err != nil {
			return nil, store.NewStoreError("review_log", "list", "scan failed", err)
		}
		entry.Rating = domain.Rating(rating)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review_log", "list", "iteration failed", err)
	}

	return entries, nil
}

// WithTx implements store.ReviewLogStore.WithTx.
func (s *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &ReviewLogStore{db: tx, logger: s.logger}
}
