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

// FlashcardStore implements store.FlashcardStore on PostgreSQL.
type FlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashcardStore creates a PostgreSQL-backed FlashcardStore. The db
// handle is initialized and managed by the caller. A nil logger falls
// back to the process default.
func NewFlashcardStore(db store.DBTX, logger *slog.Logger) *FlashcardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

const flashcardColumns = `id, creator_id, subject_id, kind, content, scheduled_date, active, created_at, updated_at`

// GetByID implements store.FlashcardStore.GetByID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE id = $1
	`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, store.NewStoreError("flashcard", "get", "query failed", err)
	}
	return card, nil
}

// ListAvailable implements store.FlashcardStore.ListAvailable. The
// learner-visibility join belongs to the hosting application's schema;
// here every active card whose scheduled date has arrived is visible.
func (s *FlashcardStore) ListAvailable(
	ctx context.Context,
	learnerID uuid.UUID,
	asOf time.Time,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE active AND scheduled_date <= $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, store.NewStoreError("flashcard", "list", "query failed", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, store.NewStoreError("flashcard", "list", "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "iteration failed", err)
	}

	return cards, nil
}

// WithTx implements store.FlashcardStore.WithTx.
func (s *FlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &FlashcardStore{db: tx, logger: s.logger}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var kind string
	if err := row.Scan(
		&card.ID,
		&card.CreatorID,
		&card.SubjectID,
		&kind,
		&card.Content,
		&card.ScheduledDate,
		&card.Active,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	card.Kind = domain.FlashcardKind(kind)
	if !card.Kind.IsValid() {
		return nil, fmt.Errorf("stored flashcard %s has unknown kind %q", card.ID, kind)
	}
	return &card, nil
}
