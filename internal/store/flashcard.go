package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// FlashcardStore is the read-only accessor for flashcards the review
// service consumes. Authoring and CRUD live in the main application;
// this service only selects cards into rotation.
type FlashcardStore interface {
	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrFlashcardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// ListAvailable retrieves active flashcards whose scheduled date is
	// at or before asOf, within the learner's visible scope.
	ListAvailable(ctx context.Context, learnerID uuid.UUID, asOf time.Time) ([]*domain.Flashcard, error)

	// WithTx returns a FlashcardStore bound to the given transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
