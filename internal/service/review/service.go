// Package review implements the learner-facing review operations: daily
// queue construction and atomic review submission. It orchestrates the
// flashcard, memory-state and review-log stores around the scheduler
// engine; all persistence effects of one submission happen in a single
// transaction.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// Service errors surfaced to transport.
var (
	// ErrInvalidRating is returned when a submitted rating is outside
	// the four recognized values.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrUnitNotFound is returned when the referenced flashcard does not
	// exist or is inactive.
	ErrUnitNotFound = errors.New("flashcard not found or inactive")

	// ErrUnknownSubItem is returned when the submitted sub-item id does
	// not decompose out of the referenced flashcard.
	ErrUnknownSubItem = errors.New("unknown sub-item")

	// ErrReviewPersistenceFailed is returned when the submission
	// transaction fails; no state or log row was written. The underlying
	// cause is logged, never exposed.
	ErrReviewPersistenceFailed = errors.New("failed to persist review")
)

// DefaultQueueLimit caps a daily queue when the caller passes no limit.
const DefaultQueueLimit = 50

// DueItem is one entry of a learner's daily queue: a sub-item due for
// review together with the display payload the client renders and the
// identifiers it must echo back when submitting a rating.
type DueItem struct {
	UnitID  uuid.UUID            `json:"unit_id"`
	Kind    domain.FlashcardKind `json:"kind"`
	SubID   string               `json:"sub_id"`
	Prompt  string               `json:"prompt"`
	Answer  string               `json:"answer,omitempty"`
	Label   string               `json:"label,omitempty"`
	NewItem bool                 `json:"new_item"` // Never reviewed by this learner.
}

// ReviewResult carries the updated scheduling numbers of one submission.
type ReviewResult struct {
	UnitID       uuid.UUID `json:"unit_id"`
	SubID        string    `json:"sub_id"`
	Due          time.Time `json:"due"`
	IntervalDays int       `json:"interval_days"`
	Difficulty   float64   `json:"difficulty"`
	Stability    float64   `json:"stability"`
	Reps         int       `json:"reps"`
	Lapses       int       `json:"lapses"`
}

// Service defines the review operations exposed to transport.
type Service interface {
	// BuildDailyQueue returns the learner's due sub-items for asOf,
	// shuffled and capped at limit (DefaultQueueLimit when limit <= 0).
	// An empty queue is a valid result, never an error.
	BuildDailyQueue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]DueItem, error)

	// SubmitReview applies one rating to one sub-item atomically:
	// exactly one memory-state row is upserted and one log entry
	// appended, or neither.
	SubmitReview(ctx context.Context, learnerID, unitID uuid.UUID, subID string, rating domain.Rating, now time.Time) (*ReviewResult, error)

	// ListReviewHistory returns the learner's most recent log entries,
	// newest first.
	ListReviewHistory(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.ReviewLogEntry, error)
}
