package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/domain/srs"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/logger"
	"github.com/DesdeChaves/valcoin-memoria/internal/store"
)

// Verify interface compliance at compile time.
var _ Service = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the Service interface.
type reviewServiceImpl struct {
	cards  store.FlashcardStore
	states store.MemoryStateStore
	logs   store.ReviewLogStore
	tx     store.TxRunner
	srs    srs.Service
	logger *slog.Logger
}

// NewService creates the review service. All store and engine
// dependencies are required; a nil logger falls back to the process
// default.
func NewService(
	cards store.FlashcardStore,
	states store.MemoryStateStore,
	logs store.ReviewLogStore,
	tx store.TxRunner,
	srsService srs.Service,
	log *slog.Logger,
) Service {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("cards store cannot be nil")
	}
	if states == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("states store cannot be nil")
	}
	if logs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("logs store cannot be nil")
	}
	if tx == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("tx runner cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("srs service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		cards:  cards,
		states: states,
		logs:   logs,
		tx:     tx,
		srs:    srsService,
		logger: log.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements Service.SubmitReview. Validation runs before
// any I/O; every read and write happens inside one transaction with the
// state row locked, so submissions for the same (learner, unit, sub-item)
// serialize while other keys proceed in parallel.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
	subID string,
	rating domain.Rating,
	now time.Time,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		log.Warn("invalid review rating",
			slog.String("learner_id", learnerID.String()),
			slog.String("unit_id", unitID.String()),
			slog.Int("rating", int(rating)))
		return nil, ErrInvalidRating
	}

	var result *ReviewResult
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)
		states := s.states.WithTx(tx)
		logs := s.logs.WithTx(tx)

		card, err := cards.GetByID(ctx, unitID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrUnitNotFound
			}
			return fmt.Errorf("failed to get flashcard: %w", err)
		}
		if !card.Active {
			return ErrUnitNotFound
		}

		if err := validateSubItem(card, subID); err != nil {
			return err
		}

		prev, err := states.GetForUpdate(ctx, learnerID, unitID, subID)
		if err != nil {
			if !errors.Is(err, store.ErrMemoryStateNotFound) {
				return fmt.Errorf("failed to get memory state: %w", err)
			}
			prev = nil
		}

		advanced, err := s.srs.Advance(prev, rating, now)
		if err != nil {
			return fmt.Errorf("failed to advance memory state: %w", err)
		}

		state := advanced.State
		state.LearnerID = learnerID
		state.UnitID = unitID
		state.SubID = subID
		if prev == nil {
			state.CreatedAt = now
		}

		if err := states.Upsert(ctx, state); err != nil {
			return fmt.Errorf("failed to upsert memory state: %w", err)
		}

		entry := &domain.ReviewLogEntry{
			ID:            uuid.New(),
			LearnerID:     learnerID,
			UnitID:        unitID,
			SubID:         subID,
			Rating:        rating,
			ReviewedAt:    now,
			ElapsedDays:   advanced.ElapsedDays,
			ScheduledDays: advanced.ScheduledDays,
		}
		if err := logs.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		result = &ReviewResult{
			UnitID:       unitID,
			SubID:        subID,
			Due:          advanced.Due,
			IntervalDays: advanced.IntervalDays,
			Difficulty:   state.Difficulty,
			Stability:    state.Stability,
			Reps:         state.Reps,
			Lapses:       state.Lapses,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrUnitNotFound) || errors.Is(err, ErrUnknownSubItem) {
			return nil, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("unit_id", unitID.String()),
			slog.String("sub_id", subID))
		return nil, ErrReviewPersistenceFailed
	}

	log.Debug("review submitted",
		slog.String("learner_id", learnerID.String()),
		slog.String("unit_id", unitID.String()),
		slog.String("sub_id", subID),
		slog.String("rating", rating.String()),
		slog.Float64("stability", result.Stability),
		slog.Float64("difficulty", result.Difficulty),
		slog.Int("interval_days", result.IntervalDays))

	return result, nil
}

// ListReviewHistory implements Service.ListReviewHistory.
func (s *reviewServiceImpl) ListReviewHistory(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.ReviewLogEntry, error) {
	entries, err := s.logs.ListForLearner(ctx, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list review history: %w", err)
	}
	return entries, nil
}

// validateSubItem checks that subID identifies one of the card's
// decomposed sub-items. A card whose content no longer decomposes is
// treated like a stale reference.
func validateSubItem(card *domain.Flashcard, subID string) error {
	items, err := card.Decompose()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownSubItem, err)
	}
	for _, item := range items {
		if item.SubID == subID {
			return nil
		}
	}
	return ErrUnknownSubItem
}
