package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/logger"
)

// BuildDailyQueue implements Service.BuildDailyQueue.
//
// Due items are shuffled before the cap is applied so no flashcard kind
// or insertion order dominates the head of the queue; callers must not
// rely on any ordering beyond "due items only".
func (s *reviewServiceImpl) BuildDailyQueue(
	ctx context.Context,
	learnerID uuid.UUID,
	asOf time.Time,
	limit int,
) ([]DueItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	asOfDate := dateOf(asOf)

	cards, err := s.cards.ListAvailable(ctx, learnerID, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list available flashcards: %w", err)
	}

	states, err := s.states.ListForLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory states: %w", err)
	}
	byKey := lo.KeyBy(states, func(st *domain.MemoryState) domain.StateKey {
		return st.Key()
	})

	var due []DueItem
	for _, card := range cards {
		items, err := card.Decompose()
		if err != nil {
			// One malformed card must not abort the whole queue build;
			// surface it for operators and move on.
			if errors.Is(err, domain.ErrMalformedContent) {
				log.Warn("skipping malformed flashcard",
					slog.String("unit_id", card.ID.String()),
					slog.String("kind", string(card.Kind)),
					slog.String("error", err.Error()))
				continue
			}
			return nil, fmt.Errorf("failed to decompose flashcard %s: %w", card.ID, err)
		}

		for _, item := range items {
			state := byKey[domain.StateKey{UnitID: card.ID, SubID: item.SubID}]
			if !isDue(state, asOfDate) {
				continue
			}
			due = append(due, DueItem{
				UnitID:  card.ID,
				Kind:    card.Kind,
				SubID:   item.SubID,
				Prompt:  item.Prompt,
				Answer:  item.Answer,
				Label:   item.Label,
				NewItem: state == nil,
			})
		}
	}

	due = lo.Shuffle(due)
	if len(due) > limit {
		due = due[:limit]
	}

	log.Debug("daily queue built",
		slog.String("learner_id", learnerID.String()),
		slog.Time("as_of", asOfDate),
		slog.Int("due_items", len(due)))

	return due, nil
}

// isDue applies the due-selection rule: a sub-item is due when it has
// never been reviewed, its stability is zero, or at least ceil(stability)
// days have passed since the last review.
func isDue(state *domain.MemoryState, asOfDate time.Time) bool {
	if state == nil || state.Stability == 0 || state.LastReview.IsZero() {
		return true
	}
	dueOn := dateOf(state.LastReview).AddDate(0, 0, int(math.Ceil(state.Stability)))
	return !asOfDate.Before(dueOn)
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
