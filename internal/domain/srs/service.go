package srs

import (
	"time"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// AdvanceResult is the outcome of applying one rating to a sub-item's
// memory state: the next state, the promised interval, and the
// bookkeeping fields the review log records.
type AdvanceResult struct {
	State         *domain.MemoryState
	IntervalDays  int
	Due           time.Time
	ElapsedDays   int // Whole days since the previous review; 0 on first exposure.
	ScheduledDays int // The interval promised at the previous review; 0 on first exposure.
}

// Service defines the scheduler engine operations.
type Service interface {
	// Advance computes the next memory state for a rating observed at
	// now. prev is nil on first exposure. The returned state is a new
	// value; prev is never mutated.
	Advance(prev *domain.MemoryState, rating domain.Rating, now time.Time) (*AdvanceResult, error)

	// Parameters returns the immutable parameter set the engine runs with.
	Parameters() Parameters
}

type defaultService struct {
	params Parameters
}

// NewService creates a scheduler engine with the given parameters.
func NewService(params Parameters) Service {
	return &defaultService{params: params}
}

// NewDefaultService creates a scheduler engine with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParameters()}
}

func (s *defaultService) Parameters() Parameters {
	return s.params
}

// Advance implements Service. It is total over valid input: any finite
// previous state combined with a valid rating yields a result.
func (s *defaultService) Advance(
	prev *domain.MemoryState,
	rating domain.Rating,
	now time.Time,
) (*AdvanceResult, error) {
	if !rating.IsValid() {
		return nil, domain.ErrInvalidRating
	}

	p := s.params
	if prev == nil || prev.Reps == 0 {
		return s.firstExposure(prev, rating, now), nil
	}

	elapsed := elapsedDays(prev.LastReview, now)
	r := retrievability(p, float64(elapsed), prev.Stability)

	next := *prev
	next.Difficulty = round4(nextDifficulty(p, prev.Difficulty, rating))
	if rating == domain.RatingAgain {
		next.Stability = round4(nextForgetStability(p, prev.Difficulty, prev.Stability, r))
		next.Lapses++
	} else {
		next.Stability = round4(nextRecallStability(p, prev.Difficulty, prev.Stability, r, rating))
	}
	next.Reps++
	next.LastReview = now
	next.UpdatedAt = now

	interval := nextInterval(p, next.Stability)
	return &AdvanceResult{
		State:         &next,
		IntervalDays:  interval,
		Due:           now.AddDate(0, 0, interval),
		ElapsedDays:   elapsed,
		ScheduledDays: nextInterval(p, prev.Stability),
	}, nil
}

// firstExposure seeds state from the rating alone; there is no elapsed
// time component before the first review.
func (s *defaultService) firstExposure(
	prev *domain.MemoryState,
	rating domain.Rating,
	now time.Time,
) *AdvanceResult {
	p := s.params

	state := &domain.MemoryState{CreatedAt: now}
	if prev != nil {
		*state = *prev
	}
	state.Difficulty = round4(initDifficulty(p, rating, true))
	state.Stability = round4(initStability(p, rating))
	state.Reps = 1
	state.Lapses = 0
	if rating == domain.RatingAgain {
		state.Lapses = 1
	}
	state.LastReview = now
	state.UpdatedAt = now

	interval := nextInterval(p, state.Stability)
	return &AdvanceResult{
		State:        state,
		IntervalDays: interval,
		Due:          now.AddDate(0, 0, interval),
	}
}

// elapsedDays returns whole days between last review and now, clamping
// negative clock skew to 0.
func elapsedDays(lastReview, now time.Time) int {
	d := int(now.Sub(lastReview).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
