package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemoryState tracks a learner's retention of one sub-item. It is the
// per-(learner, unit, sub-item) record the FSRS scheduler reads and
// writes; nothing else mutates it.
//
// SubID is the empty string for a basic card's implicit slot. A zero
// LastReview means the sub-item has never been reviewed.
type MemoryState struct {
	LearnerID  uuid.UUID `json:"learner_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	SubID      string    `json:"sub_id"`
	Difficulty float64   `json:"difficulty"` // Intrinsic hardness, within [1, 10].
	Stability  float64   `json:"stability"`  // Days until recall decays to target retention.
	Reps       int       `json:"reps"`       // Total reviews recorded.
	Lapses     int       `json:"lapses"`     // Reviews rated Again.
	LastReview time.Time `json:"last_review"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks if the MemoryState has valid data.
// Returns an error if any field fails validation.
func (s *MemoryState) Validate() error {
	if s.LearnerID == uuid.Nil {
		return ErrEmptyStateLearnerID
	}

	if s.UnitID == uuid.Nil {
		return ErrEmptyStateUnitID
	}

	if s.Difficulty < 1 || s.Difficulty > 10 {
		return ErrInvalidDifficulty
	}

	if s.Stability < 0 {
		return ErrInvalidStability
	}

	return nil
}

// Key identifies the state row within a learner's collection.
func (s *MemoryState) Key() StateKey {
	return StateKey{UnitID: s.UnitID, SubID: s.SubID}
}

// StateKey identifies one sub-item's state within a learner's collection.
type StateKey struct {
	UnitID uuid.UUID
	SubID  string
}
