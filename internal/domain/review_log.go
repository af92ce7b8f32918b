package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLogEntry is the immutable audit record of one rating event.
// Entries are append-only; ElapsedDays and ScheduledDays are derived at
// review time and are the only place analytics can recover them.
type ReviewLogEntry struct {
	ID            uuid.UUID `json:"id"`
	LearnerID     uuid.UUID `json:"learner_id"`
	UnitID        uuid.UUID `json:"unit_id"`
	SubID         string    `json:"sub_id"`
	Rating        Rating    `json:"rating"`
	ReviewedAt    time.Time `json:"reviewed_at"`
	ElapsedDays   int       `json:"elapsed_days"`   // Whole days since the previous review, 0 on first exposure.
	ScheduledDays int       `json:"scheduled_days"` // The interval that had been promised, 0 on first exposure.
}
