package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FlashcardKind discriminates the content shape of a flashcard.
type FlashcardKind string

// Recognized flashcard kinds.
const (
	KindBasic          FlashcardKind = "basic"
	KindCloze          FlashcardKind = "cloze"
	KindImageOcclusion FlashcardKind = "image_occlusion"
)

// IsValid reports whether k is a recognized flashcard kind.
func (k FlashcardKind) IsValid() bool {
	switch k {
	case KindBasic, KindCloze, KindImageOcclusion:
		return true
	default:
		return false
	}
}

// Flashcard is a reviewable unit authored within a subject. Content is
// stored as a JSONB document whose shape is selected by Kind; use
// DecodeContent or Decompose to interpret it.
//
// ScheduledDate is the earliest date the card may enter rotation;
// inactive cards never appear in queues.
type Flashcard struct {
	ID            uuid.UUID       `json:"id"`
	CreatorID     uuid.UUID       `json:"creator_id"`
	SubjectID     uuid.UUID       `json:"subject_id"`
	Kind          FlashcardKind   `json:"kind"`
	Content       json.RawMessage `json:"content"`
	ScheduledDate time.Time       `json:"scheduled_date"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BasicContent is the content document of a KindBasic flashcard.
type BasicContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ClozeContent is the content document of a KindCloze flashcard. Text
// carries one or more numbered blanks written {{cN::answer}} or
// {{cN::answer::hint}}.
type ClozeContent struct {
	Text string `json:"text"`
}

// OcclusionMask is one covered region of an image-occlusion flashcard.
// The ID is assigned at creation time and stays stable across edits.
type OcclusionMask struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// OcclusionContent is the content document of a KindImageOcclusion flashcard.
type OcclusionContent struct {
	ImagePath string          `json:"image_path"`
	Masks     []OcclusionMask `json:"masks"`
}

// NewFlashcard creates a flashcard with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewFlashcard(
	creatorID, subjectID uuid.UUID,
	kind FlashcardKind,
	content json.RawMessage,
	scheduledDate time.Time,
) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		SubjectID:     subjectID,
		Kind:          kind,
		Content:       content,
		ScheduledDate: scheduledDate,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.CreatorID == uuid.Nil {
		return ErrFlashcardCreatorEmpty
	}

	if c.SubjectID == uuid.Nil {
		return ErrFlashcardSubjectEmpty
	}

	if !c.Kind.IsValid() {
		return ErrInvalidFlashcardKind
	}

	if len(c.Content) == 0 {
		return ErrFlashcardContentEmpty
	}

	var js json.RawMessage
	if err := json.Unmarshal(c.Content, &js); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}

	return nil
}

// AvailableOn reports whether the card may enter rotation on the given
// date: it must be active with a scheduled date at or before asOf.
func (c *Flashcard) AvailableOn(asOf time.Time) bool {
	return c.Active && !c.ScheduledDate.After(asOf)
}
