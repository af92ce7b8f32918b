package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	creatorID := uuid.New()
	subjectID := uuid.New()
	content := json.RawMessage(`{"front": "Capital of France?", "back": "Paris"}`)
	scheduled := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	card, err := NewFlashcard(creatorID, subjectID, KindBasic, content, scheduled)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if card.CreatorID != creatorID {
		t.Errorf("Expected creator ID %s, got %s", creatorID, card.CreatorID)
	}
	if card.SubjectID != subjectID {
		t.Errorf("Expected subject ID %s, got %s", subjectID, card.SubjectID)
	}
	if !card.Active {
		t.Error("Expected new card to be active")
	}
	if !card.ScheduledDate.Equal(scheduled) {
		t.Errorf("Expected scheduled date %s, got %s", scheduled, card.ScheduledDate)
	}
	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Invalid creator
	if _, err := NewFlashcard(uuid.Nil, subjectID, KindBasic, content, scheduled); err != ErrFlashcardCreatorEmpty {
		t.Errorf("Expected ErrFlashcardCreatorEmpty, got %v", err)
	}

	// Invalid subject
	if _, err := NewFlashcard(creatorID, uuid.Nil, KindBasic, content, scheduled); err != ErrFlashcardSubjectEmpty {
		t.Errorf("Expected ErrFlashcardSubjectEmpty, got %v", err)
	}

	// Invalid kind
	if _, err := NewFlashcard(creatorID, subjectID, "audio", content, scheduled); err != ErrInvalidFlashcardKind {
		t.Errorf("Expected ErrInvalidFlashcardKind, got %v", err)
	}

	// Empty content
	if _, err := NewFlashcard(creatorID, subjectID, KindBasic, nil, scheduled); err != ErrFlashcardContentEmpty {
		t.Errorf("Expected ErrFlashcardContentEmpty, got %v", err)
	}
}

func TestFlashcardKindIsValid(t *testing.T) {
	t.Parallel() // Enable parallel execution
	for _, kind := range []FlashcardKind{KindBasic, KindCloze, KindImageOcclusion} {
		if !kind.IsValid() {
			t.Errorf("Expected %q to be valid", kind)
		}
	}
	for _, kind := range []FlashcardKind{"", "audio", "Basic"} {
		if kind.IsValid() {
			t.Errorf("Expected %q to be invalid", kind)
		}
	}
}

func TestFlashcardAvailableOn(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scheduled := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	card := Flashcard{Active: true, ScheduledDate: scheduled}

	if card.AvailableOn(scheduled.AddDate(0, 0, -1)) {
		t.Error("Expected card to be unavailable before its scheduled date")
	}
	if !card.AvailableOn(scheduled) {
		t.Error("Expected card to be available on its scheduled date")
	}
	if !card.AvailableOn(scheduled.AddDate(0, 0, 30)) {
		t.Error("Expected card to be available after its scheduled date")
	}

	card.Active = false
	if card.AvailableOn(scheduled.AddDate(0, 0, 30)) {
		t.Error("Expected inactive card to be unavailable")
	}
}

func TestRatingIsValid(t *testing.T) {
	t.Parallel() // Enable parallel execution
	for _, rating := range []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy} {
		if !rating.IsValid() {
			t.Errorf("Expected rating %d to be valid", rating)
		}
	}
	for _, rating := range []Rating{0, 5, -1} {
		if rating.IsValid() {
			t.Errorf("Expected rating %d to be invalid", rating)
		}
	}
}
