package domain

import "errors"

// Validation and decomposition errors shared across domain types.
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardCreatorEmpty is returned when a flashcard's creator ID is empty or nil.
	ErrFlashcardCreatorEmpty = errors.New("flashcard creator ID cannot be empty")

	// ErrFlashcardSubjectEmpty is returned when a flashcard's subject ID is empty or nil.
	ErrFlashcardSubjectEmpty = errors.New("flashcard subject ID cannot be empty")

	// ErrInvalidFlashcardKind is returned when a flashcard's kind is not one
	// of the recognized values.
	ErrInvalidFlashcardKind = errors.New("invalid flashcard kind")

	// ErrFlashcardContentEmpty is returned when a flashcard's content is empty.
	ErrFlashcardContentEmpty = errors.New("flashcard content cannot be empty")

	// ErrMalformedContent is returned when a flashcard's content cannot be
	// decomposed into at least one sub-item: undecodable JSON, cloze text
	// without a numbered blank, or an occlusion card with no masks.
	ErrMalformedContent = errors.New("malformed flashcard content")

	// ErrInvalidRating is returned when a rating is outside Again..Easy.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrEmptyStateLearnerID is returned when a memory state's learner ID is empty.
	ErrEmptyStateLearnerID = errors.New("memory state learner ID cannot be empty")

	// ErrEmptyStateUnitID is returned when a memory state's unit ID is empty.
	ErrEmptyStateUnitID = errors.New("memory state unit ID cannot be empty")

	// ErrInvalidDifficulty is returned when difficulty falls outside [1, 10].
	ErrInvalidDifficulty = errors.New("difficulty must be within [1, 10]")

	// ErrInvalidStability is returned when stability is negative.
	ErrInvalidStability = errors.New("stability must be greater than or equal to 0")
)
