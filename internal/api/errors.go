package api

import (
	"errors"
	"net/http"

	"github.com/DesdeChaves/valcoin-memoria/internal/service/review"
)

// MapErrorToStatusCode maps service errors to HTTP status codes.
// Unrecognized errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, review.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrUnitNotFound),
		errors.Is(err, review.ErrUnknownSubItem):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for a service error.
// Internal detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, review.ErrInvalidRating):
		return "Rating must be one of 1 (again), 2 (hard), 3 (good) or 4 (easy)"
	case errors.Is(err, review.ErrUnitNotFound):
		return "Flashcard not found"
	case errors.Is(err, review.ErrUnknownSubItem):
		return "Sub-item not found on this flashcard"
	case errors.Is(err, review.ErrReviewPersistenceFailed):
		return "Failed to record the review, please retry"
	default:
		return "An unexpected error occurred"
	}
}
