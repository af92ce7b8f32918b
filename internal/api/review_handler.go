// Package api provides the HTTP handlers of the review service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/api/shared"
	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/logger"
	"github.com/DesdeChaves/valcoin-memoria/internal/service/review"
)

// ReviewHandler handles queue and review submission requests.
type ReviewHandler struct {
	reviewService review.Service
	validate      *validator.Validate
	timeNow       func() time.Time
	logger        *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
		timeNow:       func() time.Time { return time.Now().UTC() },
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// QueueResponse is the payload of GET /queue.
type QueueResponse struct {
	Date  string           `json:"date"`
	Items []review.DueItem `json:"items"`
}

// GetDailyQueue handles GET /queue requests. Optional query parameters:
// date (YYYY-MM-DD, default today) and limit.
func (h *ReviewHandler) GetDailyQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerFromContext(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner identity missing")
		return
	}

	asOf := h.timeNow()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	items, err := h.reviewService.BuildDailyQueue(r.Context(), learnerID, asOf, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to build review queue", err)
		return
	}
	if items == nil {
		items = []review.DueItem{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QueueResponse{
		Date:  asOf.UTC().Format("2006-01-02"),
		Items: items,
	})
}

// SubmitReviewRequest is the body of POST /units/{id}/review.
type SubmitReviewRequest struct {
	SubID  string `json:"sub_id"`
	Rating int    `json:"rating" validate:"required,min=1,max=4"`
}

// SubmitReview handles POST /units/{id}/review requests.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerFromContext(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner identity missing")
		return
	}

	unitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard ID")
		return
	}

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(review.ErrInvalidRating))
		return
	}

	result, err := h.reviewService.SubmitReview(
		r.Context(), learnerID, unitID, req.SubID, domain.Rating(req.Rating), h.timeNow())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review recorded",
		slog.String("learner_id", learnerID.String()),
		slog.String("unit_id", unitID.String()),
		slog.String("sub_id", req.SubID))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// HistoryResponse is the payload of GET /reviews.
type HistoryResponse struct {
	Reviews []*domain.ReviewLogEntry `json:"reviews"`
}

// ListReviewHistory handles GET /reviews requests.
func (h *ReviewHandler) ListReviewHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerFromContext(r)
	if !ok {
		log.Warn("learner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Learner identity missing")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.reviewService.ListReviewHistory(r.Context(), learnerID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list review history", err)
		return
	}
	if entries == nil {
		entries = []*domain.ReviewLogEntry{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{Reviews: entries})
}

func learnerFromContext(r *http.Request) (uuid.UUID, bool) {
	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	return learnerID, ok && learnerID != uuid.Nil
}
