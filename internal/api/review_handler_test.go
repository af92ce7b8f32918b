package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DesdeChaves/valcoin-memoria/internal/api/shared"
	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
	"github.com/DesdeChaves/valcoin-memoria/internal/service/review"
)

func newHandlerRouter(service review.Service, learnerID uuid.UUID) http.Handler {
	handler := NewReviewHandler(service, slog.Default())

	r := chi.NewRouter()
	if learnerID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), shared.LearnerIDContextKey, learnerID)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Get("/queue", handler.GetDailyQueue)
	r.Post("/units/{id}/review", handler.SubmitReview)
	r.Get("/reviews", handler.ListReviewHistory)
	return r
}

func TestGetDailyQueue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	learnerID := uuid.New()
	unitID := uuid.New()

	var gotAsOf time.Time
	var gotLimit int
	mock := &review.ServiceMock{
		BuildDailyQueueFn: func(_ context.Context, id uuid.UUID, asOf time.Time, limit int) ([]review.DueItem, error) {
			require.Equal(t, learnerID, id)
			gotAsOf = asOf
			gotLimit = limit
			return []review.DueItem{
				{UnitID: unitID, Kind: domain.KindBasic, Prompt: "2+2?", Answer: "4", NewItem: true},
			}, nil
		},
	}
	router := newHandlerRouter(mock, learnerID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queue?date=2026-04-01&limit=20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), gotAsOf)
	require.Equal(t, 20, gotLimit)

	var resp QueueResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "2026-04-01", resp.Date)
	require.Len(t, resp.Items, 1)
	require.Equal(t, unitID, resp.Items[0].UnitID)
}

func TestGetDailyQueueBadParams(t *testing.T) {
	t.Parallel() // Enable parallel execution
	router := newHandlerRouter(&review.ServiceMock{}, uuid.New())

	for _, target := range []string{"/queue?date=tomorrow", "/queue?limit=0", "/queue?limit=abc"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equalf(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestGetDailyQueueUnauthenticated(t *testing.T) {
	t.Parallel() // Enable parallel execution
	router := newHandlerRouter(&review.ServiceMock{}, uuid.Nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queue", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel() // Enable parallel execution
	learnerID := uuid.New()
	unitID := uuid.New()
	due := time.Date(2026, 4, 4, 10, 0, 0, 0, time.UTC)

	mock := &review.ServiceMock{
		SubmitReviewFn: func(_ context.Context, gotLearner, gotUnit uuid.UUID, subID string, rating domain.Rating, _ time.Time) (*review.ReviewResult, error) {
			require.Equal(t, learnerID, gotLearner)
			require.Equal(t, unitID, gotUnit)
			require.Equal(t, "2", subID)
			require.Equal(t, domain.RatingGood, rating)
			return &review.ReviewResult{
				UnitID:       unitID,
				SubID:        subID,
				Due:          due,
				IntervalDays: 3,
				Reps:         1,
			}, nil
		},
	}
	router := newHandlerRouter(mock, learnerID)

	body := strings.NewReader(`{"sub_id": "2", "rating": 3}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/units/"+unitID.String()+"/review", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp review.ReviewResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, unitID, resp.UnitID)
	require.Equal(t, 3, resp.IntervalDays)
}

func TestSubmitReviewBadRequests(t *testing.T) {
	t.Parallel() // Enable parallel execution
	learnerID := uuid.New()
	unitID := uuid.New()

	testCases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{
			name:   "malformed unit id",
			target: "/units/not-a-uuid/review",
			body:   `{"rating": 3}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid JSON body",
			target: "/units/" + unitID.String() + "/review",
			body:   `{"rating": `,
			status: http.StatusBadRequest,
		},
		{
			name:   "rating out of range",
			target: "/units/" + unitID.String() + "/review",
			body:   `{"rating": 9}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "rating missing",
			target: "/units/" + unitID.String() + "/review",
			body:   `{"sub_id": "1"}`,
			status: http.StatusBadRequest,
		},
	}

	router := newHandlerRouter(&review.ServiceMock{}, learnerID)
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader(tc.body)))
			require.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestSubmitReviewServiceErrors(t *testing.T) {
	t.Parallel() // Enable parallel execution
	learnerID := uuid.New()
	unitID := uuid.New()

	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unit not found", err: review.ErrUnitNotFound, status: http.StatusNotFound},
		{name: "unknown sub-item", err: review.ErrUnknownSubItem, status: http.StatusNotFound},
		{name: "persistence failure", err: review.ErrReviewPersistenceFailed, status: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mock := &review.ServiceMock{
				SubmitReviewFn: func(_ context.Context, _, _ uuid.UUID, _ string, _ domain.Rating, _ time.Time) (*review.ReviewResult, error) {
					return nil, tc.err
				},
			}
			router := newHandlerRouter(mock, learnerID)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(
				http.MethodPost, "/units/"+unitID.String()+"/review", strings.NewReader(`{"rating": 3}`)))
			require.Equal(t, tc.status, rec.Code)

			var resp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.Equal(t, GetSafeErrorMessage(tc.err), resp.Error)
		})
	}
}

func TestListReviewHistory(t *testing.T) {
	t.Parallel() // Enable parallel execution
	learnerID := uuid.New()

	mock := &review.ServiceMock{
		ListReviewHistoryFn: func(_ context.Context, id uuid.UUID, limit int) ([]*domain.ReviewLogEntry, error) {
			require.Equal(t, learnerID, id)
			require.Equal(t, 5, limit)
			return []*domain.ReviewLogEntry{
				{ID: uuid.New(), LearnerID: id, Rating: domain.RatingGood},
			}, nil
		},
	}
	router := newHandlerRouter(mock, learnerID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HistoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Reviews, 1)
}
