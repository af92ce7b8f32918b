package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// ServiceMock is a test double for Service. Each method delegates to the
// corresponding function field when set and returns zero values otherwise.
type ServiceMock struct {
	BuildDailyQueueFn   func(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]DueItem, error)
	SubmitReviewFn      func(ctx context.Context, learnerID, unitID uuid.UUID, subID string, rating domain.Rating, now time.Time) (*ReviewResult, error)
	ListReviewHistoryFn func(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domain.ReviewLogEntry, error)
}

var _ Service = (*ServiceMock)(nil)

// BuildDailyQueue implements Service.
func (m *ServiceMock) BuildDailyQueue(
	ctx context.Context,
	learnerID uuid.UUID,
	asOf time.Time,
	limit int,
) ([]DueItem, error) {
	if m.BuildDailyQueueFn != nil {
		return m.BuildDailyQueueFn(ctx, learnerID, asOf, limit)
	}
	return nil, nil
}

// SubmitReview implements Service.
func (m *ServiceMock) SubmitReview(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
	subID string,
	rating domain.Rating,
	now time.Time,
) (*ReviewResult, error) {
	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, learnerID, unitID, subID, rating, now)
	}
	return nil, nil
}

// ListReviewHistory implements Service.
func (m *ServiceMock) ListReviewHistory(
	ctx context.Context,
	learnerID uuid.UUID,
	limit int,
) ([]*domain.ReviewLogEntry, error) {
	if m.ListReviewHistoryFn != nil {
		return m.ListReviewHistoryFn(ctx, learnerID, limit)
	}
	return nil, nil
}
