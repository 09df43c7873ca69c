package ports

import (
	"context"
	"time"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// ListTimeTracksFilter carries the query parameters for the ledger's
// list-producing operations. OwnerID is always set. Date and Note are
// exact-match filters (plain listing); Query is a case-insensitive
// substring match against the note (search); DateFrom/DateTo are the
// inclusive range bounds (filter-by-date).
type ListTimeTracksFilter struct {
	OwnerID  string
	Date     *time.Time
	Note     string
	Query    *string
	DateFrom *time.Time
	DateTo   *time.Time

	Page PageParams
}

// TimeTrackRepository defines persistence operations for time entries.
// Implementations report a violated (owner, date) uniqueness constraint
// as domain.ErrDuplicateDay and a missing or malformed id as
// domain.ErrTimeTrackNotFound.
type TimeTrackRepository interface {
	Insert(ctx context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error)
	FindByID(ctx context.Context, id string) (*domain.TimeTrack, error)
	Update(ctx context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of entries matching filter and the total count.
	List(ctx context.Context, filter ListTimeTracksFilter) ([]*domain.TimeTrack, int64, error)
	// SumForDay returns the total duration already recorded for the
	// owner on the given (normalized) date.
	SumForDay(ctx context.Context, ownerID string, date time.Time) (float64, error)
	// AggregateRange sums durations and collects notes (empty ones
	// included) for the owner across the inclusive date range.
	AggregateRange(ctx context.Context, ownerID string, start, end time.Time) (float64, []string, error)
}
