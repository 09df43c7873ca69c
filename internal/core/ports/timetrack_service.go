package ports

import (
	"context"
	"time"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// CreateTimeTrackInput carries the fields for a new ledger entry. Date
// is day-granular; the service normalizes it to UTC midnight.
type CreateTimeTrackInput struct {
	Date     time.Time
	Duration float64
	Note     string
}

// UpdateTimeTrackInput is a partial update: nil fields are left untouched.
type UpdateTimeTrackInput struct {
	Date     *time.Time
	Duration *float64
	Note     *string
}

// ListTimeTracksInput carries the optional exact-match filters of the
// plain list endpoint.
type ListTimeTracksInput struct {
	Date *time.Time
	Note string
	Page PageParams
}

// TimeTrackPage is one page of ledger results.
type TimeTrackPage struct {
	Items []*domain.TimeTrack
	Info  PageInfo
}

// ReportResult is the structured aggregate for an owner over a date
// range. Rendering it into a document is an external concern.
type ReportResult struct {
	StartDate     time.Time
	EndDate       time.Time
	TotalDuration float64
	Notes         []string
}

// TimeTrackService defines the Time-Entry Ledger use cases plus the
// report aggregator. All operations are scoped to ownerID; an entry
// reached through a different owner's path is treated as absent.
type TimeTrackService interface {
	Create(ctx context.Context, ownerID string, input CreateTimeTrackInput) (*domain.TimeTrack, error)
	Get(ctx context.Context, ownerID, id string) (*domain.TimeTrack, error)
	Update(ctx context.Context, ownerID, id string, input UpdateTimeTrackInput) (*domain.TimeTrack, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, input ListTimeTracksInput) (*TimeTrackPage, error)
	Search(ctx context.Context, ownerID, query string, page PageParams) (*TimeTrackPage, error)
	FilterByDate(ctx context.Context, ownerID string, start, end time.Time, page PageParams) (*TimeTrackPage, error)
	Report(ctx context.Context, ownerID string, start, end time.Time) (*ReportResult, error)
}
