package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

// ReportCache abstracts the report result store (Redis). Version numbers
// invalidate cached reports: every ledger mutation bumps the owner's
// version, so entries written under older versions are never read again.
type ReportCache interface {
	Version(ctx context.Context, ownerID string) (int64, error)
	Bump(ctx context.Context, ownerID string) error
	Get(ctx context.Context, ownerID string, version int64, start, end time.Time) (*ports.ReportResult, error)
	Set(ctx context.Context, ownerID string, version int64, result *ports.ReportResult) error
}

// TimeTrackService implements the ledger use cases and the report
// aggregator.
type TimeTrackService struct {
	repo   ports.TimeTrackRepository
	cache  ReportCache
	logger zerolog.Logger
}

func NewTimeTrackService(repo ports.TimeTrackRepository, cache ReportCache, logger zerolog.Logger) *TimeTrackService {
	return &TimeTrackService{repo: repo, cache: cache, logger: logger}
}

// Create validates and inserts a new entry for ownerID. The daily-cap
// check reads the existing sum and then writes; it is advisory, not
// atomic against concurrent writers for the same owner and date. The
// (owner, date) uniqueness constraint is enforced by the store.
func (s *TimeTrackService) Create(ctx context.Context, ownerID string, input ports.CreateTimeTrackInput) (*domain.TimeTrack, error) {
	if !domain.ValidDuration(input.Duration) {
		return nil, durationFieldError()
	}

	date := domain.NormalizeDate(input.Date)

	sum, err := s.repo.SumForDay(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if sum+input.Duration > domain.DailyCapHours {
		return nil, domain.ErrDailyCapExceeded
	}

	now := time.Now().UTC()
	track := &domain.TimeTrack{
		OwnerID:   ownerID,
		Date:      date,
		Duration:  input.Duration,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, track)
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, ownerID)
	s.logger.Info().Str("owner_id", ownerID).Str("track_id", created.ID).
		Float64("duration", created.Duration).Msg("time track created")
	return created, nil
}

// Get fetches one entry. An id owned by someone else is reported as
// absent rather than forbidden, so entry ids do not leak across owners.
func (s *TimeTrackService) Get(ctx context.Context, ownerID, id string) (*domain.TimeTrack, error) {
	track, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if track.OwnerID != ownerID {
		return nil, domain.ErrTimeTrackNotFound
	}
	return track, nil
}

// Update merges the provided fields and re-validates the duration bounds
// on the merged record. The daily-cap aggregate is intentionally not
// re-checked here; only create consults sibling entries.
func (s *TimeTrackService) Update(ctx context.Context, ownerID, id string, input ports.UpdateTimeTrackInput) (*domain.TimeTrack, error) {
	track, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		track.Date = domain.NormalizeDate(*input.Date)
	}
	if input.Duration != nil {
		track.Duration = *input.Duration
	}
	if input.Note != nil {
		track.Note = *input.Note
	}

	if !domain.ValidDuration(track.Duration) {
		return nil, durationFieldError()
	}

	track.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, track)
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, ownerID)
	return updated, nil
}

// Delete removes one entry. A missing or foreign id is
// domain.ErrTimeTrackNotFound.
func (s *TimeTrackService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	return nil
}

// List returns a page of the owner's entries, optionally filtered by
// exact date or note.
func (s *TimeTrackService) List(ctx context.Context, ownerID string, input ports.ListTimeTracksInput) (*ports.TimeTrackPage, error) {
	filter := ports.ListTimeTracksFilter{
		OwnerID: ownerID,
		Note:    input.Note,
		Page:    input.Page,
	}
	if input.Date != nil {
		d := domain.NormalizeDate(*input.Date)
		filter.Date = &d
	}
	return s.page(ctx, filter)
}

// Search returns the owner's entries whose note contains query,
// case-insensitively. An empty query matches all entries.
func (s *TimeTrackService) Search(ctx context.Context, ownerID, query string, page ports.PageParams) (*ports.TimeTrackPage, error) {
	return s.page(ctx, ports.ListTimeTracksFilter{
		OwnerID: ownerID,
		Query:   &query,
		Page:    page,
	})
}

// FilterByDate returns the owner's entries with dates in [start, end],
// inclusive on both ends.
func (s *TimeTrackService) FilterByDate(ctx context.Context, ownerID string, start, end time.Time, page ports.PageParams) (*ports.TimeTrackPage, error) {
	from := domain.NormalizeDate(start)
	to := domain.NormalizeDate(end)
	return s.page(ctx, ports.ListTimeTracksFilter{
		OwnerID:  ownerID,
		DateFrom: &from,
		DateTo:   &to,
		Page:     page,
	})
}

// Report aggregates total duration and notes over the inclusive range,
// consulting the cache first. An empty range yields a zero total and no
// notes. Cache failures are logged and the store is used directly.
func (s *TimeTrackService) Report(ctx context.Context, ownerID string, start, end time.Time) (*ports.ReportResult, error) {
	from := domain.NormalizeDate(start)
	to := domain.NormalizeDate(end)

	version := int64(0)
	if s.cache != nil {
		v, err := s.cache.Version(ctx, ownerID)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("report cache version lookup failed")
		} else {
			version = v
			if cached, err := s.cache.Get(ctx, ownerID, version, from, to); err == nil && cached != nil {
				return cached, nil
			}
		}
	}

	total, notes, err := s.repo.AggregateRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	result := &ports.ReportResult{
		StartDate:     from,
		EndDate:       to,
		TotalDuration: total,
		Notes:         notes,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, version, result); err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("report cache store failed")
		}
	}

	return result, nil
}

func (s *TimeTrackService) page(ctx context.Context, filter ports.ListTimeTracksFilter) (*ports.TimeTrackPage, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.TimeTrackPage{Items: items, Info: ports.NewPageInfo(total, filter.Page)}, nil
}

func (s *TimeTrackService) invalidateReports(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx, ownerID); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("report cache invalidation failed")
	}
}

func durationFieldError() error {
	return domain.NewValidationError(domain.FieldError{
		Field:    "duration",
		Location: "body",
		Messages: []string{"duration must be between 0 and 24"},
	})
}
