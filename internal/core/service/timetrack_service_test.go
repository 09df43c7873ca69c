package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTrackRepo struct {
	tracks   map[string]*domain.TimeTrack
	seq      int
	sumCalls int
}

func newStubTrackRepo() *stubTrackRepo {
	return &stubTrackRepo{tracks: make(map[string]*domain.TimeTrack)}
}

func cloneTrack(t *domain.TimeTrack) *domain.TimeTrack {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTrackRepo) Insert(_ context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error) {
	for _, existing := range r.tracks {
		if existing.OwnerID == t.OwnerID && existing.Date.Equal(t.Date) {
			return nil, domain.ErrDuplicateDay
		}
	}
	r.seq++
	clone := cloneTrack(t)
	clone.ID = fmt.Sprintf("track-%d", r.seq)
	r.tracks[clone.ID] = clone
	return cloneTrack(clone), nil
}

func (r *stubTrackRepo) FindByID(_ context.Context, id string) (*domain.TimeTrack, error) {
	t, ok := r.tracks[id]
	if !ok {
		return nil, domain.ErrTimeTrackNotFound
	}
	return cloneTrack(t), nil
}

func (r *stubTrackRepo) Update(_ context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error) {
	if _, ok := r.tracks[t.ID]; !ok {
		return nil, domain.ErrTimeTrackNotFound
	}
	for id, existing := range r.tracks {
		if id != t.ID && existing.OwnerID == t.OwnerID && existing.Date.Equal(t.Date) {
			return nil, domain.ErrDuplicateDay
		}
	}
	r.tracks[t.ID] = cloneTrack(t)
	return cloneTrack(t), nil
}

func (r *stubTrackRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tracks[id]; !ok {
		return domain.ErrTimeTrackNotFound
	}
	delete(r.tracks, id)
	return nil
}

// List mirrors the filters the real Mongo repo applies.
func (r *stubTrackRepo) List(_ context.Context, f ports.ListTimeTracksFilter) ([]*domain.TimeTrack, int64, error) {
	var matched []*domain.TimeTrack
	for _, t := range r.tracks {
		if t.OwnerID != f.OwnerID {
			continue
		}
		if f.Date != nil && !t.Date.Equal(*f.Date) {
			continue
		}
		if f.Note != "" && t.Note != f.Note {
			continue
		}
		if f.Query != nil && *f.Query != "" &&
			!strings.Contains(strings.ToLower(t.Note), strings.ToLower(*f.Query)) {
			continue
		}
		if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && t.Date.After(*f.DateTo) {
			continue
		}
		matched = append(matched, cloneTrack(t))
	}

	total := int64(len(matched))
	skip := f.Page.Skip()
	if skip > len(matched) {
		return nil, total, nil
	}
	end := skip + f.Page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubTrackRepo) SumForDay(_ context.Context, ownerID string, date time.Time) (float64, error) {
	r.sumCalls++
	var sum float64
	for _, t := range r.tracks {
		if t.OwnerID == ownerID && t.Date.Equal(date) {
			sum += t.Duration
		}
	}
	return sum, nil
}

func (r *stubTrackRepo) AggregateRange(_ context.Context, ownerID string, start, end time.Time) (float64, []string, error) {
	var total float64
	var notes []string
	for _, t := range r.tracks {
		if t.OwnerID != ownerID || t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total += t.Duration
		notes = append(notes, t.Note)
	}
	return total, notes, nil
}

// ---------------------------------------------------------------------------
// Recording report cache
// ---------------------------------------------------------------------------

type stubReportCache struct {
	versions map[string]int64
	stored   map[string]*ports.ReportResult
	hits     int
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{
		versions: make(map[string]int64),
		stored:   make(map[string]*ports.ReportResult),
	}
}

func (c *stubReportCache) key(ownerID string, version int64, start, end time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s", ownerID, version, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *stubReportCache) Version(_ context.Context, ownerID string) (int64, error) {
	return c.versions[ownerID], nil
}

func (c *stubReportCache) Bump(_ context.Context, ownerID string) error {
	c.versions[ownerID]++
	return nil
}

func (c *stubReportCache) Get(_ context.Context, ownerID string, version int64, start, end time.Time) (*ports.ReportResult, error) {
	r, ok := c.stored[c.key(ownerID, version, start, end)]
	if !ok {
		return nil, nil
	}
	c.hits++
	return r, nil
}

func (c *stubReportCache) Set(_ context.Context, ownerID string, version int64, result *ports.ReportResult) error {
	c.stored[c.key(ownerID, version, result.StartDate, result.EndDate)] = result
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTrackService(repo ports.TimeTrackRepository) *TimeTrackService {
	return NewTimeTrackService(repo, nil, zerolog.Nop())
}

func TestTimeTrackService_Create_RoundTrip(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	created, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 8,
		Note:     "refactoring",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), "u1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OwnerID != "u1" || got.Duration != 8 || got.Note != "refactoring" || !got.Date.Equal(day("2019-10-12")) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestTimeTrackService_Create_DailyCapBoundary(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	// Seed 20 hours on an adjacent day entry belonging to the same date
	// via the repo directly, bypassing the per-day uniqueness the stub
	// enforces on Insert.
	repo.seq++
	repo.tracks["seed"] = &domain.TimeTrack{
		ID: "seed", OwnerID: "u1", Date: day("2019-10-12"), Duration: 20,
	}

	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12").Add(26 * time.Hour), // normalizes to 2019-10-13
		Duration: 5,
	}); err != nil {
		t.Fatalf("other day rejected: %v", err)
	}

	// 20 + 5 > 24: rejected before the uniqueness constraint fires.
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 5,
	}); !errors.Is(err, domain.ErrDailyCapExceeded) {
		t.Fatalf("expected ErrDailyCapExceeded, got %v", err)
	}

	// Remove the seed; 20 + 4 == 24 is allowed (boundary inclusive).
	delete(repo.tracks, "seed")
	repo.tracks["seed2"] = &domain.TimeTrack{
		ID: "seed2", OwnerID: "u2", Date: day("2019-10-12"), Duration: 20,
	}
	if _, err := svc.Create(context.Background(), "u2", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 4,
	}); !errors.Is(err, domain.ErrDuplicateDay) {
		// The cap admits the total of exactly 24; the per-day uniqueness
		// constraint is what rejects the second physical entry.
		t.Fatalf("expected ErrDuplicateDay after passing cap check, got %v", err)
	}
}

func TestTimeTrackService_Create_DuplicateDay(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 0,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 1,
	}); !errors.Is(err, domain.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
}

func TestTimeTrackService_Create_DurationBounds(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	var vErr *domain.ValidationError
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 25,
	}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: -1,
	}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative duration, got %v", err)
	}
}

// Update re-validates bounds on the merged record but never re-runs the
// daily-cap aggregate against sibling entries.
func TestTimeTrackService_Update_SkipsCapAggregate(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	created, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.sumCalls = 0
	d := 24.0
	updated, err := svc.Update(context.Background(), "u1", created.ID, ports.UpdateTimeTrackInput{Duration: &d})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Duration != 24 {
		t.Errorf("duration = %v, want 24", updated.Duration)
	}
	if repo.sumCalls != 0 {
		t.Errorf("update consulted SumForDay %d times, want 0", repo.sumCalls)
	}

	over := 25.0
	var vErr *domain.ValidationError
	if _, err := svc.Update(context.Background(), "u1", created.ID, ports.UpdateTimeTrackInput{Duration: &over}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for out-of-bounds merge, got %v", err)
	}
}

func TestTimeTrackService_Get_ForeignOwnerIsNotFound(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	created, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date:     day("2019-10-12"),
		Duration: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "u2", created.ID); !errors.Is(err, domain.ErrTimeTrackNotFound) {
		t.Fatalf("expected ErrTimeTrackNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u2", created.ID); !errors.Is(err, domain.ErrTimeTrackNotFound) {
		t.Fatalf("delete via foreign owner: expected ErrTimeTrackNotFound, got %v", err)
	}
}

func TestTimeTrackService_Search_CaseInsensitiveSubstring(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2019-10-12"), Duration: 4, Note: "Is it you?",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2019-10-13"), Duration: 4, Note: "Something else",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := svc.Search(context.Background(), "u1", "you", ports.PageParams{Page: 1, PerPage: 30})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Note != "Is it you?" {
		t.Fatalf("unexpected result: %+v", page.Items)
	}

	all, err := svc.Search(context.Background(), "u1", "", ports.PageParams{Page: 1, PerPage: 30})
	if err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("empty query should match all entries, got %d", len(all.Items))
	}
}

func TestTimeTrackService_FilterByDate_InclusiveRange(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	for i, d := range []string{"2018-08-08", "2018-08-09", "2018-08-10", "2018-08-11"} {
		if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
			Date: day(d), Duration: float64(i + 1),
		}); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}

	page, err := svc.FilterByDate(context.Background(), "u1", day("2018-08-09"), day("2018-08-10"),
		ports.PageParams{Page: 1, PerPage: 30})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2 (inclusive bounds)", len(page.Items))
	}
}

func TestTimeTrackService_Report_Aggregates(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2018-08-09"), Duration: 12, Note: "Hi there",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2018-08-10"), Duration: 7, Note: "Hi again",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	report, err := svc.Report(context.Background(), "u1", day("2018-08-09"), day("2018-08-10"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalDuration != 19 {
		t.Errorf("total = %v, want 19", report.TotalDuration)
	}
	if len(report.Notes) != 2 {
		t.Errorf("notes = %v, want 2 entries", report.Notes)
	}
}

func TestTimeTrackService_Report_EmptyRangeIsZero(t *testing.T) {
	repo := newStubTrackRepo()
	svc := newTrackService(repo)

	report, err := svc.Report(context.Background(), "u1", day("2018-01-01"), day("2018-01-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalDuration != 0 || len(report.Notes) != 0 {
		t.Errorf("expected zero report, got %+v", report)
	}
}

func TestTimeTrackService_Report_CacheHitAndInvalidation(t *testing.T) {
	repo := newStubTrackRepo()
	cache := newStubReportCache()
	svc := NewTimeTrackService(repo, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2018-08-09"), Duration: 12, Note: "Hi there",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	start, end := day("2018-08-09"), day("2018-08-10")
	if _, err := svc.Report(context.Background(), "u1", start, end); err != nil {
		t.Fatalf("first report: %v", err)
	}
	if _, err := svc.Report(context.Background(), "u1", start, end); err != nil {
		t.Fatalf("second report: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}

	// A new entry bumps the version; the next report recomputes.
	if _, err := svc.Create(context.Background(), "u1", ports.CreateTimeTrackInput{
		Date: day("2018-08-10"), Duration: 7, Note: "Hi again",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	report, err := svc.Report(context.Background(), "u1", start, end)
	if err != nil {
		t.Fatalf("third report: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("stale cache served after invalidation (hits=%d)", cache.hits)
	}
	if report.TotalDuration != 19 {
		t.Errorf("total after invalidation = %v, want 19", report.TotalDuration)
	}
}
