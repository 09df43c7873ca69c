package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chronoworks/timetrack-system/internal/api/metrics"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

const (
	reportTTL  = 10 * time.Minute
	versionTTL = 24 * time.Hour
)

// ReportCache stores aggregated report results keyed by owner, range and
// a per-owner version counter. Mutations bump the version, so results
// cached under older versions are never read again and expire by TTL.
//
// Key formats:
//
//	report:ver:<owner_id>                       version counter
//	report:<owner_id>:<version>:<start>:<end>   cached result
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

type cachedReport struct {
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalDuration float64   `json:"total_duration"`
	Notes         []string  `json:"notes"`
}

// Version returns the owner's current report version (0 when unset).
func (c *ReportCache) Version(ctx context.Context, ownerID string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(ownerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("report version: %w", err)
	}
	return v, nil
}

// Bump invalidates all cached reports for the owner by advancing the
// version counter.
func (c *ReportCache) Bump(ctx context.Context, ownerID string) error {
	key := c.versionKey(ownerID)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("report version bump: %w", err)
	}
	return c.client.Expire(ctx, key, versionTTL).Err()
}

// Get returns the cached report for the owner/version/range, or nil on a
// miss.
func (c *ReportCache) Get(ctx context.Context, ownerID string, version int64, start, end time.Time) (*ports.ReportResult, error) {
	raw, err := c.client.Get(ctx, c.reportKey(ownerID, version, start, end)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("report cache get: %w", err)
	}

	var cached cachedReport
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("report cache decode: %w", err)
	}

	metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
	return &ports.ReportResult{
		StartDate:     cached.StartDate,
		EndDate:       cached.EndDate,
		TotalDuration: cached.TotalDuration,
		Notes:         cached.Notes,
	}, nil
}

// Set stores the report result under the owner's current version.
func (c *ReportCache) Set(ctx context.Context, ownerID string, version int64, result *ports.ReportResult) error {
	raw, err := json.Marshal(cachedReport{
		StartDate:     result.StartDate,
		EndDate:       result.EndDate,
		TotalDuration: result.TotalDuration,
		Notes:         result.Notes,
	})
	if err != nil {
		return fmt.Errorf("report cache encode: %w", err)
	}

	key := c.reportKey(ownerID, version, result.StartDate, result.EndDate)
	return c.client.Set(ctx, key, raw, reportTTL).Err()
}

func (c *ReportCache) versionKey(ownerID string) string {
	return "report:ver:" + ownerID
}

func (c *ReportCache) reportKey(ownerID string, version int64, start, end time.Time) string {
	return fmt.Sprintf("report:%s:%d:%s:%s",
		ownerID, version, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
