package domain

import (
	"errors"
	"time"
)

// DailyCapHours is the maximum total duration an owner may record for a
// single calendar day, summed across all entries for that day.
const DailyCapHours = 24

var (
	ErrTimeTrackNotFound = errors.New("time track does not exist")
	ErrDuplicateDay      = errors.New("you cannot create more than 1 entry for a single date")
	ErrDailyCapExceeded  = errors.New("you cannot track more than 24 hours in a day")
)

// TimeTrack is a single day's work log for one owner. At most one entry
// exists per (OwnerID, Date) pair; Date is day-granular (UTC midnight).
type TimeTrack struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"userId"`
	Date      time.Time `json:"date"`
	Duration  float64   `json:"duration"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeDate truncates t to UTC midnight, the canonical storage form
// for day-granular dates.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidDuration reports whether d is within the 0..24 hour bounds for a
// single entry.
func ValidDuration(d float64) bool {
	return d >= 0 && d <= DailyCapHours
}
