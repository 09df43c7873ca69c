package handler

import "time"

type createTimeTrackRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	// Duration is a pointer so a zero-hour entry is distinguishable
	// from an absent field.
	Duration *float64 `json:"duration" validate:"required,gte=0,lte=24"`
	Note     string   `json:"note"     validate:"max=1024"`
}

// updateTimeTrackRequest is a partial update: absent fields stay untouched.
type updateTimeTrackRequest struct {
	Date     *string  `json:"date"     validate:"omitempty,datetime=2006-01-02"`
	Duration *float64 `json:"duration" validate:"omitempty,gte=0,lte=24"`
	Note     *string  `json:"note"     validate:"omitempty,max=1024"`
}

type timeTrackResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Duration  float64   `json:"duration"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listTimeTracksResponse struct {
	TimeTracks []timeTrackResponse `json:"timeTracks"`
	HasPrev    bool                `json:"hasPrev"`
	HasNext    bool                `json:"hasNext"`
	Pages      int                 `json:"pages"`
}

type reportResponse struct {
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	TotalDuration float64  `json:"totalDuration"`
	Notes         []string `json:"notes"`
}
