package handler

import (
	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

func toTimeTrackResponse(tr *domain.TimeTrack) timeTrackResponse {
	return timeTrackResponse{
		ID:        tr.ID,
		UserID:    tr.OwnerID,
		Date:      tr.Date.Format(dateLayout),
		Duration:  tr.Duration,
		Note:      tr.Note,
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
	}
}

func toListTimeTracksResponse(page *ports.TimeTrackPage) listTimeTracksResponse {
	items := make([]timeTrackResponse, 0, len(page.Items))
	for _, tr := range page.Items {
		items = append(items, toTimeTrackResponse(tr))
	}
	return listTimeTracksResponse{
		TimeTracks: items,
		HasPrev:    page.Info.HasPrev,
		HasNext:    page.Info.HasNext,
		Pages:      page.Info.Pages,
	}
}

func toReportResponse(r *ports.ReportResult) reportResponse {
	notes := r.Notes
	if notes == nil {
		notes = []string{}
	}
	return reportResponse{
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		TotalDuration: r.TotalDuration,
		Notes:         notes,
	}
}
