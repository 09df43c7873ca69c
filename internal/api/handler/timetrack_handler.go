package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/api/metrics"
	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

// TimeTrackHandler handles HTTP requests for the per-user work ledger.
// All routes hang under /v1/users/:userId/time-tracks; the owner is
// always the path parameter, never the token.
type TimeTrackHandler struct {
	service ports.TimeTrackService
}

func NewTimeTrackHandler(service ports.TimeTrackService) *TimeTrackHandler {
	return &TimeTrackHandler{service: service}
}

// Create handles POST /v1/users/:userId/time-tracks.
//
// @Summary      Create a time track entry
// @Tags         time-tracks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                  true  "Owner id"
// @Param        body    body      createTimeTrackRequest  true  "Entry details"
// @Success      201     {object}  timeTrackResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      412     {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks [post]
func (h *TimeTrackHandler) Create(c echo.Context) error {
	var req createTimeTrackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return domain.NewValidationError(domain.FieldError{
			Field:    "date",
			Location: "body",
			Messages: []string{"date must be a date in yyyy-mm-dd format"},
		})
	}

	track, err := h.service.Create(c.Request().Context(), c.Param("userId"), ports.CreateTimeTrackInput{
		Date:     date,
		Duration: *req.Duration,
		Note:     req.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDailyCapExceeded) {
			metrics.DailyCapRejectionsTotal.Inc()
		}
		return err
	}

	metrics.EntriesCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toTimeTrackResponse(track))
}

// List handles GET /v1/users/:userId/time-tracks with optional exact
// date and note filters.
//
// @Summary      List time track entries
// @Tags         time-tracks
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path      string  true   "Owner id"
// @Param        date       query     string  false  "Exact date filter (yyyy-mm-dd)"
// @Param        note       query     string  false  "Exact note filter"
// @Param        page       query     int     false  "Page number"     default(1)
// @Param        perPage    query     int     false  "Items per page"  default(30)
// @Param        sortBy     query     string  false  "Sort field"      Enums(date, duration, createdAt)
// @Param        sortOrder  query     int     false  "1 asc, -1 desc"
// @Success      200        {object}  listTimeTracksResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks [get]
func (h *TimeTrackHandler) List(c echo.Context) error {
	page, err := parsePageParams(c, timeTrackSortSpec)
	if err != nil {
		return err
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), c.Param("userId"), ports.ListTimeTracksInput{
		Date: date,
		Note: c.QueryParam("note"),
		Page: page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListTimeTracksResponse(result))
}

// Search handles GET /v1/users/:userId/time-tracks/search over notes.
//
// @Summary      Search time track entries by note
// @Tags         time-tracks
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path      string  true   "Owner id"
// @Param        query      query     string  false  "Case-insensitive substring"
// @Param        page       query     int     false  "Page number"     default(1)
// @Param        perPage    query     int     false  "Items per page"  default(30)
// @Param        sortBy     query     string  false  "Sort field"      Enums(date, duration, createdAt)
// @Param        sortOrder  query     int     false  "1 asc, -1 desc"
// @Success      200        {object}  listTimeTracksResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/search [get]
func (h *TimeTrackHandler) Search(c echo.Context) error {
	page, err := parsePageParams(c, timeTrackSortSpec)
	if err != nil {
		return err
	}

	result, err := h.service.Search(c.Request().Context(), c.Param("userId"), c.QueryParam("query"), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListTimeTracksResponse(result))
}

// FilterByDate handles GET /v1/users/:userId/time-tracks/filter-by-date
// over an inclusive date range.
//
// @Summary      Filter time track entries by date range
// @Tags         time-tracks
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path      string  true   "Owner id"
// @Param        startDate  query     string  true   "Range start (yyyy-mm-dd)"
// @Param        endDate    query     string  true   "Range end (yyyy-mm-dd)"
// @Param        page       query     int     false  "Page number"     default(1)
// @Param        perPage    query     int     false  "Items per page"  default(30)
// @Param        sortBy     query     string  false  "Sort field"      Enums(date, duration, createdAt)
// @Param        sortOrder  query     int     false  "1 asc, -1 desc"
// @Success      200        {object}  listTimeTracksResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/filter-by-date [get]
func (h *TimeTrackHandler) FilterByDate(c echo.Context) error {
	page, err := parsePageParams(c, timeTrackSortSpec)
	if err != nil {
		return err
	}
	start, end, err := parseDateRange(c)
	if err != nil {
		return err
	}

	result, err := h.service.FilterByDate(c.Request().Context(), c.Param("userId"), start, end, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListTimeTracksResponse(result))
}

// Report handles GET /v1/users/:userId/time-tracks/generate-report.
//
// @Summary      Aggregate a date range into a work report
// @Tags         time-tracks
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path      string  true  "Owner id"
// @Param        startDate  query     string  true  "Range start (yyyy-mm-dd)"
// @Param        endDate    query     string  true  "Range end (yyyy-mm-dd)"
// @Success      200        {object}  reportResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/generate-report [get]
func (h *TimeTrackHandler) Report(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return err
	}

	result, err := h.service.Report(c.Request().Context(), c.Param("userId"), start, end)
	if err != nil {
		return err
	}

	metrics.ReportsGeneratedTotal.Inc()

	return c.JSON(http.StatusOK, toReportResponse(result))
}

// Get handles GET /v1/users/:userId/time-tracks/:trackId.
//
// @Summary      Get a time track entry
// @Tags         time-tracks
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      string  true  "Owner id"
// @Param        trackId  path      string  true  "Entry id"
// @Success      200      {object}  timeTrackResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/{trackId} [get]
func (h *TimeTrackHandler) Get(c echo.Context) error {
	track, err := h.service.Get(c.Request().Context(), c.Param("userId"), c.Param("trackId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTimeTrackResponse(track))
}

// Update handles PATCH /v1/users/:userId/time-tracks/:trackId with a
// partial payload.
//
// @Summary      Update a time track entry
// @Tags         time-tracks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      string                  true  "Owner id"
// @Param        trackId  path      string                  true  "Entry id"
// @Param        body     body      updateTimeTrackRequest  true  "Fields to change"
// @Success      200      {object}  timeTrackResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      412      {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/{trackId} [patch]
func (h *TimeTrackHandler) Update(c echo.Context) error {
	var req updateTimeTrackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return domain.NewValidationError(domain.FieldError{
				Field:    "date",
				Location: "body",
				Messages: []string{"date must be a date in yyyy-mm-dd format"},
			})
		}
		date = &parsed
	}

	track, err := h.service.Update(c.Request().Context(), c.Param("userId"), c.Param("trackId"), ports.UpdateTimeTrackInput{
		Date:     date,
		Duration: req.Duration,
		Note:     req.Note,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTimeTrackResponse(track))
}

// Delete handles DELETE /v1/users/:userId/time-tracks/:trackId.
//
// @Summary      Delete a time track entry
// @Tags         time-tracks
// @Security     BearerAuth
// @Param        userId   path  string  true  "Owner id"
// @Param        trackId  path  string  true  "Entry id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{userId}/time-tracks/{trackId} [delete]
func (h *TimeTrackHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("userId"), c.Param("trackId")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
