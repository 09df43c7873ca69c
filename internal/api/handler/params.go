package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// sortSpec describes the sortable surface of a listing endpoint.
type sortSpec struct {
	fields       map[string]bool
	defaultBy    string
	defaultOrder int
}

var userSortSpec = sortSpec{
	fields:       map[string]bool{"name": true, "email": true, "role": true, "createdAt": true},
	defaultBy:    "createdAt",
	defaultOrder: ports.SortAsc,
}

var timeTrackSortSpec = sortSpec{
	fields:       map[string]bool{"date": true, "duration": true, "createdAt": true},
	defaultBy:    "date",
	defaultOrder: ports.SortDesc,
}

// parsePageParams reads page, perPage, sortBy and sortOrder from the
// query string, applying defaults and bounds. All failures are
// collected so the client sees every bad parameter at once.
func parsePageParams(c echo.Context, spec sortSpec) (ports.PageParams, error) {
	params := ports.PageParams{
		Page:      ports.DefaultPage,
		PerPage:   ports.DefaultPerPage,
		SortBy:    spec.defaultBy,
		SortOrder: spec.defaultOrder,
	}

	var fields []domain.FieldError

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields = append(fields, queryFieldError("page", "page must be a positive integer"))
		} else {
			params.Page = page
		}
	}

	if raw := c.QueryParam("perPage"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > ports.MaxPerPage {
			fields = append(fields, queryFieldError("perPage",
				fmt.Sprintf("perPage must be an integer between 1 and %d", ports.MaxPerPage)))
		} else {
			params.PerPage = perPage
		}
	}

	if raw := c.QueryParam("sortBy"); raw != "" {
		if !spec.fields[raw] {
			fields = append(fields, queryFieldError("sortBy", "sortBy must be a sortable field"))
		} else {
			params.SortBy = raw
		}
	}

	if raw := c.QueryParam("sortOrder"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil || (order != ports.SortAsc && order != ports.SortDesc) {
			fields = append(fields, queryFieldError("sortOrder", "sortOrder must be 1 or -1"))
		} else {
			params.SortOrder = order
		}
	}

	if len(fields) > 0 {
		return ports.PageParams{}, domain.NewValidationError(fields...)
	}
	return params, nil
}

// parseDateParam reads an optional yyyy-mm-dd query parameter.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.NewValidationError(
			queryFieldError(name, name+" must be a date in yyyy-mm-dd format"))
	}
	day := domain.NormalizeDate(t)
	return &day, nil
}

// parseDateRange reads a required startDate/endDate pair and rejects
// inverted ranges.
func parseDateRange(c echo.Context) (start, end time.Time, err error) {
	var fields []domain.FieldError

	start, startErr := parseRequiredDate(c, "startDate")
	if startErr != nil {
		fields = append(fields, *startErr)
	}
	end, endErr := parseRequiredDate(c, "endDate")
	if endErr != nil {
		fields = append(fields, *endErr)
	}

	if len(fields) == 0 && end.Before(start) {
		fields = append(fields, queryFieldError("endDate", "endDate must not be before startDate"))
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, domain.NewValidationError(fields...)
	}
	return start, end, nil
}

func parseRequiredDate(c echo.Context, name string) (time.Time, *domain.FieldError) {
	raw := c.QueryParam(name)
	if raw == "" {
		fe := queryFieldError(name, name+" is required")
		return time.Time{}, &fe
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		fe := queryFieldError(name, name+" must be a date in yyyy-mm-dd format")
		return time.Time{}, &fe
	}
	return domain.NormalizeDate(t), nil
}

func queryFieldError(field, message string) domain.FieldError {
	return domain.FieldError{Field: field, Location: "query", Messages: []string{message}}
}
