package handler

import (
	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                         u.ID,
		Email:                      u.Email,
		Name:                       u.Name,
		Role:                       u.Role,
		PreferredWorkingHourPerDay: u.PreferredWorkingHourPerDay,
		CreatedAt:                  u.CreatedAt,
		UpdatedAt:                  u.UpdatedAt,
	}
}

func toListUsersResponse(page *ports.UserPage) listUsersResponse {
	items := make([]userResponse, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, toUserResponse(u))
	}
	return listUsersResponse{
		Users:   items,
		HasPrev: page.Info.HasPrev,
		HasNext: page.Info.HasNext,
		Pages:   page.Info.Pages,
	}
}
