package handler

import "time"

// errorResponse documents the error envelope produced by the central
// error handler, for the generated API docs.
type errorResponse struct {
	Error  string       `json:"error"`
	Errors []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field    string   `json:"field"`
	Location string   `json:"location"`
	Messages []string `json:"messages"`
}

// --- Request / Response types ---

type registerRequest struct {
	Email                      string   `json:"email"                      validate:"required,email"`
	Password                   string   `json:"password"                   validate:"required,min=6,max=128"`
	Name                       string   `json:"name"                       validate:"required,max=128"`
	PreferredWorkingHourPerDay *float64 `json:"preferredWorkingHourPerDay" validate:"omitempty,gte=0,lte=24"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Email                      string   `json:"email"                      validate:"required,email"`
	Password                   string   `json:"password"                   validate:"required,min=6,max=128"`
	Name                       string   `json:"name"                       validate:"required,max=128"`
	Role                       string   `json:"role"                       validate:"omitempty,oneof=user user-manager super-admin"`
	PreferredWorkingHourPerDay *float64 `json:"preferredWorkingHourPerDay" validate:"omitempty,gte=0,lte=24"`
}

// updateUserRequest is a partial update: absent fields stay untouched.
type updateUserRequest struct {
	Email                      *string  `json:"email"                      validate:"omitempty,email"`
	Password                   *string  `json:"password"                   validate:"omitempty,min=6,max=128"`
	Name                       *string  `json:"name"                       validate:"omitempty,max=128"`
	Role                       *string  `json:"role"                       validate:"omitempty,oneof=user user-manager super-admin"`
	PreferredWorkingHourPerDay *float64 `json:"preferredWorkingHourPerDay" validate:"omitempty,gte=0,lte=24"`
}

type userResponse struct {
	ID                         string    `json:"id"`
	Email                      string    `json:"email"`
	Name                       string    `json:"name"`
	Role                       string    `json:"role"`
	PreferredWorkingHourPerDay *float64  `json:"preferredWorkingHourPerDay,omitempty"`
	CreatedAt                  time.Time `json:"createdAt"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type listUsersResponse struct {
	Users   []userResponse `json:"users"`
	HasPrev bool           `json:"hasPrev"`
	HasNext bool           `json:"hasNext"`
	Pages   int            `json:"pages"`
}
