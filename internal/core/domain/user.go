package domain

import (
	"errors"
	"strings"
	"time"
)

// Roles, from least to most privileged.
const (
	RoleUser        = "user"
	RoleUserManager = "user-manager"
	RoleSuperAdmin  = "super-admin"
)

// Roles lists every valid role value.
var Roles = []string{RoleUser, RoleUserManager, RoleSuperAdmin}

var (
	ErrUserNotFound       = errors.New("user does not exist")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// User is an account in the directory. PasswordHash never leaves the
// service layer.
type User struct {
	ID                         string    `json:"id"`
	Email                      string    `json:"email"`
	PasswordHash               string    `json:"-"`
	Name                       string    `json:"name,omitempty"`
	Role                       string    `json:"role"`
	PreferredWorkingHourPerDay *float64  `json:"preferredWorkingHourPerDay,omitempty"`
	CreatedAt                  time.Time `json:"createdAt"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeEmail applies the canonical email form: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
