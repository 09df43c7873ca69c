package ports

import (
	"context"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing or searching
// users. Name, Email and Role are exact-match filters; Query is a
// case-insensitive substring match against name or email. Query and the
// exact filters are mutually exclusive by construction (list vs search).
type ListUsersFilter struct {
	Name  string
	Email string
	Role  string
	Query *string

	Page PageParams
}

// UserRepository defines persistence operations for user accounts.
// Implementations report a duplicate email as domain.ErrEmailExists and
// a missing or malformed id as domain.ErrUserNotFound.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
