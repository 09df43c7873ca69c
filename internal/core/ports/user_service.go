package ports

import (
	"context"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// CreateUserInput carries the fields for creating an account through the
// directory. Password is the plaintext; hashing happens in the service.
type CreateUserInput struct {
	Email                      string
	Password                   string
	Name                       string
	Role                       string // empty defaults to "user"
	PreferredWorkingHourPerDay *float64
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Email                      *string
	Password                   *string
	Name                       *string
	Role                       *string
	PreferredWorkingHourPerDay *float64
}

// ListUsersInput carries the exact-match filters of the list endpoint.
type ListUsersInput struct {
	Name  string
	Email string
	Role  string
	Page  PageParams
}

// UserPage is one page of directory results.
type UserPage struct {
	Items []*domain.User
	Info  PageInfo
}

// UserService defines the Account Directory use cases. Every operation
// that can change role or email takes the acting principal so the
// escalation rules can be enforced next to the mutation.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput, actor domain.Principal) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput, actor domain.Principal) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListUsersInput) (*UserPage, error)
	Search(ctx context.Context, query string, page PageParams) (*UserPage, error)
}
