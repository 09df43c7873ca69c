package ports

import (
	"context"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// RegisterInput carries the self-service signup fields. Signup always
// creates a plain user; privileged roles are assigned through the
// directory by an already privileged actor.
type RegisterInput struct {
	Email                      string
	Password                   string
	Name                       string
	PreferredWorkingHourPerDay *float64
}

// AuthService issues credentials and resolves them back into principals.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the email/password pair and returns a signed token
	// together with the account.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve turns a bearer token into a Principal. The role is read
	// fresh from the directory, so role changes apply on the next
	// request; a token for a deleted account fails with
	// domain.ErrInvalidToken.
	Resolve(ctx context.Context, token string) (domain.Principal, error)
}
