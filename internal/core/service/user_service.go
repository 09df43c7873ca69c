package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

// UserService implements the account directory use cases.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create adds an account through the directory. Only a super-admin may
// create another super-admin; the default role is "user".
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput, actor domain.Principal) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:                      domain.NormalizeEmail(input.Email),
		PasswordHash:               string(hash),
		Name:                       input.Name,
		Role:                       role,
		PreferredWorkingHourPerDay: input.PreferredWorkingHourPerDay,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Get fetches a single account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges the provided fields into the stored record. Email
// changes require a super-admin or user-manager actor; promoting the
// merged record to super-admin requires a super-admin actor.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput, actor domain.Principal) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && actor.Role != domain.RoleSuperAdmin && actor.Role != domain.RoleUserManager {
		return nil, domain.ErrForbidden
	}

	if input.Email != nil {
		user.Email = domain.NormalizeEmail(*input.Email)
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.PreferredWorkingHourPerDay != nil {
		user.PreferredWorkingHourPerDay = input.PreferredWorkingHourPerDay
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if user.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// Delete removes the account. Deleting a missing id is
// domain.ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// List returns a page of accounts matching the exact-match filters.
func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) (*ports.UserPage, error) {
	items, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
		Page:  input.Page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Items: items, Info: ports.NewPageInfo(total, input.Page)}, nil
}

// Search returns a page of accounts whose name or email contains query,
// case-insensitively. An empty query matches everyone.
func (s *UserService) Search(ctx context.Context, query string, page ports.PageParams) (*ports.UserPage, error) {
	items, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Query: &query,
		Page:  page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Items: items, Info: ports.NewPageInfo(total, page)}, nil
}
