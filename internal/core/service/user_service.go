package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// UserService implements user CRUD with owner-or-admin authorization.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.UserProfile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*domain.UserProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Profile()
	}
	return profiles, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *UserService) FindByUsernameOrEmail(ctx context.Context, value string) (*domain.UserProfile, error) {
	user, err := s.repo.FindByUsernameOrEmail(ctx, value)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// Update applies a partial patch. Not-found is reported before the ownership
// check so probing non-owners get a 404, not a 403. Role changes are an
// admin-only operation regardless of ownership.
func (s *UserService) Update(ctx context.Context, id int64, caller domain.Identity, in ports.UpdateUserInput) (*domain.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.ID != user.ID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !caller.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		role := domain.NormalizeRole(*in.Role)
		if !domain.ValidRole(role) {
			return nil, domain.Validation("Invalid role")
		}
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Int64("caller_id", caller.ID).Msg("user updated")
	return user.Profile(), nil
}

func (s *UserService) Delete(ctx context.Context, id int64, caller domain.Identity) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if caller.ID != user.ID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("caller_id", caller.ID).Msg("user deleted")
	return nil
}
