package service

import (
	"context"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/repository"
	"github.com/google/uuid"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateModules(ctx context.Context, id uuid.UUID, modules domain.ModuleSet) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Create stores a new user. Every tracker module is enabled unless the request
// says otherwise.
func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	modules := domain.AllModules()
	if req.Modules != nil {
		modules = *req.Modules
	}

	user := &domain.User{
		ID:       uuid.New(),
		Timezone: req.Timezone,
		Modules:  modules,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateModules(ctx context.Context, id uuid.UUID, modules domain.ModuleSet) (*domain.User, error) {
	if err := s.repo.UpdateModules(ctx, id, modules); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
