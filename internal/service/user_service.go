package service

import (
	"context"
	"sync"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IUserService resolves the singleton local user. The service runs
// single-tenant, so every request operates on the same user row, created
// lazily on first use.
type IUserService interface {
	GetOrCreateLocalUser(ctx context.Context) (*entity.User, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	username   string

	mu     sync.Mutex
	cached *entity.User
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, username string) IUserService {
	return &userService{
		uowFactory: uowFactory,
		username:   username,
	}
}

func (s *userService) GetOrCreateLocalUser(ctx context.Context) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: s.username})
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.cached = user
		return user, nil
	}

	user = &entity.User{
		Id:        uuid.New(),
		Username:  s.username,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.cached = user
	return user, nil
}
