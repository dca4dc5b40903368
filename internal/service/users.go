package service

import (
	"context"
	"log/slog"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// UserStore is the persistence used by UserService.
type UserStore interface {
	CreateUser(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// UserService registers and lists users.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Create registers a user. The store trims the name and enforces
// uniqueness.
func (s *UserService) Create(ctx context.Context, name string) (*models.User, error) {
	u, err := s.store.CreateUser(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.Info("user created", "user_id", u.ID, "name", u.Name)
	return u, nil
}

// List returns all users ordered by name. The result is never nil.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get returns one user, or ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}
