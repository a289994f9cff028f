package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// Service handles the business logic for athlete profiles.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a new profile service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Create registers a new user and returns it with the generated ID.
func (s *Service) Create(ctx context.Context, user User) (User, error) {
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Get retrieves a user by ID. Returns ErrNotFound when the user does not
// exist.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies updateFn to the stored user.
func (s *Service) Update(ctx context.Context, id string, updateFn func(user *User) (bool, error)) error {
	if err := s.repo.Update(ctx, id, updateFn); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return nil
}

// Delete removes a user together with their plans and sessions.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
