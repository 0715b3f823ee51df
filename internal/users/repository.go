package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/pkg/storage"
)

const collection = "users"

// Repository loads and saves the users collection as a whole.
type Repository struct {
	store storage.Store
}

// NewRepository creates a users repository.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// List returns all users.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.store.Read(ctx, collection, &users)
	return users, err
}

// ReplaceAll writes the full users collection back.
func (r *Repository) ReplaceAll(ctx context.Context, users []models.User) error {
	return r.store.Write(ctx, collection, users)
}

// FindByID returns the user with the given ID and whether it exists.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.User, bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// FindByUsername returns the user with the given username and whether it
// exists.
func (r *Repository) FindByUsername(ctx context.Context, username string) (models.User, bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}
