package organizations

import (
	"context"

	"github.com/google/uuid"

	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/pkg/storage"
)

const collection = "organizations"

// Repository loads and saves the organizations collection as a whole.
type Repository struct {
	store storage.Store
}

// NewRepository creates an organizations repository.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// List returns all organizations.
func (r *Repository) List(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.store.Read(ctx, collection, &orgs)
	return orgs, err
}

// ReplaceAll writes the full organizations collection back.
func (r *Repository) ReplaceAll(ctx context.Context, orgs []models.Organization) error {
	return r.store.Write(ctx, collection, orgs)
}

// FindOwnedBy returns the first organization owned by the user and
// whether one exists.
func (r *Repository) FindOwnedBy(ctx context.Context, userID uuid.UUID) (models.Organization, bool, error) {
	orgs, err := r.List(ctx)
	if err != nil {
		return models.Organization{}, false, err
	}
	for _, o := range orgs {
		if o.UserID == userID {
			return o, true, nil
		}
	}
	return models.Organization{}, false, nil
}
