package events

import (
	"context"

	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/pkg/storage"
)

const collection = "events"

// Repository loads and saves the events collection as a whole.
type Repository struct {
	store storage.Store
}

// NewRepository creates an events repository.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// List returns all events.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.store.Read(ctx, collection, &events)
	return events, err
}

// ReplaceAll writes the full events collection back.
func (r *Repository) ReplaceAll(ctx context.Context, events []models.Event) error {
	return r.store.Write(ctx, collection, events)
}
