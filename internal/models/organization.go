package models

import "github.com/google/uuid"

// Organization is owned by the user who created it. UserID is set once at
// creation and never re-assigned; it is the sole authorization field for
// organization mutations.
type Organization struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"userId"`
}
