package models

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationOptions controls how participants join an event.
type RegistrationOptions struct {
	IsRegistrationRequired bool `json:"isRegistrationRequired"`
	RequiresApproval       bool `json:"requiresApproval"`
}

// Participant is a user's registration on an event, with a name snapshot
// taken at registration time.
type Participant struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	HasPaid          bool      `json:"hasPaid"`
	IsApproved       bool      `json:"isApproved"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// Event represents an event run by an organizer on behalf of their
// organization. OrganizerID and OrganizationID are set once at creation
// and are the sole fields checked for mutation and deletion
// authorization. OrganizationID and Participants carry omitempty so a
// redacted copy serializes without them.
type Event struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Location            string              `json:"location"`
	DateAndTime         time.Time           `json:"dateAndTime"`
	Information         string              `json:"information"`
	IsPublic            bool                `json:"isPublic"`
	RegistrationOptions RegistrationOptions `json:"registrationOptions"`
	OrganizerID         uuid.UUID           `json:"organizerId"`
	OrganizationID      *uuid.UUID          `json:"organizationId,omitempty"`
	Participants        []Participant       `json:"participants,omitempty"`
}
