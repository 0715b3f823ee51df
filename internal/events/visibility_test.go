package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/backend/internal/auth"
	"github.com/gatherly/backend/internal/models"
)

func makeEvent(isPublic, registrationRequired, requiresApproval bool) models.Event {
	orgID := uuid.New()
	return models.Event{
		ID:          uuid.New(),
		Name:        "meetup",
		Location:    "town hall",
		DateAndTime: time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Information: "bring snacks",
		IsPublic:    isPublic,
		RegistrationOptions: models.RegistrationOptions{
			IsRegistrationRequired: registrationRequired,
			RequiresApproval:       requiresApproval,
		},
		OrganizerID:    uuid.New(),
		OrganizationID: &orgID,
	}
}

func withParticipant(e models.Event, userID uuid.UUID, approved bool) models.Event {
	e.Participants = append(e.Participants, models.Participant{
		ID:               userID,
		FirstName:        "Pat",
		LastName:         "Participant",
		IsApproved:       approved,
		RegistrationDate: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	})
	return e
}

func identity(id uuid.UUID) *auth.Identity {
	return &auth.Identity{ID: id, Username: "caller"}
}

func TestFilter_OrganizerSeesOwnEventUnredacted(t *testing.T) {
	cases := []struct {
		name  string
		event models.Event
	}{
		{"private with approval", makeEvent(false, true, true)},
		{"public open", makeEvent(true, false, false)},
		{"public with registration", makeEvent(true, true, false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := withParticipant(tc.event, uuid.New(), true)
			got, ok := Filter(e, identity(e.OrganizerID))
			require.True(t, ok)
			assert.Equal(t, e, got)
		})
	}
}

func TestFilter_AnonymousRedaction(t *testing.T) {
	cases := []struct {
		name   string
		event  models.Event
		redact bool
	}{
		{"public open event fully visible", makeEvent(true, false, false), false},
		{"registration required", makeEvent(true, true, false), true},
		{"approval required", makeEvent(true, false, true), true},
		{"private", makeEvent(false, false, false), true},
		{"private with registration", makeEvent(false, true, true), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := withParticipant(tc.event, uuid.New(), true)
			got, ok := Filter(e, nil)
			require.True(t, ok, "anonymous listing never drops events")
			if !tc.redact {
				assert.Equal(t, e, got)
				return
			}
			assert.Nil(t, got.OrganizationID, "organization linkage hidden")
			assert.Nil(t, got.Participants, "roster hidden")
			// Everything else stays.
			assert.Equal(t, e.ID, got.ID)
			assert.Equal(t, e.Name, got.Name)
			assert.Equal(t, e.Location, got.Location)
			assert.Equal(t, e.Information, got.Information)
			assert.Equal(t, e.RegistrationOptions, got.RegistrationOptions)
		})
	}
}

func TestFilter_PrivateEventSignedInCaller(t *testing.T) {
	callerID := uuid.New()

	t.Run("approved participant sees full event", func(t *testing.T) {
		e := withParticipant(makeEvent(false, true, true), callerID, true)
		got, ok := Filter(e, identity(callerID))
		require.True(t, ok)
		assert.Equal(t, e, got)
	})

	t.Run("participant without approval requirement sees full event", func(t *testing.T) {
		e := withParticipant(makeEvent(false, true, false), callerID, false)
		got, ok := Filter(e, identity(callerID))
		require.True(t, ok)
		assert.Equal(t, e, got)
	})

	t.Run("pending participant sees event but not roster", func(t *testing.T) {
		e := withParticipant(makeEvent(false, true, true), callerID, false)
		got, ok := Filter(e, identity(callerID))
		require.True(t, ok)
		assert.Nil(t, got.Participants)
		assert.Equal(t, e.OrganizationID, got.OrganizationID)
		assert.Equal(t, e.Name, got.Name)
	})

	t.Run("non-participant gets organization and roster hidden", func(t *testing.T) {
		e := withParticipant(makeEvent(false, true, true), uuid.New(), true)
		got, ok := Filter(e, identity(callerID))
		require.True(t, ok)
		assert.Nil(t, got.OrganizationID)
		assert.Nil(t, got.Participants)
	})

	t.Run("registration not required hides organization and roster", func(t *testing.T) {
		e := withParticipant(makeEvent(false, false, false), callerID, true)
		got, ok := Filter(e, identity(callerID))
		require.True(t, ok)
		assert.Nil(t, got.OrganizationID)
		assert.Nil(t, got.Participants)
	})
}

func TestFilter_PublicEventVisibleToAnySignedInCaller(t *testing.T) {
	e := withParticipant(makeEvent(true, false, false), uuid.New(), true)
	got, ok := Filter(e, identity(uuid.New()))
	require.True(t, ok)
	assert.Equal(t, e, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	e := withParticipant(makeEvent(false, true, true), uuid.New(), true)
	orgID := *e.OrganizationID
	_, ok := Filter(e, nil)
	require.True(t, ok)
	assert.Equal(t, orgID, *e.OrganizationID)
	assert.Len(t, e.Participants, 1)
}

// Redaction is stable: filtering an already filtered event again with the
// same caller changes nothing.
func TestFilter_Idempotent(t *testing.T) {
	callerID := uuid.New()
	cases := []struct {
		name   string
		event  models.Event
		caller *auth.Identity
	}{
		{"anonymous public open", makeEvent(true, false, false), nil},
		{"anonymous with registration", makeEvent(true, true, false), nil},
		{"anonymous private", withParticipant(makeEvent(false, false, false), uuid.New(), true), nil},
		{"organizer", makeEvent(false, true, true), nil},
		{"approved participant", withParticipant(makeEvent(false, true, true), callerID, true), identity(callerID)},
		{"signed-in non-participant", withParticipant(makeEvent(false, true, true), uuid.New(), true), identity(callerID)},
		{"signed-in public", makeEvent(true, false, false), identity(callerID)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caller := tc.caller
			if tc.name == "organizer" {
				caller = identity(tc.event.OrganizerID)
			}
			once, ok := Filter(tc.event, caller)
			require.True(t, ok)
			twice, ok := Filter(once, caller)
			require.True(t, ok)
			assert.Equal(t, once, twice)
		})
	}
}
