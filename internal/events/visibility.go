package events

import (
	"github.com/google/uuid"

	"github.com/gatherly/backend/internal/auth"
	"github.com/gatherly/backend/internal/models"
)

// Filter decides what a caller may see of an event in a listing. It
// returns a possibly redacted copy and whether the event appears at all.
// caller is nil for anonymous requests. The function is pure: the input
// event is never modified, and every well-formed event yields a visible
// result, so listings keep their cardinality.
//
// Rules, in precedence order:
//  1. The organizer sees their own event fully.
//  2. Anonymous callers get organizationId and participants hidden on
//     any event with registration machinery or a non-public flag; the
//     event itself stays listed.
//  3. On a non-public event, a signed-in caller sees the full record
//     only as an approved participant (or a participant when approval
//     is not required); a pending participant sees everything but the
//     roster; everyone else gets organizationId and participants hidden.
//  4. Public events are unredacted for any remaining caller.
func Filter(e models.Event, caller *auth.Identity) (models.Event, bool) {
	if caller != nil && e.OrganizerID == caller.ID {
		return e, true
	}

	if caller == nil && (e.RegistrationOptions.IsRegistrationRequired ||
		e.RegistrationOptions.RequiresApproval ||
		!e.IsPublic) {
		return redact(e, true, true), true
	}

	if !e.IsPublic && caller != nil {
		p, isParticipant := findParticipant(e.Participants, caller.ID)
		if e.RegistrationOptions.IsRegistrationRequired && isParticipant {
			if !e.RegistrationOptions.RequiresApproval || p.IsApproved {
				return e, true
			}
			// Pending approval: the event is visible but not the roster.
			return redact(e, false, true), true
		}
		return redact(e, true, true), true
	}

	if e.IsPublic {
		return e, true
	}

	// Unreachable for a consistent record; omitting keeps the result total.
	return models.Event{}, false
}

// redact returns a copy of e with the requested fields absent.
func redact(e models.Event, hideOrganization, hideParticipants bool) models.Event {
	if hideOrganization {
		e.OrganizationID = nil
	}
	if hideParticipants {
		e.Participants = nil
	}
	return e
}

func findParticipant(participants []models.Participant, id uuid.UUID) (models.Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return models.Participant{}, false
}
