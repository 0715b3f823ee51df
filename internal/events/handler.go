package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatherly/backend/internal/middleware"
	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/internal/organizations"
	"github.com/gatherly/backend/internal/users"
	"github.com/gatherly/backend/internal/validation"
	"github.com/gatherly/backend/pkg/response"
)

// CreateRequest is the body for POST /events. Organizer and organization
// are resolved from the caller, never taken from the body.
type CreateRequest struct {
	Name                string                     `json:"name" validate:"required"`
	Location            string                     `json:"location" validate:"required"`
	DateAndTime         time.Time                  `json:"dateAndTime" validate:"required"`
	Information         string                     `json:"information"`
	IsPublic            bool                       `json:"isPublic"`
	RegistrationOptions models.RegistrationOptions `json:"registrationOptions"`
}

// UpdateRequest is the body for PATCH /events/:id. organizerId and
// organizationId are immutable and have no counterpart here.
type UpdateRequest struct {
	Name                *string                     `json:"name" validate:"omitempty,min=1"`
	Location            *string                     `json:"location" validate:"omitempty,min=1"`
	DateAndTime         *time.Time                  `json:"dateAndTime"`
	Information         *string                     `json:"information"`
	IsPublic            *bool                       `json:"isPublic"`
	RegistrationOptions *models.RegistrationOptions `json:"registrationOptions"`
}

// ParticipantsRequest is the body for PATCH /events/:id/participants.
// The organizer replaces the roster wholesale, e.g. to approve pending
// participants or mark payments.
type ParticipantsRequest struct {
	Participants []models.Participant `json:"participants" validate:"required"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo   *Repository
	orgs   *organizations.Repository
	users  *users.Repository
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, orgs *organizations.Repository, users *users.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, orgs: orgs, users: users, logger: logger}
}

// List handles GET /events. The caller identity, when present, comes
// from an unverified token decode and only drives field redaction.
func (h *Handler) List(c *gin.Context) {
	caller := middleware.OptionalCaller(c)
	events, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if visible, ok := Filter(e, caller); ok {
			out = append(out, visible)
		}
	}
	response.OK(c, out)
}

// GetByID handles GET /events/:id. No redaction is applied here; only
// the listing carries the visibility policy.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	events, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	for _, e := range events {
		if e.ID == id {
			response.OK(c, e)
			return
		}
	}
	response.NotFound(c, "event not found")
}

// Create handles POST /events. The caller must own an organization; the
// event is bound to it and to the caller as organizer.
func (h *Handler) Create(c *gin.Context) {
	caller := middleware.Caller(c)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	org, owned, err := h.orgs.FindOwnedBy(ctx, caller.ID)
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	if !owned {
		response.Forbidden(c, "user does not have an organization")
		return
	}

	events, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	orgID := org.ID
	event := models.Event{
		ID:                  uuid.New(),
		Name:                req.Name,
		Location:            req.Location,
		DateAndTime:         req.DateAndTime,
		Information:         req.Information,
		IsPublic:            req.IsPublic,
		RegistrationOptions: req.RegistrationOptions,
		OrganizerID:         caller.ID,
		OrganizationID:      &orgID,
	}
	events = append(events, event)
	if err := h.repo.ReplaceAll(ctx, events); err != nil {
		response.Internal(c, "failed to save event")
		return
	}
	h.logger.Info("event created",
		zap.String("event_id", event.ID.String()),
		zap.String("organizer_id", caller.ID.String()),
	)
	response.Created(c, event)
}

// Update handles PATCH /events/:id. The lookup is scoped to the caller
// as organizer, so a foreign event reads as not found.
func (h *Handler) Update(c *gin.Context) {
	caller := middleware.Caller(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	events, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	idx, found := findOwned(events, id, caller.ID)
	if !found {
		response.NotFound(c, "event not found")
		return
	}
	e := &events[idx]
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.DateAndTime != nil {
		e.DateAndTime = *req.DateAndTime
	}
	if req.Information != nil {
		e.Information = *req.Information
	}
	if req.IsPublic != nil {
		e.IsPublic = *req.IsPublic
	}
	if req.RegistrationOptions != nil {
		e.RegistrationOptions = *req.RegistrationOptions
	}
	if err := h.repo.ReplaceAll(ctx, events); err != nil {
		response.Internal(c, "failed to save event")
		return
	}
	response.OK(c, events[idx])
}

// UpdateParticipants handles PATCH /events/:id/participants.
func (h *Handler) UpdateParticipants(c *gin.Context) {
	caller := middleware.Caller(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req ParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	events, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	idx, found := findOwned(events, id, caller.ID)
	if !found {
		response.NotFound(c, "event not found")
		return
	}
	events[idx].Participants = req.Participants
	if err := h.repo.ReplaceAll(ctx, events); err != nil {
		response.Internal(c, "failed to save event")
		return
	}
	response.OK(c, events[idx])
}

// Delete handles DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	caller := middleware.Caller(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	ctx := c.Request.Context()
	events, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	idx, found := findOwned(events, id, caller.ID)
	if !found {
		response.NotFound(c, "event not found")
		return
	}
	events = append(events[:idx], events[idx+1:]...)
	if err := h.repo.ReplaceAll(ctx, events); err != nil {
		response.Internal(c, "failed to save events")
		return
	}
	response.NoContent(c)
}

// RequestParticipation handles POST /events/:id/request-participation.
// Any authenticated user may append themselves as a pending participant
// regardless of the event's registration settings. There is no
// idempotency guard; repeated requests append repeated entries.
func (h *Handler) RequestParticipation(c *gin.Context) {
	caller := middleware.Caller(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	ctx := c.Request.Context()
	events, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	idx, found := 0, false
	for i := range events {
		if events[i].ID == id {
			idx, found = i, true
			break
		}
	}
	if !found {
		response.NotFound(c, "event not found")
		return
	}

	user, exists, err := h.users.FindByID(ctx, caller.ID)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	if !exists {
		response.NotFound(c, "user not found")
		return
	}

	participant := models.Participant{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		HasPaid:          false,
		IsApproved:       false,
		RegistrationDate: time.Now().UTC(),
	}
	events[idx].Participants = append(events[idx].Participants, participant)
	if err := h.repo.ReplaceAll(ctx, events); err != nil {
		response.Internal(c, "failed to save event")
		return
	}
	h.logger.Info("participation requested",
		zap.String("event_id", id.String()),
		zap.String("user_id", user.ID.String()),
	)
	response.Created(c, events[idx])
}

// findOwned returns the index of the event with the given id whose
// organizer is organizerID. An explicit found flag avoids treating index
// zero as missing.
func findOwned(events []models.Event, id, organizerID uuid.UUID) (int, bool) {
	for i := range events {
		if events[i].ID == id && events[i].OrganizerID == organizerID {
			return i, true
		}
	}
	return 0, false
}
