package organizations

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gatherly/backend/internal/middleware"
	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/internal/validation"
	"github.com/gatherly/backend/pkg/response"
)

// CreateRequest is the body for POST /organizations. The owning user is
// always the authenticated caller, never taken from the body.
type CreateRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateRequest is the body for PATCH /organizations/:id.
type UpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

// Handler handles organization HTTP endpoints.
type Handler struct {
	repo *Repository
	// singleOwner rejects a second organization for the same user.
	singleOwner bool
}

// NewHandler creates an organizations handler.
func NewHandler(repo *Repository, singleOwner bool) *Handler {
	return &Handler{repo: repo, singleOwner: singleOwner}
}

// List handles GET /organizations.
func (h *Handler) List(c *gin.Context) {
	orgs, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	response.OK(c, orgs)
}

// GetByID handles GET /organizations/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	orgs, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	for _, o := range orgs {
		if o.ID == id {
			response.OK(c, o)
			return
		}
	}
	response.NotFound(c, "organization not found")
}

// Create handles POST /organizations.
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
	if h.singleOwner {
		if _, owned, err := h.repo.FindOwnedBy(ctx, caller.ID); err != nil {
			response.Internal(c, "failed to load organizations")
			return
		} else if owned {
			response.Forbidden(c, "user already owns an organization")
			return
		}
	}

	orgs, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	org := models.Organization{
		ID:     uuid.New(),
		Name:   req.Name,
		UserID: caller.ID,
	}
	orgs = append(orgs, org)
	if err := h.repo.ReplaceAll(ctx, orgs); err != nil {
		response.Internal(c, "failed to save organization")
		return
	}
	response.Created(c, org)
}

// Update handles PATCH /organizations/:id. The lookup is scoped to the
// caller's ownership, so patching someone else's organization reads as
// not found.
func (h *Handler) Update(c *gin.Context) {
	caller := middleware.Caller(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
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
	orgs, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	idx, found := 0, false
	for i := range orgs {
		if orgs[i].ID == id && orgs[i].UserID == caller.ID {
			idx, found = i, true
			break
		}
	}
	if !found {
		response.NotFound(c, "organization not found")
		return
	}
	if req.Name != nil {
		orgs[idx].Name = *req.Name
	}
	if err := h.repo.ReplaceAll(ctx, orgs); err != nil {
		response.Internal(c, "failed to save organization")
		return
	}
	response.OK(c, orgs[idx])
}

// Delete handles DELETE /organizations/:id. Deliberately no ownership
// check: any authenticated caller may delete any organization.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	ctx := c.Request.Context()
	orgs, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	idx, found := 0, false
	for i := range orgs {
		if orgs[i].ID == id {
			idx, found = i, true
			break
		}
	}
	if !found {
		response.NotFound(c, "organization not found")
		return
	}
	orgs = append(orgs[:idx], orgs[idx+1:]...)
	if err := h.repo.ReplaceAll(ctx, orgs); err != nil {
		response.Internal(c, "failed to save organizations")
		return
	}
	response.NoContent(c)
}
