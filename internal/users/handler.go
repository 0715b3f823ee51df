package users

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatherly/backend/internal/auth"
	"github.com/gatherly/backend/internal/models"
	"github.com/gatherly/backend/internal/validation"
	"github.com/gatherly/backend/pkg/response"
)

// RegisterRequest is the body for POST /users/register and PUT /users/:id.
// RepeatPassword is a create-time confirmation only and is never persisted.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3"`
	FirstName      string `json:"firstName" validate:"required,min=3"`
	LastName       string `json:"lastName" validate:"required,min=3"`
	Password       string `json:"password" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
}

// LoginRequest is the body for POST /users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateRequest is the body for PATCH /users/:id. Absent fields keep
// their stored values.
type UpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3"`
	FirstName *string `json:"firstName" validate:"omitempty,min=3"`
	LastName  *string `json:"lastName" validate:"omitempty,min=3"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// TokenResponse is the login response with the signed token.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles user HTTP endpoints.
type Handler struct {
	repo   *Repository
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewHandler creates a users handler.
func NewHandler(repo *Repository, tokens *auth.TokenService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, tokens: tokens, logger: logger}
}

// Register handles POST /users/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	if _, exists, err := h.repo.FindByUsername(ctx, req.Username); err != nil {
		response.Internal(c, "failed to load users")
		return
	} else if exists {
		response.BadRequest(c, "username already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	users, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	user := models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	users = append(users, user)
	if err := h.repo.ReplaceAll(ctx, users); err != nil {
		response.Internal(c, "failed to save user")
		return
	}
	h.logger.Info("user registered", zap.String("username", user.Username))
	response.Created(c, user.ToPublic())
}

// Login handles POST /users/login. The token is returned in the JSON
// body, the Authorization response header, and an httpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	user, found, err := h.repo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	if !auth.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid password")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	c.Header("Authorization", "Bearer "+token)
	c.SetCookie("token", token, int(h.tokens.Expiry().Seconds()), "/", "", false, true)
	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// List handles GET /users.
func (h *Handler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	out := make([]models.UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	response.OK(c, out)
}

// GetByID handles GET /users/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	user, found, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToPublic())
}

// Search handles GET /users/search/:username.
func (h *Handler) Search(c *gin.Context) {
	user, found, err := h.repo.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToPublic())
}

// Replace handles PUT /users/:id. The full record including password and
// confirmation is required, mirroring registration.
func (h *Handler) Replace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	ctx := c.Request.Context()
	users, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	idx, found := indexByID(users, id)
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}
	users[idx] = models.User{
		ID:        id,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	if err := h.repo.ReplaceAll(ctx, users); err != nil {
		response.Internal(c, "failed to save user")
		return
	}
	response.OK(c, users[idx].ToPublic())
}

// Update handles PATCH /users/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
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
	users, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	idx, found := indexByID(users, id)
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	if req.Username != nil {
		users[idx].Username = *req.Username
	}
	if req.FirstName != nil {
		users[idx].FirstName = *req.FirstName
	}
	if req.LastName != nil {
		users[idx].LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			response.Internal(c, "failed to hash password")
			return
		}
		users[idx].Password = hash
	}
	if err := h.repo.ReplaceAll(ctx, users); err != nil {
		response.Internal(c, "failed to save user")
		return
	}
	response.OK(c, users[idx].ToPublic())
}

// Delete handles DELETE /users/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	ctx := c.Request.Context()
	users, err := h.repo.List(ctx)
	if err != nil {
		response.Internal(c, "failed to load users")
		return
	}
	idx, found := indexByID(users, id)
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	users = append(users[:idx], users[idx+1:]...)
	if err := h.repo.ReplaceAll(ctx, users); err != nil {
		response.Internal(c, "failed to save users")
		return
	}
	response.NoContent(c)
}

func indexByID(users []models.User, id uuid.UUID) (int, bool) {
	for i := range users {
		if users[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
