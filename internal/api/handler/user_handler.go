package handler

import (
	"net/http"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes. The collection and
// per-username items are admin only; /users/me bypasses role checks and
// binds to the requester's own record.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.RequireAuthenticated(), h.GetMe)
		users.PATCH("/me", middleware.RequireAuthenticated(), h.UpdateMe)

		users.GET("", middleware.Authorize(authz.UserResource, authz.ActionRead), h.List)
		users.POST("", middleware.Authorize(authz.UserResource, authz.ActionCreate), h.Create)
		users.GET("/:username", middleware.Authorize(authz.UserResource, authz.ActionRead), h.Get)
		users.PATCH("/:username", middleware.Authorize(authz.UserResource, authz.ActionUpdate), h.Update)
		users.DELETE("/:username", middleware.Authorize(authz.UserResource, authz.ActionDelete), h.Delete)
	}
}

// List retrieves all users with pagination
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	users, total, err := h.userService.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedUserResponse(out, int(total), page, pageSize))
}

// Create adds a user with an optional role
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(req.Username, req.Email, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Get retrieves a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Update patches any user field including role
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateByUsername(c.Param("username"), service.AdminUserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Delete removes a user by username
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteByUsername(c.Param("username")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe retrieves the requester's own record
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	req := middleware.RequesterFromContext(c)

	user, err := h.userService.GetMe(req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// UpdateMe patches the requester's own profile fields; role is not part
// of the accepted payload
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	req := middleware.RequesterFromContext(c)

	var body dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateMe(req.UserID, service.ProfileUpdate{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Bio:       body.Bio,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}
