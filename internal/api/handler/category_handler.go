package handler

import (
	"net/http"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes. Reads are public; writes go
// through the catalog policy (admin only).
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", middleware.Authorize(authz.Catalog, authz.ActionCreate), h.Create)
		categories.DELETE("/:slug", middleware.Authorize(authz.Catalog, authz.ActionDelete), h.Delete)
	}
}

// List retrieves all categories, optionally filtered by name
// GET /api/v1/categories?search=...
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToCategoryResponse(category))
}

// Delete removes a category by slug; titles keep living without one
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
