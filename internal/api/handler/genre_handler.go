package handler

import (
	"net/http"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", middleware.Authorize(authz.Catalog, authz.ActionCreate), h.Create)
		genres.DELETE("/:slug", middleware.Authorize(authz.Catalog, authz.ActionDelete), h.Delete)
	}
}

// List retrieves all genres, optionally filtered by name
// GET /api/v1/genres?search=...
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.genreService.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		out = append(out, *dto.FromModelToGenreResponse(&genres[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(genre))
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
