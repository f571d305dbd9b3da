package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes on the titles group. Reads are
// public; writes are admin only via the catalog policy. Review and
// comment routes nest under the same group.
func (h *TitleHandler) RegisterRoutes(titles *gin.RouterGroup) {
	titles.GET("", h.List)
	titles.GET("/:title_id", h.Get)
	titles.POST("", middleware.Authorize(authz.Catalog, authz.ActionCreate), h.Create)
	titles.PATCH("/:title_id", middleware.Authorize(authz.Catalog, authz.ActionUpdate), h.Update)
	titles.DELETE("/:title_id", middleware.Authorize(authz.Catalog, authz.ActionDelete), h.Delete)
}

// List retrieves titles with filters and pagination
// GET /api/v1/titles?name=&year=&category=&genre=&page=&page_size=
func (h *TitleHandler) List(c *gin.Context) {
	filters := repository.TitleFilters{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filters.Year = &year
	}

	page, pageSize := pagination(c)

	rated, total, err := h.titleService.List(filters, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.TitleResponse, 0, len(rated))
	for i := range rated {
		out = append(out, *dto.FromModelToTitleResponse(&rated[i].Title, rated[i].Rating))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedTitleResponse(out, int(total), page, pageSize))
}

// Get retrieves a single title with its read-time rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	titleID, ok := paramID(c, "title_id")
	if !ok {
		return
	}

	rated, err := h.titleService.Get(titleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(&rated.Title, rated.Rating))
}

// Create adds a title
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rated, err := h.titleService.Create(service.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(&rated.Title, rated.Rating))
}

// Update replaces a title's fields
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	titleID, ok := paramID(c, "title_id")
	if !ok {
		return
	}

	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rated, err := h.titleService.Update(titleID, service.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(&rated.Title, rated.Rating))
}

// Delete removes a title and cascades its reviews and comments
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, ok := paramID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(titleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
