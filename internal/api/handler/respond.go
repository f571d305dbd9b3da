package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// The duplicate-review conflict is reported as 400, keeping the
// platform's historical contract for that endpoint.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownEmail):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrUnknownSlug),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUsernameMismatch),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMailDelivery):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		// Unclassified errors are infrastructure failures; the cause
		// goes to the log, not to the client.
		slog.Error("unhandled service error", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// paramID parses a numeric path parameter, answering 404 on garbage so a
// malformed id behaves like a missing resource.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pagination reads page/page_size query params with the usual clamping.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
