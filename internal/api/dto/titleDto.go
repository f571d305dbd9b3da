package dto

import "reviewhub/internal/api/models"

// CreateTitleDTO for creating or replacing a title; category and genres
// are referenced by slug
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        *int     `json:"year" binding:"omitempty,min=0"`
	Description *string  `json:"description" binding:"omitempty,max=400"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleResponse for returning title information; Rating is null when the
// title has no reviews
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromModelToTitleResponse converts a Title model plus its read-time
// rating to a TitleResponse DTO
func FromModelToTitleResponse(title *models.Title, rating *int) *TitleResponse {
	genres := make([]GenreResponse, 0, len(title.Genres))
	for i := range title.Genres {
		genres = append(genres, *FromModelToGenreResponse(&title.Genres[i]))
	}

	var category *CategoryResponse
	if title.Category != nil {
		category = FromModelToCategoryResponse(title.Category)
	}

	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       genres,
		Category:    category,
	}
}

// PaginatedTitleResponse for returning paginated titles
type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedTitleResponse creates a paginated title response
func NewPaginatedTitleResponse(data []TitleResponse, total, page, pageSize int) *PaginatedTitleResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
