package service

import (
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

// ErrUnknownSlug reports a category or genre slug that does not exist.
var ErrUnknownSlug = errors.New("unknown category or genre slug")

// TitleInput carries the writable title fields; Category and Genres are
// addressed by slug, matching the external identifiers of the tag
// resources.
type TitleInput struct {
	Name        string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// RatedTitle pairs a title with its read-time rating. Rating is nil when
// the title has no reviews and is never cached.
type RatedTitle struct {
	Title  models.Title
	Rating *int
}

type TitleService interface {
	List(filters repository.TitleFilters, page, pageSize int) ([]RatedTitle, int64, error)
	Get(titleID int64) (*RatedTitle, error)
	Create(input TitleInput) (*RatedTitle, error)
	Update(titleID int64, input TitleInput) (*RatedTitle, error)
	Delete(titleID int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	reviewRepo   repository.ReviewRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	reviewRepo repository.ReviewRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// rating computes the truncated integer average of the title's review
// scores, nil when there are none.
func (s *titleService) rating(titleID int64) (*int, error) {
	avg, err := s.reviewRepo.AverageScoreByTitle(titleID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return nil, nil
	}
	r := int(*avg)
	return &r, nil
}

func (s *titleService) rated(title *models.Title) (*RatedTitle, error) {
	rating, err := s.rating(title.ID)
	if err != nil {
		return nil, err
	}
	return &RatedTitle{Title: *title, Rating: rating}, nil
}

func (s *titleService) List(filters repository.TitleFilters, page, pageSize int) ([]RatedTitle, int64, error) {
	titles, total, err := s.titleRepo.List(filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	rated := make([]RatedTitle, 0, len(titles))
	for i := range titles {
		rt, err := s.rated(&titles[i])
		if err != nil {
			return nil, 0, err
		}
		rated = append(rated, *rt)
	}
	return rated, total, nil
}

func (s *titleService) Get(titleID int64) (*RatedTitle, error) {
	title, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.rated(title)
}

// applyInput resolves slugs to rows and writes the scalar fields.
func (s *titleService) applyInput(title *models.Title, input TitleInput) ([]models.Genre, error) {
	title.Name = input.Name
	title.Year = input.Year
	title.Description = input.Description

	title.CategoryID = nil
	if input.Category != nil && *input.Category != "" {
		category, err := s.categoryRepo.FindBySlug(*input.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownSlug
			}
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.genreRepo.FindBySlugs(input.Genres)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(input.Genres) {
		return nil, ErrUnknownSlug
	}
	return genres, nil
}

func (s *titleService) Create(input TitleInput) (*RatedTitle, error) {
	title := &models.Title{}
	genres, err := s.applyInput(title, input)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}
	if len(genres) > 0 {
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	created, err := s.titleRepo.GetByID(title.ID)
	if err != nil {
		return nil, err
	}
	return s.rated(created)
}

func (s *titleService) Update(titleID int64, input TitleInput) (*RatedTitle, error) {
	title, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	genres, err := s.applyInput(title, input)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}
	if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
		return nil, err
	}

	updated, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		return nil, err
	}
	return s.rated(updated)
}

func (s *titleService) Delete(titleID int64) error {
	if err := s.titleRepo.Delete(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
