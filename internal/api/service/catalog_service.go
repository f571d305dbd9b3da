package service

import (
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

// ErrSlugTaken reports a duplicate category or genre slug.
var ErrSlugTaken = errors.New("slug already in use")

// CategoryService manages the single-valued classification tags.
type CategoryService interface {
	List(search string) ([]models.Category, error)
	Create(name, slug string) (*models.Category, error)
	Delete(slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(search string) ([]models.Category, error) {
	return s.repo.GetAll(search)
}

func (s *categoryService) Create(name, slug string) (*models.Category, error) {
	if _, err := s.repo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.repo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GenreService manages the multi-valued classification tags.
type GenreService interface {
	List(search string) ([]models.Genre, error)
	Create(name, slug string) (*models.Genre, error)
	Delete(slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(search string) ([]models.Genre, error) {
	return s.repo.GetAll(search)
}

func (s *genreService) Create(name, slug string) (*models.Genre, error) {
	if _, err := s.repo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.repo.Create(genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.repo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
