package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetAll(search string) ([]models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	DeleteBySlug(slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetAll lists categories ordered by id, optionally filtered by a
// case-insensitive name match.
func (r *categoryRepository) GetAll(search string) ([]models.Category, error) {
	var list []models.Category
	q := r.db.Order("id asc")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) DeleteBySlug(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
