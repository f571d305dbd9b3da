package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

// TitleFilters narrows a title listing; zero values are ignored.
type TitleFilters struct {
	Name         string
	Year         *int
	CategorySlug string
	GenreSlug    string
}

type TitleRepository interface {
	List(filters TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	GetByID(id int64) (*models.Title, error)
	Create(title *models.Title) error
	Update(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) List(filters TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	q := r.db.Model(&models.Title{})
	if filters.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		q = q.Where("titles.year = ?", *filters.Year)
	}
	if filters.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.GenreSlug != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filters.GenreSlug)
	}

	if err := q.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Distinct().
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) GetByID(id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").
		Preload("Genres").
		First(&title, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

// Update persists scalar fields; genre links go through ReplaceGenres.
func (r *titleRepository) Update(title *models.Title) error {
	return r.db.Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Title{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
