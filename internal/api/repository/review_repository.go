package repository

import (
	"errors"

	"reviewhub/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateReview reports a second review by the same author for the
// same title. Raised by the (user_id, title_id) unique index, so the
// check is atomic rather than read-then-write.
var ErrDuplicateReview = errors.New("author already reviewed this title")

const pgUniqueViolation = "23505"

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(review *models.Review) error
	GetByTitleAndID(titleID, reviewID int64) (*models.Review, error)
	GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
	AverageScoreByTitle(titleID int64) (*float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review, translating the unique-index conflict into
// ErrDuplicateReview.
func (r *reviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}

// GetByTitleAndID resolves a review strictly within the given title's
// review set; a review id that exists under another title is not found.
func (r *reviewRepository) GetByTitleAndID(titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND id = ?", titleID, reviewID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("title_id = ?", titleID).
		Preload("User").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageScoreByTitle computes the mean score per read; nil when the
// title has no reviews.
func (r *reviewRepository) AverageScoreByTitle(titleID int64) (*float64, error) {
	var avg struct {
		Average *float64
	}

	err := r.db.Model(&models.Review{}).
		Select("AVG(score) as average").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return avg.Average, nil
}
