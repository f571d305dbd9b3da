package service

import (
	"errors"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers a missing entity anywhere in a scoping chain.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is an authenticated requester failing an ownership or
	// role check.
	ErrForbidden = errors.New("operation not permitted")
	// ErrReviewExists is the duplicate-review conflict.
	ErrReviewExists = errors.New("you have already reviewed this title")
)

// ReviewInput is the mutable part of a review.
type ReviewInput struct {
	Text  string
	Score int
}

type ReviewService interface {
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Create(req authz.Requester, titleID int64, input ReviewInput) (*models.Review, error)
	Get(titleID, reviewID int64) (*models.Review, error)
	Update(req authz.Requester, titleID, reviewID int64, text *string, score *int) (*models.Review, error)
	Delete(req authz.Requester, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// resolveTitle is the first link of every review scoping chain.
func (s *reviewService) resolveTitle(titleID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// resolveReview resolves a review strictly within its title; a valid
// review id under a different title is a broken chain, not a hit.
func (s *reviewService) resolveReview(titleID, reviewID int64) (*models.Review, error) {
	if err := s.resolveTitle(titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.resolveTitle(titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(titleID, page, pageSize)
}

// Create persists a review with the requester as author. Uniqueness of
// (author, title) is enforced by the insert itself; two racing creates
// cannot both land. The policy admits every requester category, so the
// effective gate is author binding: no identity, no author, no row.
func (s *reviewService) Create(req authz.Requester, titleID int64, input ReviewInput) (*models.Review, error) {
	if !authz.Allow(req, authz.ReviewResource, authz.ActionCreate) {
		return nil, ErrForbidden
	}
	if !req.Authenticated() {
		return nil, ErrForbidden
	}
	if err := s.resolveTitle(titleID); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID: titleID,
		UserID:  req.UserID,
		Text:    input.Text,
		Score:   input.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// Reload with author for the representation
	return s.reviewRepo.GetByTitleAndID(titleID, review.ID)
}

func (s *reviewService) Get(titleID, reviewID int64) (*models.Review, error) {
	return s.resolveReview(titleID, reviewID)
}

func (s *reviewService) Update(req authz.Requester, titleID, reviewID int64, text *string, score *int) (*models.Review, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(req, review.UserID) {
		return nil, ErrForbidden
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(req authz.Requester, titleID, reviewID int64) error {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return err
	}
	if !authz.CanModify(req, review.UserID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(review)
}
