package service

import (
	"errors"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Create(req authz.Requester, titleID, reviewID int64, text string) (*models.Comment, error)
	Get(titleID, reviewID, commentID int64) (*models.Comment, error)
	Update(req authz.Requester, titleID, reviewID, commentID int64, text string) (*models.Comment, error)
	Delete(req authz.Requester, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// resolveReview validates the title -> review chain, failing fast on the
// first missing link.
func (s *commentService) resolveReview(titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
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

// resolveComment extends the chain to the leaf: the comment must belong
// to the resolved review.
func (s *commentService) resolveComment(titleID, reviewID, commentID int64) (*models.Comment, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(review.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByReview(review.ID, page, pageSize)
}

// Create always persists; comments carry no per-author uniqueness. As
// with reviews, the policy admits everyone and author binding is the
// gate that actually turns anonymous writers away.
func (s *commentService) Create(req authz.Requester, titleID, reviewID int64, text string) (*models.Comment, error) {
	if !authz.Allow(req, authz.CommentResource, authz.ActionCreate) {
		return nil, ErrForbidden
	}
	if !req.Authenticated() {
		return nil, ErrForbidden
	}
	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: review.ID,
		UserID:   req.UserID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByReviewAndID(review.ID, comment.ID)
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*models.Comment, error) {
	return s.resolveComment(titleID, reviewID, commentID)
}

func (s *commentService) Update(req authz.Requester, titleID, reviewID, commentID int64, text string) (*models.Comment, error) {
	comment, err := s.resolveComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(req, comment.UserID) {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(req authz.Requester, titleID, reviewID, commentID int64) error {
	comment, err := s.resolveComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !authz.CanModify(req, comment.UserID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(comment)
}
