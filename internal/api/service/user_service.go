package service

import (
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken  = errors.New("email already in use")
	ErrInvalidRole = errors.New("role must be user, moderator or admin")
)

// ProfileUpdate is the self-service subset of user fields; role is
// deliberately absent.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
}

// AdminUserUpdate is the admin-only update surface, any field including
// role.
type AdminUserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	List(page, pageSize int) ([]models.User, int64, error)
	Create(username, email, role string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateByUsername(username string, update AdminUserUpdate) (*models.User, error)
	DeleteByUsername(username string) error
	GetMe(userID string) (*models.User, error)
	UpdateMe(userID string, update ProfileUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin:
		return true
	}
	return false
}

func (s *userService) List(page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(page, pageSize)
}

func (s *userService) Create(username, email, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateByUsername(username string, update AdminUserUpdate) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if update.Role != nil {
		if !validRole(*update.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *update.Role
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	applyProfile(user, ProfileUpdate{
		FirstName: update.FirstName,
		LastName:  update.LastName,
		Bio:       update.Bio,
	})

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteByUsername(username string) error {
	if err := s.userRepo.DeleteByUsername(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetMe(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateMe writes profile fields only; the caller cannot touch its own
// role.
func (s *userService) UpdateMe(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetMe(userID)
	if err != nil {
		return nil, err
	}

	applyProfile(user, update)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyProfile(user *models.User, update ProfileUpdate) {
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
}
