package service

import (
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestUserService_Create(t *testing.T) {
	t.Run("DefaultsToUserRole", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound).Once()
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
		userRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleUser
		})).Return(nil).Once()

		user, err := svc.Create("alice", "alice@example.com", "")

		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		_, err := svc.Create("alice", "alice@example.com", "superuser")

		assert.ErrorIs(t, err, ErrInvalidRole)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByUsername", "alice").Return(&models.User{Username: "alice"}, nil).Once()

		_, err := svc.Create("alice", "other@example.com", "")

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByUsername", "newname").Return(nil, gorm.ErrRecordNotFound).Once()
		userRepo.On("FindByEmail", "alice@example.com").Return(&models.User{Email: "alice@example.com"}, nil).Once()

		_, err := svc.Create("newname", "alice@example.com", "")

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_UpdateByUsername(t *testing.T) {
	t.Run("PromotesToModerator", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		existing := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}
		userRepo.On("FindByUsername", "alice").Return(existing, nil).Once()
		userRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleModerator
		})).Return(nil).Once()

		role := models.RoleModerator
		user, err := svc.UpdateByUsername("alice", AdminUserUpdate{Role: &role})

		assert.NoError(t, err)
		assert.Equal(t, models.RoleModerator, user.Role)
	})

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		existing := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}
		userRepo.On("FindByUsername", "alice").Return(existing, nil).Once()

		bad := "root"
		_, err := svc.UpdateByUsername("alice", AdminUserUpdate{Role: &bad})

		assert.ErrorIs(t, err, ErrInvalidRole)
		userRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.UpdateByUsername("ghost", AdminUserUpdate{})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	existing := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser, Bio: "old"}
	userRepo.On("FindByID", "u1").Return(existing, nil).Once()
	userRepo.On("Update", mock.Anything).Return(nil).Once()

	bio := "new bio"
	user, err := svc.UpdateMe("u1", ProfileUpdate{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	// Role is untouched by the profile surface
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserService_DeleteByUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("DeleteByUsername", "ghost").Return(gorm.ErrRecordNotFound).Once()

	assert.ErrorIs(t, svc.DeleteByUsername("ghost"), ErrNotFound)
}
