package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Create(username, email, role string) (*models.User, error) {
	args := m.Called(username, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateByUsername(username string, update service.AdminUserUpdate) (*models.User, error) {
	args := m.Called(username, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteByUsername(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) GetMe(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(userID string, update service.ProfileUpdate) (*models.User, error) {
	args := m.Called(userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupUserRouter(mockService *MockUserService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewUserHandler(mockService)

	v1 := r.Group("/api/v1")
	if role != "" {
		v1.Use(mockIdentity(role))
	}
	h.RegisterRoutes(v1)
	return r
}

func TestUserHandler_Me(t *testing.T) {
	t.Run("GetOwnProfile", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "user")

		me := &models.User{ID: "test-user-id", Username: "testuser", Email: "me@example.com", Role: models.RoleUser}
		mockService.On("GetMe", "test-user-id").Return(me, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "testuser", response.Username)
	})

	t.Run("WorksForPlainUserDespiteAdminOnlyCollection", func(t *testing.T) {
		// /users/me never consults the user-management policy.
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "user")

		me := &models.User{ID: "test-user-id", Username: "testuser"}
		mockService.On("GetMe", "test-user-id").Return(me, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AnonymousGets401", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "")

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("PatchProfile", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "user")

		updated := &models.User{ID: "test-user-id", Username: "testuser", Bio: "reader"}
		mockService.On("UpdateMe", "test-user-id", mock.MatchedBy(func(u service.ProfileUpdate) bool {
			return u.Bio != nil && *u.Bio == "reader"
		})).Return(updated, nil).Once()

		body, _ := json.Marshal(map[string]string{"bio": "reader"})
		req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "reader", response.Bio)
	})

	t.Run("PatchIgnoresRoleField", func(t *testing.T) {
		// A role key in the body is not part of the profile DTO and must
		// not reach the service.
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "user")

		updated := &models.User{ID: "test-user-id", Username: "testuser", Role: models.RoleUser}
		mockService.On("UpdateMe", "test-user-id", service.ProfileUpdate{}).Return(updated, nil).Once()

		body, _ := json.Marshal(map[string]string{"role": "admin"})
		req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, models.RoleUser, response.Role)
	})
}

func TestUserHandler_AdminCollection(t *testing.T) {
	t.Run("AdminLists", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "admin")

		users := []models.User{{Username: "alice"}, {Username: "bob"}}
		mockService.On("List", 1, 20).Return(users, int64(2), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PaginatedUserResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Len(t, response.Data, 2)
	})

	t.Run("ModeratorGets403", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "moderator")

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("AnonymousGets401", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "")

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AdminCreatesModerator", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "admin")

		created := &models.User{Username: "newmod", Email: "mod@example.com", Role: models.RoleModerator}
		mockService.On("Create", "newmod", "mod@example.com", "moderator").Return(created, nil).Once()

		body, _ := json.Marshal(dto.CreateUserDTO{Username: "newmod", Email: "mod@example.com", Role: "moderator"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("BadRoleRejectedByBinding", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "admin")

		body, _ := json.Marshal(map[string]string{"username": "x", "email": "x@example.com", "role": "superuser"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AdminPromotesUser", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "admin")

		promoted := &models.User{Username: "alice", Role: models.RoleModerator}
		mockService.On("UpdateByUsername", "alice", mock.MatchedBy(func(u service.AdminUserUpdate) bool {
			return u.Role != nil && *u.Role == "moderator"
		})).Return(promoted, nil).Once()

		body, _ := json.Marshal(map[string]string{"role": "moderator"})
		req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/alice", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("AdminDeletesUnknownUser", func(t *testing.T) {
		mockService := new(MockUserService)
		r := setupUserRouter(mockService, "admin")

		mockService.On("DeleteByUsername", "ghost").Return(service.ErrNotFound).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/ghost", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
