package handler_test

import (
	"bytes"
	"context"
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

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestCode(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService)

	v1 := r.Group("/api/v1")
	noLimit := func(c *gin.Context) { c.Next() }
	h.RegisterRoutes(v1, noLimit)
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_SendCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("RequestCode", mock.Anything, "alice@example.com", "alice").
			Return(&models.User{ID: "u1", Email: "alice@example.com", Username: "alice"}, nil).Once()

		w := postJSON(r, "/api/v1/auth/email", dto.EmailRequest{Email: "alice@example.com", Username: "alice"})

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "alice@example.com", response["email"])
		assert.Equal(t, "alice", response["username"])
		mockService.AssertExpectations(t)
	})

	t.Run("UsernameMismatch", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("RequestCode", mock.Anything, "alice@example.com", "wrong").
			Return(nil, service.ErrUsernameMismatch).Once()

		w := postJSON(r, "/api/v1/auth/email", dto.EmailRequest{Email: "alice@example.com", Username: "wrong"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MailFailureIs502", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("RequestCode", mock.Anything, "alice@example.com", "alice").
			Return(nil, service.ErrMailDelivery).Once()

		w := postJSON(r, "/api/v1/auth/email", dto.EmailRequest{Email: "alice@example.com", Username: "alice"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		w := postJSON(r, "/api/v1/auth/email", map[string]string{"email": "not-an-email", "username": "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "RequestCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingUsername", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		w := postJSON(r, "/api/v1/auth/email", map[string]string{"email": "alice@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_IssueToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice@example.com", "GOODCODE").
			Return("signed.jwt.token", nil).Once()

		w := postJSON(r, "/api/v1/auth/token", dto.TokenRequest{Email: "alice@example.com", ConfirmationCode: "GOODCODE"})

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "signed.jwt.token", response.Token)
	})

	t.Run("UnknownEmailIs404", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "ghost@example.com", "GOODCODE").
			Return("", service.ErrUnknownEmail).Once()

		w := postJSON(r, "/api/v1/auth/token", dto.TokenRequest{Email: "ghost@example.com", ConfirmationCode: "GOODCODE"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("WrongCodeIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice@example.com", "BADCODE1").
			Return("", service.ErrInvalidCode).Once()

		w := postJSON(r, "/api/v1/auth/token", dto.TokenRequest{Email: "alice@example.com", ConfirmationCode: "BADCODE1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingCode", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		w := postJSON(r, "/api/v1/auth/token", map[string]string{"email": "alice@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything, mock.Anything)
	})
}
