package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"reviewhub/internal/api/mail"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrUnknownEmail     = errors.New("no user with this email")
	ErrUsernameMismatch = errors.New("email is registered under a different username")
	ErrUsernameTaken    = errors.New("username already in use")
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrMailDelivery     = errors.New("confirmation mail delivery failed")
	ErrInvalidToken     = errors.New("invalid token")
)

const codeLength = 8

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Claims carried by an issued bearer token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements the email-plus-confirmation-code exchange for a
// bearer token. Codes are minted fresh per request, stored hashed with a
// TTL, and consumed on first successful exchange.
type AuthService interface {
	RequestCode(ctx context.Context, email, username string) (*models.User, error)
	IssueToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	codeRepo  repository.CodeRepository
	sender    mail.Sender
	jwtSecret string
	jwtExpiry time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.CodeRepository,
	sender mail.Sender,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		codeRepo:  codeRepo,
		sender:    sender,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
		codeTTL:   cfg.ConfirmationCodeTTL,
	}
}

// RequestCode gets or creates the user for (email, username), mints a
// fresh confirmation code and mails it. A failed mail send fails the
// whole request: the caller must not be told the code is on its way.
func (s *authService) RequestCode(ctx context.Context, email, username string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	switch {
	case err == nil:
		if user.Username != username {
			return nil, ErrUsernameMismatch
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			return nil, ErrUsernameTaken
		}
		user = &models.User{
			Email:    email,
			Username: username,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	if err := s.codeRepo.Store(ctx, user.ID, code, s.codeTTL); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("confirmation_code: %s", code)
	if err := s.sender.Send(ctx, user.Email, "Your confirmation code", body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return user, nil
}

// IssueToken exchanges (email, code) for a signed bearer token and
// consumes the code.
func (s *authService) IssueToken(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownEmail
		}
		return "", err
	}

	if err := s.codeRepo.Verify(ctx, user.ID, code); err != nil {
		return "", ErrInvalidCode
	}

	// Single use: any error here must not leave the code replayable
	if err := s.codeRepo.Delete(ctx, user.ID); err != nil {
		return "", err
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// generateCode mints a short random code from an alphabet without
// look-alike characters. Never a constant fallback.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
