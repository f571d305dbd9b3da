package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrCodeNotFound reports a missing or expired confirmation code.
var ErrCodeNotFound = errors.New("confirmation code not found")

// CodeRepository holds per-identity ephemeral confirmation codes. Codes
// are bcrypt-hashed at rest and expire after the configured TTL; issuing
// a new code for an identity replaces the previous one.
type CodeRepository interface {
	Store(ctx context.Context, userID, code string, ttl time.Duration) error
	Verify(ctx context.Context, userID, code string) error
	Delete(ctx context.Context, userID string) error
}

type codeRepository struct {
	client *redis.Client
}

func NewCodeRepository(client *redis.Client) CodeRepository {
	return &codeRepository{client: client}
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirm:user:%s", userID)
}

func (r *codeRepository) Store(ctx context.Context, userID, code string, ttl time.Duration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, codeKey(userID), string(hash), ttl).Err()
}

func (r *codeRepository) Verify(ctx context.Context, userID, code string) error {
	hash, err := r.client.Get(ctx, codeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCodeNotFound
		}
		return err
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}

func (r *codeRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, codeKey(userID)).Err()
}
