package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

const recoveryKeyPrefix = "recovery:"

// RecoveryTokenStore keeps one-time password-recovery tokens in Redis.
// Expiry rides on the key TTL, so abandoned tokens vanish without cleanup.
type RecoveryTokenStore struct {
	client *redis.Client
}

func NewRecoveryTokenStore(client *redis.Client) *RecoveryTokenStore {
	return &RecoveryTokenStore{client: client}
}

// Put stores token -> email for ttl.
func (s *RecoveryTokenStore) Put(ctx context.Context, token, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, recoveryKeyPrefix+token, email, ttl).Err(); err != nil {
		return fmt.Errorf("store recovery token: %w", err)
	}
	return nil
}

// Take returns the email for token and deletes it in the same round trip, so
// a token can never be redeemed twice.
func (s *RecoveryTokenStore) Take(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, recoveryKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", domain.ErrRecoveryTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("redeem recovery token: %w", err)
	}
	return email, nil
}
