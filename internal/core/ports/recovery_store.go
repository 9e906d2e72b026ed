package ports

import (
	"context"
	"time"
)

// RecoveryTokenStore keeps one-time password-recovery tokens with expiry.
type RecoveryTokenStore interface {
	// Put stores token -> email for ttl.
	Put(ctx context.Context, token, email string, ttl time.Duration) error
	// Take returns the email for token and invalidates it. A missing or
	// expired token yields domain.ErrRecoveryTokenInvalid.
	Take(ctx context.Context, token string) (string, error)
}
