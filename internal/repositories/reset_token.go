package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetTokenKeyPrefix = "reset_token_used:"

// ResetTokenRepository tracks consumed password-reset token ids in Redis so
// each token can be applied at most once.
type ResetTokenRepository struct {
	rdb *redis.Client
}

func NewResetTokenRepository(rdb *redis.Client) *ResetTokenRepository {
	return &ResetTokenRepository{rdb: rdb}
}

// MarkUsed records the token id as consumed. The ttl should cover at least
// the token's remaining lifetime; after expiry the token is rejected by its
// own exp claim anyway.
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, jti string, ttl time.Duration) error {
	return r.rdb.Set(ctx, resetTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsUsed reports whether the token id has already been consumed.
func (r *ResetTokenRepository) IsUsed(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, resetTokenKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
