package refreshtokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

const redisKeyPrefix = "crickshots:refresh:"

// redisClient is the part of *redis.Client the repository uses.
type redisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRepository keeps each token under its own key with a TTL equal to the
// token validity, so expired tokens disappear on their own.
type RedisRepository struct {
	client redisClient
	now    func() time.Time
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, now: time.Now}
}

func key(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisRepository) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	if validity <= 0 {
		return fmt.Errorf("refresh token: validity must be positive")
	}
	now := r.now()
	data, err := json.Marshal(models.RefreshToken{UserID: userID, Token: token, Expires: now.Add(validity), CreatedAt: now})
	if err != nil {
		return fmt.Errorf("refresh token: marshal: %w", err)
	}
	if err := r.client.Set(ctx, key(token), data, validity).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	val, err := r.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var rt models.RefreshToken
	if err := json.Unmarshal(val, &rt); err != nil {
		return nil, fmt.Errorf("refresh token: unmarshal: %w", err)
	}
	return &rt, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
