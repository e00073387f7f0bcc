package token

import (
	"fmt"
	"time"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(redis *redis.Client) *redisTokenRepository {
	return &redisTokenRepository{redis: redis}
}

// redisTokenRepository keeps one key per issued refresh token. A refresh token is only honored while its key
// exists so deleting the key revokes the token.
type redisTokenRepository struct {
	redis *redis.Client
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("%d:%s", userId, tokenId)
}

func (r redisTokenRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	if err := r.redis.Set(refreshTokenKey(userId, tokenId), 0, expiresIn).Err(); err != nil {
		return fmt.Errorf("could not set refresh token for user %d: %v", userId, err)
	}
	return nil
}

func (r redisTokenRepository) DeleteRefreshToken(userId uint, previousTokenId string) error {
	deleted, err := r.redis.Del(refreshTokenKey(userId, previousTokenId)).Result()
	if err != nil {
		return fmt.Errorf("could not delete refresh token for user %d: %v", userId, err)
	}

	if deleted < 1 {
		return errdef.NewNotFound("refresh token %q for user %d not found", previousTokenId, userId)
	}

	return nil
}

func (r redisTokenRepository) DeleteRefreshTokens(userId uint) error {
	pattern := fmt.Sprintf("%d:*", userId)
	iter := r.redis.Scan(0, pattern, 100).Iterator()
	var keys []string
	for iter.Next() {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("could not list refresh tokens for user %d: %v", userId, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.redis.Del(keys...).Err(); err != nil {
		return fmt.Errorf("could not delete refresh tokens for user %d: %v", userId, err)
	}
	return nil
}
