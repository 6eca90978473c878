package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

// TokenStore is a redis allowlist of issued refresh tokens. A token that is
// not in the store is dead, so logout and rotation are a single DEL away.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func tokenKey(token string) string { return "refresh:" + token }

func (s *TokenStore) Save(ctx context.Context, userID, token string) error {
	if err := s.rdb.Set(ctx, tokenKey(token), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Validate returns the user id the token was issued to, or ErrInvalidToken.
func (s *TokenStore) Validate(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
