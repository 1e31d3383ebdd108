package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/pkg/database"
)

const (
	RefreshTokenPrefix = "refresh_token:"
	// UserRefreshTokensPrefix indexes the live refresh tokens of one user
	UserRefreshTokensPrefix = "user_refresh_tokens:"
)

var ErrSessionNotFound = errors.New("refresh token does not exist or has expired")

// SessionData identity stored behind a refresh token
type SessionData struct {
	UserID   uint
	Username string
	Role     string
}

// SessionStore keeps refresh tokens in Redis
type SessionStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewSessionStore(redisClient *database.RedisClient, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: redisClient, ttl: ttl}
}

// randomToken returns 32 random bytes, URL-safe base64 encoded
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Issue creates a refresh token for data
func (s *SessionStore) Issue(ctx context.Context, data SessionData) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}

	key := RefreshTokenPrefix + token
	fields := map[string]any{
		"user_id":  data.UserID,
		"username": data.Username,
		"role":     data.Role,
	}

	userKey := UserRefreshTokensPrefix + strconv.FormatUint(uint64(data.UserID), 10)
	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	pipe.SAdd(ctx, userKey, token)
	pipe.Expire(ctx, userKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*SessionData, error) {
	fields, err := s.redis.HGetAll(ctx, RefreshTokenPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	userID, err := strconv.ParseUint(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed refresh token user id: %w", err)
	}
	return &SessionData{
		UserID:   uint(userID),
		Username: fields["username"],
		Role:     fields["role"],
	}, nil
}

// Revoke deletes token. It reports false when the token was already gone,
// so of two concurrent rotations only one wins.
func (s *SessionStore) Revoke(ctx context.Context, token string, userID uint) (bool, error) {
	n, err := s.redis.Del(ctx, RefreshTokenPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	s.redis.SRem(ctx, UserRefreshTokensPrefix+strconv.FormatUint(uint64(userID), 10), token)
	return n > 0, nil
}

// RevokeAll deletes every refresh token of userID (password change, account removal)
func (s *SessionStore) RevokeAll(ctx context.Context, userID uint) error {
	userKey := UserRefreshTokensPrefix + strconv.FormatUint(uint64(userID), 10)
	tokens, err := s.redis.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, RefreshTokenPrefix+token)
	}
	keys = append(keys, userKey)

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
