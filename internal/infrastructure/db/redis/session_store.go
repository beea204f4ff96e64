package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions as Redis hashes whose key TTL is the inactivity
// window. Key format: session:<id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes the session and sets its expiry in one transaction.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	key := sessionKey(sess.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, sessionFields(sess))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get loads a session; a missing or expired key yields domain.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKey(id)

	var (
		fields *redis.MapStringStringCmd
		ttl    *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	values := fields.Val()
	if len(values) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	sess := sessionFromFields(id, values)
	if d := ttl.Val(); d > 0 {
		sess.ExpiresAt = time.Now().UTC().Add(d)
	}
	return sess, nil
}

// Touch pushes the key expiry ttl into the future.
func (s *SessionStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, sessionKey(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func sessionFields(sess *domain.Session) map[string]any {
	isAdmin := "0"
	if sess.IsAdmin {
		isAdmin = "1"
	}
	return map[string]any{
		"is_admin":   isAdmin,
		"created_at": strconv.FormatInt(sess.CreatedAt.Unix(), 10),
	}
}

func sessionFromFields(id string, values map[string]string) *domain.Session {
	sess := &domain.Session{
		ID:      id,
		IsAdmin: values["is_admin"] == "1",
	}
	if ts, err := strconv.ParseInt(values["created_at"], 10, 64); err == nil && ts > 0 {
		sess.CreatedAt = time.Unix(ts, 0).UTC()
	}
	return sess
}
