package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRefreshTTL = 30 * 24 * time.Hour

// RefreshTokenStore registra cada refresh token emitido (por jti) junto con su
// dueño. Un jti ausente o revocado no puede rotarse.
type RefreshTokenStore interface {
	Store(jti, userID string, ttl time.Duration) error
	// Owner devuelve el dueño del jti, o "" si no existe o vencio.
	Owner(jti string) (string, error)
	Revoke(jti string) error
}

type refreshGrant struct {
	userID    string
	expiresAt time.Time
}

type memoryRefreshTokenStore struct {
	mu     sync.Mutex
	grants map[string]refreshGrant
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{grants: make(map[string]refreshGrant)}
}

func (s *memoryRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.grants {
		if now.After(g.expiresAt) {
			delete(s.grants, id)
		}
	}
	s.grants[jti] = refreshGrant{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryRefreshTokenStore) Owner(jti string) (string, error) {
	jti = strings.TrimSpace(jti)
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grants[jti]
	if !ok {
		return "", nil
	}
	if time.Now().UTC().After(g.expiresAt) {
		delete(s.grants, jti)
		return "", nil
	}
	return g.userID, nil
}

func (s *memoryRefreshTokenStore) Revoke(jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, strings.TrimSpace(jti))
	return nil
}

// redisRefreshTokenStore guarda quiz:refresh:<jti> = userID con el TTL del token.
type redisRefreshTokenStore struct {
	client redisKV
	prefix string
}

func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	if client == nil {
		return nil
	}
	return &redisRefreshTokenStore{client: client, prefix: redisRefreshPrefix}
}

func (s *redisRefreshTokenStore) key(jti string) (string, bool) {
	jti = strings.TrimSpace(jti)
	return s.prefix + jti, jti != ""
}

func (s *redisRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	key, ok := s.key(jti)
	if !ok {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Set(ctx, key, []byte(userID), ttl).Err()
}

func (s *redisRefreshTokenStore) Owner(jti string) (string, error) {
	key, ok := s.key(jti)
	if !ok {
		return "", nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	owner, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return owner, err
}

func (s *redisRefreshTokenStore) Revoke(jti string) error {
	key, ok := s.key(jti)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Del(ctx, key).Err()
}
