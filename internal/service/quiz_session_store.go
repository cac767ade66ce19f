package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrQuizSessionNotFound = errors.New("quiz session not found")

const defaultQuizSessionTTL = 24 * time.Hour

// QuizSessionStore guarda el progreso de sesiones de quiz.
type QuizSessionStore interface {
	Save(ctx context.Context, session *QuizSession) error
	Get(ctx context.Context, id string) (*QuizSession, error)
	Delete(ctx context.Context, id string) error
}

type memoryQuizEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryQuizSessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryQuizEntry
}

func NewMemoryQuizSessionStore(ttl time.Duration) QuizSessionStore {
	if ttl <= 0 {
		ttl = defaultQuizSessionTTL
	}
	return &memoryQuizSessionStore{
		ttl:   ttl,
		items: make(map[string]memoryQuizEntry),
	}
}

func (s *memoryQuizSessionStore) Save(_ context.Context, session *QuizSession) error {
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return ErrQuizSessionNotFound
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, id)
		}
	}
	s.items[session.ID] = memoryQuizEntry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *memoryQuizSessionStore) Get(_ context.Context, id string) (*QuizSession, error) {
	s.mu.Lock()
	entry, ok := s.items[id]
	if ok && time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrQuizSessionNotFound
	}
	var session QuizSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memoryQuizSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type redisQuizSessionStore struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewRedisQuizSessionStore(client *redis.Client, ttl time.Duration) QuizSessionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultQuizSessionTTL
	}
	return &redisQuizSessionStore{
		client: client,
		ttl:    ttl,
		prefix: redisSessionPrefix,
	}
}

func (s *redisQuizSessionStore) Save(ctx context.Context, session *QuizSession) error {
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return ErrQuizSessionNotFound
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+session.ID, data, s.ttl).Err()
}

func (s *redisQuizSessionStore) Get(ctx context.Context, id string) (*QuizSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrQuizSessionNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuizSessionNotFound
		}
		return nil, err
	}
	var session QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisQuizSessionStore) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+id).Err()
}
