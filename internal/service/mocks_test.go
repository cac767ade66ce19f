package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"persona-quiz/internal/domain"
)

type mockResultRepo struct {
	mu        sync.Mutex
	items     map[string]domain.TestResult
	seq       int64
	createErr error
	findErr   error
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{items: make(map[string]domain.TestResult)}
}

func (m *mockResultRepo) Create(_ context.Context, result domain.TestResult) (domain.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return domain.TestResult{}, m.createErr
	}
	m.seq++
	result.Seq = m.seq
	m.items[result.ID] = result
	return result, nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id string) (domain.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.items[id]
	if !ok {
		return domain.TestResult{}, pgx.ErrNoRows
	}
	return res, nil
}

func (m *mockResultRepo) FindRecentByOwner(_ context.Context, userID string, limit int) ([]domain.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []domain.TestResult
	for _, res := range m.items {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Seq > out[j].Seq
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockResultRepo) UpdateNotes(_ context.Context, id, notes string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	res.Notes = notes
	res.UpdatedAt = updatedAt
	m.items[id] = res
	return nil
}

type mockUserRepo struct {
	usersByID       map[string]domain.User
	usersByEmail    map[string]string
	usersByUsername map[string]string
	createErr       error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:       make(map[string]domain.User),
		usersByEmail:    make(map[string]string),
		usersByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	m.usersByUsername[user.Username] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	id, ok := m.usersByUsername[username]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}
