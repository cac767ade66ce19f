package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/service"
)

type mockUserRepo struct {
	mu     sync.Mutex
	byID   map[string]domain.User
	byMail map[string]string
	byName map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:   make(map[string]domain.User),
		byMail: make(map[string]string),
		byName: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = user
	m.byMail[user.Email] = user.ID
	m.byName[user.Username] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.byMail[email]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.byName[username]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type mockResultRepo struct {
	mu    sync.Mutex
	items map[string]domain.TestResult
	seq   int64
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{items: make(map[string]domain.TestResult)}
}

func (m *mockResultRepo) Create(_ context.Context, result domain.TestResult) (domain.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// testApp arma el router completo con stores en memoria.
type testApp struct {
	router  *gin.Engine
	jwtSvc  *service.JWTService
	users   *mockUserRepo
	results *mockResultRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	users := newMockUserRepo()
	results := newMockResultRepo()
	jwtSvc := service.NewJWTServiceWithStore("secret", 15*time.Minute, time.Hour, service.NewMemoryRefreshTokenStore())
	scorer := service.NewPersonalityScorer(service.DefaultQuestions())
	userServ := service.NewUserService(logger, users, service.NewLoginRateLimiter(time.Minute, 3))
	resultServ := service.NewResultService(results, scorer, logger, 20)
	quizServ := service.NewQuizService(service.NewMemoryQuizSessionStore(time.Hour), scorer, resultServ, logger)

	router := NewRouter(
		logger,
		jwtSvc,
		nil,
		NewUserHandler(logger, userServ, jwtSvc),
		NewQuizHandler(logger, scorer, quizServ),
		NewResultHandler(logger, resultServ),
	)
	return &testApp{router: router, jwtSvc: jwtSvc, users: users, results: results}
}

// tokenFor registra un usuario directo en el repo y devuelve un access token.
func (a *testApp) tokenFor(t *testing.T, id string) string {
	t.Helper()
	user := domain.User{ID: id, Username: id, Email: id + "@example.com", CreatedAt: time.Now().UTC()}
	if err := a.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	pair, err := a.jwtSvc.GeneratePair(user)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return pair.AccessToken
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
}

// alternatingAnswers responde agree/disagree alternado con fuerza 2.
func alternatingAnswers(n int) []map[string]int {
	out := make([]map[string]int, 0, n)
	for i := 0; i < n; i++ {
		dir := 1
		if i%2 == 1 {
			dir = -1
		}
		out = append(out, map[string]int{"question_index": i, "direction": dir, "strength": 2})
	}
	return out
}

