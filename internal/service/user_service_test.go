package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type mockLimiter struct {
	allow bool
	keys  []string
}

func (m *mockLimiter) Allow(key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}

func TestUserServiceRegister_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: " alice ",
		Email:    " Alice@Example.com ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "alice@example.com" || user.Username != "alice" {
		t.Fatalf("expected normalized user, got %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("expected hashed password")
	}
}

func TestUserServiceRegister_Duplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "other", Email: "a@example.com", Password: "secret123"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for email, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "b@example.com", Password: "secret123"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for username, got %v", err)
	}
}

func TestUserServiceRegister_UniqueViolationFromStore(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc := NewUserService(zap.NewNop(), repo, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret123"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserServiceRegister_InvalidInput(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "", Email: "a@example.com", Password: "secret123"},
		{Username: "alice", Email: "not-an-email", Password: "secret123"},
		{Username: "alice", Email: "a@example.com", Password: "123"},
		{Username: "alice", Email: "a@example.com", Password: strings.Repeat("x", 73)},
	}
	for _, in := range cases {
		if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "A@example.com", "secret123")
	if err != nil || user.ID != created.ID {
		t.Fatalf("expected successful login, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "missing@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserServiceAuthenticate_RateLimited(t *testing.T) {
	limiter := &mockLimiter{allow: false}
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), limiter)

	if _, err := svc.Authenticate(context.Background(), " A@example.com", "secret123"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "a@example.com" {
		t.Fatalf("expected normalized limiter key, got %+v", limiter.keys)
	}
}

func TestUserServiceGetByID(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginRateLimiter_Window(t *testing.T) {
	l := NewLoginRateLimiter(0, 2)
	if !l.Allow("k") || !l.Allow("k") {
		t.Fatalf("expected first two attempts allowed")
	}
	if l.Allow("k") {
		t.Fatalf("expected third attempt denied")
	}
	if !l.Allow("other") {
		t.Fatalf("expected independent keys")
	}
}
