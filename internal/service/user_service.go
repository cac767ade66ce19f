package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	loginLimiter LoginRateLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, loginLimiter LoginRateLimiter) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(10*time.Minute, 5)
	}
	return &UserService{
		logger:       logger,
		users:        users,
		loginLimiter: loginLimiter,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

var (
	ErrUserServiceNotConfigured = errors.New("user service not configured")
	ErrUserNotFound             = errors.New("user not found")
	ErrUserExists               = errors.New("user already exists")
	ErrInvalidInput             = errors.New("invalid user input")
	ErrRateLimited              = errors.New("rate limited")
	ErrInvalidCredentials       = errors.New("invalid credentials")
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // limite de bcrypt en bytes
	maxUsernameLength = 64
	pgUniqueViolation = "23505"
)

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}

	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength || email == "" {
		return domain.User{}, ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return domain.User{}, ErrInvalidInput
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, ErrUserServiceNotConfigured
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}
