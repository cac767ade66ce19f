package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrQuizServiceNotConfigured = errors.New("quiz service not configured")

// QuizService maneja sesiones de quiz persistidas en un QuizSessionStore.
// El dueño se pasa explicitamente en cada llamada.
type QuizService struct {
	store   QuizSessionStore
	scorer  PersonalityScorer
	results *ResultService
	logger  *zap.Logger
}

func NewQuizService(store QuizSessionStore, scorer PersonalityScorer, results *ResultService, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		store:   store,
		scorer:  scorer,
		results: results,
		logger:  logger,
	}
}

// Start crea una sesion nueva posicionada en la primera pregunta.
func (s *QuizService) Start(ctx context.Context, userID string) (*QuizSession, error) {
	if s == nil || s.store == nil {
		return nil, ErrQuizServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrQuizSessionNotFound
	}
	session := NewQuizSession(uuid.NewString(), userID, s.scorer.QuestionCount())
	if err := session.Start(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save quiz session: %w", err)
	}
	return session, nil
}

func (s *QuizService) Get(ctx context.Context, userID, sessionID string) (*QuizSession, error) {
	if s == nil || s.store == nil {
		return nil, ErrQuizServiceNotConfigured
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrQuizSessionNotFound
	}
	return session, nil
}

func (s *QuizService) Answer(ctx context.Context, userID, sessionID string, direction, strength int) (*QuizSession, error) {
	return s.mutate(ctx, userID, sessionID, func(q *QuizSession) error {
		return q.Answer(direction, strength)
	})
}

func (s *QuizService) Back(ctx context.Context, userID, sessionID string) (*QuizSession, error) {
	return s.mutate(ctx, userID, sessionID, (*QuizSession).Back)
}

func (s *QuizService) GoTo(ctx context.Context, userID, sessionID string, index int) (*QuizSession, error) {
	return s.mutate(ctx, userID, sessionID, func(q *QuizSession) error {
		return q.GoTo(index)
	})
}

// Submit puntua y guarda una sesion completa, y luego la elimina del store.
func (s *QuizService) Submit(ctx context.Context, userID, sessionID string) (Submission, error) {
	if s != nil && s.results == nil {
		return Submission{}, ErrQuizServiceNotConfigured
	}
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return Submission{}, err
	}
	answers, err := session.FinalAnswers()
	if err != nil {
		return Submission{}, err
	}
	sub, err := s.results.Submit(ctx, userID, answers)
	if err != nil {
		return Submission{}, err
	}
	if err := s.store.Delete(ctx, session.ID); err != nil {
		s.logger.Warn("delete submitted quiz session failed", zap.Error(err), zap.String("session_id", session.ID))
	}
	return sub, nil
}

func (s *QuizService) mutate(ctx context.Context, userID, sessionID string, fn func(*QuizSession) error) (*QuizSession, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save quiz session: %w", err)
	}
	return session, nil
}
