package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/repository"
)

var (
	ErrResultServiceNotConfigured = errors.New("result service not configured")
	ErrResultNotFound             = errors.New("result not found")
	ErrResultInvalidInput         = errors.New("result invalid input")
)

const (
	maxNotesLength   = 2000
	maxHistoryLimit  = 100
	defaultHistLimit = 20
)

// ResultService calcula, persiste y compara resultados del quiz.
type ResultService struct {
	results      repository.ResultRepository
	scorer       PersonalityScorer
	comparator   HistoryComparator
	logger       *zap.Logger
	historyLimit int
	now          func() time.Time
}

func NewResultService(results repository.ResultRepository, scorer PersonalityScorer, logger *zap.Logger, historyLimit int) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if historyLimit <= 0 || historyLimit > maxHistoryLimit {
		historyLimit = defaultHistLimit
	}
	return &ResultService{
		results:      results,
		scorer:       scorer,
		logger:       logger,
		historyLimit: historyLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Submission es lo que devuelve un envio: el resultado guardado y su breakdown.
type Submission struct {
	Result domain.TestResult     `json:"result"`
	Traits domain.TraitBreakdown `json:"traits"`
}

// LatestResults junta los dos resultados mas recientes y su diferencia.
type LatestResults struct {
	Latest   *domain.TestResult `json:"latest"`
	Previous *domain.TestResult `json:"previous"`
	Change   domain.ScoreDelta  `json:"change_from_previous"`
}

// Submit puntua un set completo de respuestas, lo guarda y lo compara contra
// el resultado anterior del mismo usuario.
func (s *ResultService) Submit(ctx context.Context, userID string, answers []domain.Answer) (Submission, error) {
	if s == nil || s.results == nil {
		return Submission{}, ErrResultServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Submission{}, ErrResultInvalidInput
	}

	scored, err := s.scorer.Score(answers)
	if err != nil {
		return Submission{}, err
	}

	previous, err := s.results.FindRecentByOwner(ctx, userID, 1)
	if err != nil {
		return Submission{}, fmt.Errorf("load previous result: %w", err)
	}

	now := s.now()
	candidate := domain.TestResult{
		ID:              uuid.NewString(),
		UserID:          userID,
		PersonalityType: scored.Type,
		Scores:          scored.Scores,
		Description:     DescribeType(scored.Type),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	// El resultado se inserta una sola vez, ya con el cambio calculado.
	candidate.ChangeFromPrevious = domain.ScoreDelta{}
	if len(previous) > 0 {
		candidate.ChangeFromPrevious = s.comparator.Diff(candidate, previous[0])
	}

	stored, err := s.results.Create(ctx, candidate)
	if err != nil {
		return Submission{}, fmt.Errorf("save test result: %w", err)
	}

	s.logger.Info("test result saved",
		zap.String("user_id", userID),
		zap.String("result_id", stored.ID),
		zap.String("personality_type", string(stored.PersonalityType)),
	)
	return Submission{Result: stored, Traits: scored.Traits}, nil
}

// Latest devuelve el ultimo resultado, el anterior y la diferencia entre ambos.
func (s *ResultService) Latest(ctx context.Context, userID string) (LatestResults, error) {
	if s == nil || s.results == nil {
		return LatestResults{}, ErrResultServiceNotConfigured
	}
	recent, err := s.results.FindRecentByOwner(ctx, userID, 2)
	if err != nil {
		return LatestResults{}, err
	}
	out := LatestResults{Change: s.comparator.Compare(recent)}
	ordered := OrderResults(recent)
	if len(ordered) > 0 {
		out.Latest = &ordered[0]
	}
	if len(ordered) > 1 {
		out.Previous = &ordered[1]
	}
	return out, nil
}

// History lista resultados del mas reciente al mas viejo.
func (s *ResultService) History(ctx context.Context, userID string, limit int) ([]domain.TestResult, error) {
	if s == nil || s.results == nil {
		return nil, ErrResultServiceNotConfigured
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	results, err := s.results.FindRecentByOwner(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return OrderResults(results), nil
}

// Get devuelve un resultado propio. Los ajenos se reportan como inexistentes.
func (s *ResultService) Get(ctx context.Context, userID, resultID string) (domain.TestResult, error) {
	if s == nil || s.results == nil {
		return domain.TestResult{}, ErrResultServiceNotConfigured
	}
	res, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TestResult{}, ErrResultNotFound
		}
		return domain.TestResult{}, err
	}
	if res.UserID != userID {
		return domain.TestResult{}, ErrResultNotFound
	}
	return res, nil
}

// UpdateNotes reemplaza las notas del usuario; es el unico campo editable.
func (s *ResultService) UpdateNotes(ctx context.Context, userID, resultID, notes string) (domain.TestResult, error) {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return domain.TestResult{}, fmt.Errorf("%w: notes longer than %d characters", ErrResultInvalidInput, maxNotesLength)
	}
	res, err := s.Get(ctx, userID, resultID)
	if err != nil {
		return domain.TestResult{}, err
	}
	now := s.now()
	if err := s.results.UpdateNotes(ctx, res.ID, notes, now); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TestResult{}, ErrResultNotFound
		}
		return domain.TestResult{}, err
	}
	res.Notes = notes
	res.UpdatedAt = now
	return res, nil
}

// Traits recalcula el breakdown de un resultado guardado.
func (s *ResultService) Traits(res domain.TestResult) domain.TraitBreakdown {
	return Breakdown(res.Scores)
}
