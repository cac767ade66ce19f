package service

import (
	"errors"
	"fmt"
	"math"

	"persona-quiz/internal/domain"
)

// ErrContractViolation marca un set de respuestas mal formado. Nunca se corrige en silencio.
var ErrContractViolation = errors.New("scoring contract violation")

// ScoreResult agrupa la salida del scorer.
type ScoreResult struct {
	Scores domain.ScoreVector     `json:"scores"`
	Type   domain.PersonalityType `json:"personality_type"`
	Traits domain.TraitBreakdown  `json:"traits"`
}

// PersonalityScorer convierte respuestas ponderadas en un tipo de 4 letras.
// Es puro: se puede compartir entre requests sin locks.
type PersonalityScorer struct {
	catalog []domain.Question
}

func NewPersonalityScorer(catalog []domain.Question) PersonalityScorer {
	if len(catalog) == 0 {
		catalog = DefaultQuestions()
	}
	return PersonalityScorer{catalog: catalog}
}

// Questions devuelve una copia del catalogo.
func (s PersonalityScorer) Questions() []domain.Question {
	out := make([]domain.Question, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// QuestionCount devuelve la cantidad de preguntas del catalogo.
func (s PersonalityScorer) QuestionCount() int {
	return len(s.catalog)
}

// Score acumula los votos y deriva tipo y breakdown. Requiere exactamente una
// respuesta por pregunta, en orden.
func (s PersonalityScorer) Score(answers []domain.Answer) (ScoreResult, error) {
	if len(answers) != len(s.catalog) {
		return ScoreResult{}, fmt.Errorf("%w: expected %d answers, got %d", ErrContractViolation, len(s.catalog), len(answers))
	}

	scores := domain.NewScoreVector()
	for i, a := range answers {
		if a.QuestionIndex != i {
			return ScoreResult{}, fmt.Errorf("%w: answer %d refers to question %d", ErrContractViolation, i, a.QuestionIndex)
		}
		if err := ValidateAnswer(a.Direction, a.Strength); err != nil {
			return ScoreResult{}, fmt.Errorf("question %d: %w", i, err)
		}
		pole := s.catalog[i].Pole
		axis, ok := domain.AxisOf(pole)
		if !ok {
			return ScoreResult{}, fmt.Errorf("%w: question %d has unknown pole %q", ErrContractViolation, i, pole)
		}
		switch a.Direction {
		case domain.DirectionAgree:
			scores[pole] += a.Strength
		case domain.DirectionDisagree:
			scores[axis.Opposite(pole)] += a.Strength
		}
	}

	return ScoreResult{
		Scores: scores,
		Type:   TypeOf(scores),
		Traits: Breakdown(scores),
	}, nil
}

// ValidateAnswer verifica direccion y fuerza de una respuesta.
func ValidateAnswer(direction, strength int) error {
	switch direction {
	case domain.DirectionNeutral:
		if strength != 0 {
			return fmt.Errorf("%w: neutral answer with strength %d", ErrContractViolation, strength)
		}
	case domain.DirectionAgree, domain.DirectionDisagree:
		if strength < 1 || strength > domain.MaxStrength {
			return fmt.Errorf("%w: strength %d out of range", ErrContractViolation, strength)
		}
	default:
		return fmt.Errorf("%w: direction %d out of range", ErrContractViolation, direction)
	}
	return nil
}

// TypeOf elige el polo estrictamente mayor de cada eje; en empate gana el
// primer polo canonico (E, S, T, J).
func TypeOf(scores domain.ScoreVector) domain.PersonalityType {
	code := make([]byte, 0, len(domain.Axes))
	for _, axis := range domain.Axes {
		code = append(code, dominantPole(scores, axis)...)
	}
	return domain.PersonalityType(code)
}

// Breakdown calcula min(100, |a-b|/2*20) por eje: 10 puntos de diferencia es fuerza plena.
func Breakdown(scores domain.ScoreVector) domain.TraitBreakdown {
	out := make(domain.TraitBreakdown, 0, len(domain.Axes))
	for _, axis := range domain.Axes {
		diff := math.Abs(float64(scores[axis.First] - scores[axis.Second]))
		letter := dominantPole(scores, axis)
		out = append(out, domain.TraitStrength{
			Letter:   letter,
			Name:     axis.NameOf(letter),
			Strength: math.Min(100, (diff/2)*20),
		})
	}
	return out
}

func dominantPole(scores domain.ScoreVector, axis domain.Axis) string {
	if scores[axis.Second] > scores[axis.First] {
		return axis.Second
	}
	return axis.First
}
