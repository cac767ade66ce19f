package service

import (
	"errors"
	"fmt"
	"time"

	"persona-quiz/internal/domain"
)

// QuizState es el estado de una sesion de quiz.
type QuizState string

const (
	QuizNotStarted QuizState = "not_started"
	QuizInProgress QuizState = "in_progress"
	QuizCompleted  QuizState = "completed"
)

var (
	ErrSessionNotStarted     = errors.New("quiz session not started")
	ErrSessionAlreadyStarted = errors.New("quiz session already started")
	ErrSessionCompleted      = errors.New("quiz session already completed")
	ErrSessionIncomplete     = errors.New("quiz session incomplete")
	ErrNoPreviousQuestion    = errors.New("no previous question")
	ErrQuestionSkipped       = errors.New("cannot skip unanswered questions")
)

// QuizSession es el progreso de un usuario en el quiz. Solo avanza de a una
// pregunta o vuelve a una ya respondida; nunca saltea preguntas sin responder.
type QuizSession struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	State        QuizState        `json:"state"`
	CurrentIndex int              `json:"current_index"`
	Answers      []*domain.Answer `json:"answers"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func NewQuizSession(id, userID string, questionCount int) *QuizSession {
	return &QuizSession{
		ID:        id,
		UserID:    userID,
		State:     QuizNotStarted,
		Answers:   make([]*domain.Answer, questionCount),
		UpdatedAt: time.Now().UTC(),
	}
}

func (q *QuizSession) Start() error {
	if q.State != QuizNotStarted {
		return ErrSessionAlreadyStarted
	}
	if len(q.Answers) == 0 {
		return fmt.Errorf("%w: empty questionnaire", ErrContractViolation)
	}
	q.State = QuizInProgress
	q.CurrentIndex = 0
	q.touch()
	return nil
}

// Answer registra la respuesta de la pregunta actual y avanza. Al responder la
// ultima pregunta la sesion queda completa.
func (q *QuizSession) Answer(direction, strength int) error {
	switch q.State {
	case QuizNotStarted:
		return ErrSessionNotStarted
	case QuizCompleted:
		return ErrSessionCompleted
	}
	if err := ValidateAnswer(direction, strength); err != nil {
		return err
	}

	q.Answers[q.CurrentIndex] = &domain.Answer{
		QuestionIndex: q.CurrentIndex,
		Direction:     direction,
		Strength:      strength,
	}
	if q.CurrentIndex < len(q.Answers)-1 {
		q.CurrentIndex++
	} else if q.AnsweredCount() == len(q.Answers) {
		q.State = QuizCompleted
	}
	q.touch()
	return nil
}

// Back vuelve a la pregunta anterior. Desde Completed vuelve a la ultima.
func (q *QuizSession) Back() error {
	switch q.State {
	case QuizNotStarted:
		return ErrSessionNotStarted
	case QuizCompleted:
		q.State = QuizInProgress
		q.CurrentIndex = len(q.Answers) - 1
		q.touch()
		return nil
	}
	if q.CurrentIndex == 0 {
		return ErrNoPreviousQuestion
	}
	q.CurrentIndex--
	q.touch()
	return nil
}

// GoTo permite revisitar cualquier pregunta respondida o la siguiente sin responder.
func (q *QuizSession) GoTo(index int) error {
	if q.State == QuizNotStarted {
		return ErrSessionNotStarted
	}
	if index < 0 || index >= len(q.Answers) {
		return fmt.Errorf("%w: question %d out of range", ErrContractViolation, index)
	}
	if index > q.HighestAnswered()+1 {
		return ErrQuestionSkipped
	}
	q.State = QuizInProgress
	q.CurrentIndex = index
	q.touch()
	return nil
}

func (q *QuizSession) Reset() {
	q.State = QuizNotStarted
	q.CurrentIndex = 0
	for i := range q.Answers {
		q.Answers[i] = nil
	}
	q.touch()
}

func (q *QuizSession) AnsweredCount() int {
	n := 0
	for _, a := range q.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// HighestAnswered devuelve el mayor indice respondido, o -1.
func (q *QuizSession) HighestAnswered() int {
	highest := -1
	for i, a := range q.Answers {
		if a != nil {
			highest = i
		}
	}
	return highest
}

// FinalAnswers devuelve las respuestas solo cuando la sesion esta completa.
func (q *QuizSession) FinalAnswers() ([]domain.Answer, error) {
	if q.State != QuizCompleted {
		return nil, ErrSessionIncomplete
	}
	out := make([]domain.Answer, len(q.Answers))
	for i, a := range q.Answers {
		if a == nil {
			return nil, ErrSessionIncomplete
		}
		out[i] = *a
	}
	return out, nil
}

func (q *QuizSession) touch() {
	q.UpdatedAt = time.Now().UTC()
}
