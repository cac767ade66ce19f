package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-quiz/internal/domain"
)

func TestQuizSession_ForwardFlowCompletes(t *testing.T) {
	q := NewQuizSession("s1", "u1", 3)
	assert.Equal(t, QuizNotStarted, q.State)
	assert.ErrorIs(t, q.Answer(1, 1), ErrSessionNotStarted)

	require.NoError(t, q.Start())
	assert.ErrorIs(t, q.Start(), ErrSessionAlreadyStarted)

	require.NoError(t, q.Answer(domain.DirectionAgree, 2))
	assert.Equal(t, 1, q.CurrentIndex)
	require.NoError(t, q.Answer(domain.DirectionNeutral, 0))
	_, err := q.FinalAnswers()
	assert.ErrorIs(t, err, ErrSessionIncomplete)
	require.NoError(t, q.Answer(domain.DirectionDisagree, 1))

	assert.Equal(t, QuizCompleted, q.State)
	assert.ErrorIs(t, q.Answer(1, 1), ErrSessionCompleted)
	final, err := q.FinalAnswers()
	require.NoError(t, err)
	assert.Equal(t, []domain.Answer{
		{QuestionIndex: 0, Direction: 1, Strength: 2},
		{QuestionIndex: 1, Direction: 0, Strength: 0},
		{QuestionIndex: 2, Direction: -1, Strength: 1},
	}, final)
}

func TestQuizSession_BackAndEdit(t *testing.T) {
	q := NewQuizSession("s1", "u1", 3)
	require.NoError(t, q.Start())
	assert.ErrorIs(t, q.Back(), ErrNoPreviousQuestion)

	require.NoError(t, q.Answer(1, 1))
	require.NoError(t, q.Answer(1, 1))
	require.NoError(t, q.Answer(1, 1))
	require.Equal(t, QuizCompleted, q.State)

	require.NoError(t, q.Back())
	assert.Equal(t, QuizInProgress, q.State)
	assert.Equal(t, 2, q.CurrentIndex)
	require.NoError(t, q.Back())
	assert.Equal(t, 1, q.CurrentIndex)

	require.NoError(t, q.Answer(-1, 2))
	assert.Equal(t, 2, q.CurrentIndex)
	assert.Equal(t, -1, q.Answers[1].Direction)
	assert.Equal(t, QuizInProgress, q.State)

	require.NoError(t, q.Answer(1, 1))
	assert.Equal(t, QuizCompleted, q.State)
}

func TestQuizSession_GoToNeverSkips(t *testing.T) {
	q := NewQuizSession("s1", "u1", 4)
	assert.ErrorIs(t, q.GoTo(0), ErrSessionNotStarted)
	require.NoError(t, q.Start())

	require.NoError(t, q.Answer(1, 1))
	assert.ErrorIs(t, q.GoTo(2), ErrQuestionSkipped)
	assert.ErrorIs(t, q.GoTo(9), ErrContractViolation)

	require.NoError(t, q.GoTo(0))
	assert.Equal(t, 0, q.CurrentIndex)
	require.NoError(t, q.GoTo(1))
	assert.Equal(t, 1, q.CurrentIndex)
	assert.Equal(t, 0, q.HighestAnswered())
}

func TestQuizSession_RejectsInvalidAnswerAndResets(t *testing.T) {
	q := NewQuizSession("s1", "u1", 2)
	require.NoError(t, q.Start())

	assert.ErrorIs(t, q.Answer(0, 1), ErrContractViolation)
	assert.ErrorIs(t, q.Answer(1, 3), ErrContractViolation)
	assert.Equal(t, 0, q.AnsweredCount())

	require.NoError(t, q.Answer(1, 2))
	q.Reset()
	assert.Equal(t, QuizNotStarted, q.State)
	assert.Equal(t, 0, q.AnsweredCount())
	assert.Equal(t, -1, q.HighestAnswered())
}
