package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/service"
)

type traitResponse struct {
	Letter   string  `json:"letter"`
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
	Percent  int     `json:"percent"`
}

type submissionResponse struct {
	Result domain.TestResult `json:"result"`
	Traits []traitResponse   `json:"traits"`
}

func toTraitResponses(traits domain.TraitBreakdown) []traitResponse {
	out := make([]traitResponse, 0, len(traits))
	for _, t := range traits {
		out = append(out, traitResponse{
			Letter:   t.Letter,
			Name:     t.Name,
			Strength: t.Strength,
			Percent:  t.Percent(),
		})
	}
	return out
}

func toSubmissionResponse(sub service.Submission) submissionResponse {
	return submissionResponse{Result: sub.Result, Traits: toTraitResponses(sub.Traits)}
}

// respondQuizError traduce errores de dominio a codigos HTTP.
func respondQuizError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrContractViolation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQuizSessionNotFound), errors.Is(err, service.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrResultInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotStarted),
		errors.Is(err, service.ErrSessionAlreadyStarted),
		errors.Is(err, service.ErrSessionCompleted),
		errors.Is(err, service.ErrSessionIncomplete),
		errors.Is(err, service.ErrNoPreviousQuestion),
		errors.Is(err, service.ErrQuestionSkipped):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
