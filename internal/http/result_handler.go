package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/service"
)

// ResultHandler expone el historial de resultados del usuario autenticado.
type ResultHandler struct {
	logger     *zap.Logger
	resultServ *service.ResultService
}

func NewResultHandler(logger *zap.Logger, resultServ *service.ResultService) *ResultHandler {
	return &ResultHandler{
		logger:     logger,
		resultServ: resultServ,
	}
}

// CreateResult maneja POST /api/results con un set completo de respuestas.
func (h *ResultHandler) CreateResult(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req struct {
		Answers []answerRequest `json:"answers" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid result request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	answers := make([]domain.Answer, 0, len(req.Answers))
	for i, a := range req.Answers {
		idx := i
		if a.QuestionIndex != nil {
			idx = *a.QuestionIndex
		}
		answers = append(answers, domain.Answer{QuestionIndex: idx, Direction: *a.Direction, Strength: a.Strength})
	}

	sub, err := h.resultServ.Submit(c.Request.Context(), userID, answers)
	if err != nil {
		respondQuizError(c, h.logger, "submit result", err)
		return
	}
	c.JSON(http.StatusCreated, toSubmissionResponse(sub))
}

// GetLatest maneja GET /api/results: ultimo, anterior y diferencia.
func (h *ResultHandler) GetLatest(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	latest, err := h.resultServ.Latest(c.Request.Context(), userID)
	if err != nil {
		respondQuizError(c, h.logger, "get latest results", err)
		return
	}
	resp := gin.H{
		"latest":               latest.Latest,
		"previous":             latest.Previous,
		"change_from_previous": latest.Change,
	}
	if latest.Latest != nil {
		resp["traits"] = toTraitResponses(h.resultServ.Traits(*latest.Latest))
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistory maneja GET /api/results/history?limit=N.
func (h *ResultHandler) GetHistory(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	results, err := h.resultServ.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondQuizError(c, h.logger, "list results", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetResult maneja GET /api/results/:id.
func (h *ResultHandler) GetResult(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	res, err := h.resultServ.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, h.logger, "get result", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"traits": toTraitResponses(h.resultServ.Traits(res)),
	})
}

// UpdateNotes maneja PATCH /api/results/:id/notes.
func (h *ResultHandler) UpdateNotes(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req struct {
		Notes *string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid notes request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.resultServ.UpdateNotes(c.Request.Context(), userID, c.Param("id"), *req.Notes)
	if err != nil {
		respondQuizError(c, h.logger, "update notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
