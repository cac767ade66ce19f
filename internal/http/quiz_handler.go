package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/service"
)

// QuizHandler expone el catalogo, el scoring stateless y las sesiones de quiz.
type QuizHandler struct {
	logger   *zap.Logger
	scorer   service.PersonalityScorer
	quizServ *service.QuizService
}

func NewQuizHandler(logger *zap.Logger, scorer service.PersonalityScorer, quizServ *service.QuizService) *QuizHandler {
	return &QuizHandler{
		logger:   logger,
		scorer:   scorer,
		quizServ: quizServ,
	}
}

type answerRequest struct {
	QuestionIndex *int `json:"question_index"`
	Direction     *int `json:"direction" binding:"required"`
	Strength      int  `json:"strength"`
}

// Questions maneja GET /api/quiz/questions.
func (h *QuizHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.scorer.Questions()})
}

// Score maneja POST /api/quiz/score. No persiste nada.
func (h *QuizHandler) Score(c *gin.Context) {
	var req struct {
		Answers []answerRequest `json:"answers" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", zap.Error(err))
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

	res, err := h.scorer.Score(answers)
	if err != nil {
		respondQuizError(c, h.logger, "score", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scores":           res.Scores,
		"personality_type": res.Type,
		"description":      service.DescribeType(res.Type),
		"traits":           toTraitResponses(res.Traits),
	})
}

// StartSession maneja POST /api/quiz/sessions.
func (h *QuizHandler) StartSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	session, err := h.quizServ.Start(c.Request.Context(), userID)
	if err != nil {
		respondQuizError(c, h.logger, "start quiz session", err)
		return
	}
	c.JSON(http.StatusCreated, h.sessionView(session))
}

// GetSession maneja GET /api/quiz/sessions/:id.
func (h *QuizHandler) GetSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	session, err := h.quizServ.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, h.logger, "get quiz session", err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(session))
}

// AnswerSession maneja POST /api/quiz/sessions/:id/answers.
func (h *QuizHandler) AnswerSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, err := h.quizServ.Answer(c.Request.Context(), userID, c.Param("id"), *req.Direction, req.Strength)
	if err != nil {
		respondQuizError(c, h.logger, "answer quiz question", err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(session))
}

// BackSession maneja POST /api/quiz/sessions/:id/back.
func (h *QuizHandler) BackSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	session, err := h.quizServ.Back(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, h.logger, "go back in quiz", err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(session))
}

// GoToSession maneja POST /api/quiz/sessions/:id/goto.
func (h *QuizHandler) GoToSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid goto request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, err := h.quizServ.GoTo(c.Request.Context(), userID, c.Param("id"), *req.Index)
	if err != nil {
		respondQuizError(c, h.logger, "jump in quiz", err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(session))
}

// SubmitSession maneja POST /api/quiz/sessions/:id/submit.
func (h *QuizHandler) SubmitSession(c *gin.Context) {
	userID, ok := requireOwner(c)
	if !ok {
		return
	}
	sub, err := h.quizServ.Submit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, h.logger, "submit quiz session", err)
		return
	}
	c.JSON(http.StatusCreated, toSubmissionResponse(sub))
}

// sessionView agrega la pregunta actual para que el cliente no tenga que
// cruzar el indice con el catalogo.
func (h *QuizHandler) sessionView(session *service.QuizSession) gin.H {
	view := gin.H{
		"session":        session,
		"total":          h.scorer.QuestionCount(),
		"answered_count": session.AnsweredCount(),
	}
	questions := h.scorer.Questions()
	if session.State == service.QuizInProgress && session.CurrentIndex < len(questions) {
		view["current_question"] = questions[session.CurrentIndex]
	}
	return view
}
