package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-quiz/internal/service"
)

// Pinger verifica una dependencia para /healthz.
type Pinger func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	pinger Pinger,
	userH *UserHandler,
	quizH *QuizHandler,
	resultH *ResultHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthHandler(pinger))

	api := r.Group("/api")
	requireAuth := JWTAuthMiddleware(jwtSvc)

	auth := api.Group("/auth")
	auth.POST("/signup", userH.Signup)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)
	auth.GET("/me", requireAuth, userH.Me)

	quiz := api.Group("/quiz")
	quiz.GET("/questions", quizH.Questions)
	quiz.POST("/score", quizH.Score)

	sessions := quiz.Group("/sessions", requireAuth)
	sessions.POST("", quizH.StartSession)
	sessions.GET("/:id", quizH.GetSession)
	sessions.POST("/:id/answers", quizH.AnswerSession)
	sessions.POST("/:id/back", quizH.BackSession)
	sessions.POST("/:id/goto", quizH.GoToSession)
	sessions.POST("/:id/submit", quizH.SubmitSession)

	results := api.Group("/results", requireAuth)
	results.POST("", resultH.CreateResult)
	results.GET("", resultH.GetLatest)
	results.GET("/history", resultH.GetHistory)
	results.GET("/:id", resultH.GetResult)
	results.PATCH("/:id/notes", resultH.UpdateNotes)

	return r
}

func healthHandler(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := pinger(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
