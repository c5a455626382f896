package api

import (
	"studytoolsai/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", handler.HandleHealth)

		api.POST("/upload", handler.HandleUpload)
		api.POST("/quiz/generate", handler.HandleGenerateQuiz)
		api.POST("/topics/analyze", handler.HandleAnalyzeTopics)
		api.POST("/tutor/chat", handler.HandleTutorChat)
	}
}
