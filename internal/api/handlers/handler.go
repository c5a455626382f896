package handlers

import (
	"context"
	"net/http"

	"studytoolsai/internal/extract"
	"studytoolsai/internal/gemini"
	"studytoolsai/internal/models"
	"studytoolsai/internal/upload"

	"github.com/gin-gonic/gin"
)

// TextExtractor turns an uploaded file into normalized text. Satisfied by
// *extract.Service.
type TextExtractor interface {
	Extract(ctx context.Context, file extract.UploadedFile) (string, error)
}

// StudyGenerator produces quizzes, topic analyses, and tutoring replies from
// document text. Satisfied by *gemini.Client.
type StudyGenerator interface {
	GenerateQuiz(ctx context.Context, content string, opts gemini.QuizOptions) (*models.Quiz, error)
	AnalyzeTopics(ctx context.Context, content string) (*models.TopicAnalysis, error)
	TutorReply(ctx context.Context, req models.TutorRequest) (string, error)
}

// TranscriptFetcher resolves a video URL into caption text. Satisfied by
// *youtube.Client.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, url string) (string, error)
}

// Handler contains the API handlers' dependencies.
type Handler struct {
	Store       *upload.Store
	Extractor   TextExtractor
	AI          StudyGenerator
	Transcripts TranscriptFetcher
}

// NewHandler creates a new Handler.
func NewHandler(store *upload.Store, extractor TextExtractor, ai StudyGenerator, transcripts TranscriptFetcher) *Handler {
	return &Handler{
		Store:       store,
		Extractor:   extractor,
		AI:          ai,
		Transcripts: transcripts,
	}
}

// respondData writes the success envelope shared by all endpoints.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError writes the failure envelope and aborts the request.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// HandleHealth is a liveness probe.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
