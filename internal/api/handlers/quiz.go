package handlers

import (
	"log"
	"net/http"
	"strings"

	"studytoolsai/internal/extract"
	"studytoolsai/internal/gemini"

	"github.com/gin-gonic/gin"
)

// GenerateQuizRequest is the body for POST /api/quiz/generate. At least one
// of Content and VideoURL must be supplied.
type GenerateQuizRequest struct {
	Content       string   `json:"content"`
	VideoURL      string   `json:"videoUrl"`
	NumQuestions  int      `json:"numQuestions"`
	Difficulty    string   `json:"difficulty"`
	QuestionTypes []string `json:"questionTypes"`
}

// AnalyzeTopicsRequest is the body for POST /api/topics/analyze.
type AnalyzeTopicsRequest struct {
	Content string `json:"content" binding:"required"`
}

var validDifficulties = map[string]bool{
	"":       true, // defaulted downstream
	"easy":   true,
	"medium": true,
	"hard":   true,
	"mixed":  true,
}

var validQuestionTypes = map[string]bool{
	gemini.QuestionTypeMultipleChoice: true,
	gemini.QuestionTypeTrueFalse:      true,
	gemini.QuestionTypeShortAnswer:    true,
}

// HandleGenerateQuiz builds a quiz from previously extracted content and/or a
// YouTube video transcript.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	ctx := c.Request.Context()

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !validDifficulties[req.Difficulty] {
		respondError(c, http.StatusBadRequest, "difficulty must be one of easy, medium, hard, mixed")
		return
	}
	for _, qt := range req.QuestionTypes {
		if !validQuestionTypes[qt] {
			respondError(c, http.StatusBadRequest, "unknown question type: "+qt)
			return
		}
	}

	content := strings.TrimSpace(req.Content)

	if req.VideoURL != "" {
		log.Printf("INFO: Fetching transcript for quiz source: %s", req.VideoURL)
		transcript, err := h.Transcripts.Transcript(ctx, req.VideoURL)
		if err != nil {
			log.Printf("ERROR: Transcript fetch failed for %s: %v", req.VideoURL, err)
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		transcript = extract.Normalize(transcript)
		if content == "" {
			content = transcript
		} else {
			content = content + "\n\n" + transcript
		}
	}

	if content == "" {
		respondError(c, http.StatusBadRequest, "content or videoUrl is required")
		return
	}

	quiz, err := h.AI.GenerateQuiz(ctx, content, gemini.QuizOptions{
		NumQuestions:  req.NumQuestions,
		Difficulty:    req.Difficulty,
		QuestionTypes: req.QuestionTypes,
	})
	if err != nil {
		log.Printf("ERROR: Quiz generation failed: %v", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Generated quiz %q with %d questions", quiz.Title, len(quiz.Questions))
	respondData(c, quiz)
}

// HandleAnalyzeTopics breaks document content down into topics with key
// points and a suggested study order.
func (h *Handler) HandleAnalyzeTopics(c *gin.Context) {
	var req AnalyzeTopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	analysis, err := h.AI.AnalyzeTopics(c.Request.Context(), req.Content)
	if err != nil {
		log.Printf("ERROR: Topic analysis failed: %v", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Topic analysis produced %d topics", len(analysis.Topics))
	respondData(c, analysis)
}
