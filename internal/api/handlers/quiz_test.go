package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studytoolsai/internal/gemini"
	"studytoolsai/internal/models"
)

// recordingAI captures the content handed to quiz generation so tests can
// check what the handler assembled.
type recordingAI struct {
	stubAI
	content string
}

func (r *recordingAI) GenerateQuiz(ctx context.Context, content string, opts gemini.QuizOptions) (*models.Quiz, error) {
	r.content = content
	return r.stubAI.GenerateQuiz(ctx, content, opts)
}

func jsonRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleGenerateQuiz(t *testing.T) {
	quiz := &models.Quiz{
		Title: "Cell Biology Quiz",
		Questions: []models.Question{
			{Text: "What does the mitochondria do?", Type: gemini.QuestionTypeShortAnswer, Answer: "Produces ATP"},
		},
	}
	env := newTestEnv(t, stubAI{quiz: quiz}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{
		"content":      "the mitochondria is the powerhouse of the cell",
		"numQuestions": 5,
		"difficulty":   "hard",
	})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.Quiz
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if got.Title != quiz.Title || len(got.Questions) != 1 {
		t.Errorf("quiz = %+v", got)
	}
}

func TestHandleGenerateQuizEmptyContent(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{"content": "   "})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error != "content or videoUrl is required" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestHandleGenerateQuizInvalidDifficulty(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{
		"content":    "some notes",
		"difficulty": "impossible",
	})
	rec, _ := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGenerateQuizUnknownQuestionType(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{
		"content":       "some notes",
		"questionTypes": []string{"essay"},
	})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(resp.Error, "essay") {
		t.Errorf("error = %q, should name the rejected type", resp.Error)
	}
}

func TestHandleGenerateQuizFromVideo(t *testing.T) {
	ai := &recordingAI{stubAI: stubAI{quiz: &models.Quiz{Title: "Video Quiz"}}}
	env := newTestEnv(t, ai, stubTranscripts{text: "Today  we cover   osmosis."}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{
		"content":  "My own notes.",
		"videoUrl": "https://www.youtube.com/watch?v=abc123",
	})
	rec, _ := doRequest(t, env.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if want := "My own notes.\n\nToday we cover osmosis."; ai.content != want {
		t.Errorf("generated from %q, want %q", ai.content, want)
	}
}

func TestHandleGenerateQuizTranscriptFailure(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{err: errors.New("no captions")}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{
		"videoUrl": "https://www.youtube.com/watch?v=abc123",
	})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp.Success {
		t.Error("success = true on transcript failure")
	}
}

func TestHandleGenerateQuizGenerationFailure(t *testing.T) {
	env := newTestEnv(t, stubAI{err: errors.New("model unavailable")}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/quiz/generate", map[string]any{"content": "some notes"})
	rec, _ := doRequest(t, env.router, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHandleAnalyzeTopics(t *testing.T) {
	analysis := &models.TopicAnalysis{
		Summary: "Covers cell biology basics.",
		Topics: []models.Topic{
			{Title: "Osmosis", Summary: "Movement of water.", KeyPoints: []string{"passive transport"}},
		},
		StudyOrder: []string{"Osmosis"},
	}
	env := newTestEnv(t, stubAI{analysis: analysis}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/topics/analyze", map[string]any{"content": "chapter text"})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.TopicAnalysis
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if got.Summary != analysis.Summary || len(got.Topics) != 1 {
		t.Errorf("analysis = %+v", got)
	}
}

func TestHandleAnalyzeTopicsMissingContent(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/topics/analyze", map[string]any{})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error != "content is required" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestHandleTutorChat(t *testing.T) {
	env := newTestEnv(t, stubAI{reply: "Osmosis is the movement of water across a membrane."}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/tutor/chat", map[string]any{
		"message": "What is osmosis?",
		"history": []map[string]string{{"role": "user", "text": "Hi"}},
	})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var data struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Reply == "" {
		t.Error("reply is empty")
	}
}

func TestHandleTutorChatMissingMessage(t *testing.T) {
	env := newTestEnv(t, stubAI{}, stubTranscripts{}, stubOCR{})

	req := jsonRequest(t, "/api/tutor/chat", map[string]any{"history": []map[string]string{}})
	rec, resp := doRequest(t, env.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error != "message is required" {
		t.Errorf("error = %q", resp.Error)
	}
}
