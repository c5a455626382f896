package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"studytoolsai/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// ModelName is the Gemini model used for all calls.
	ModelName = "gemini-2.0-flash"
	// DefaultMaxContentChars bounds how much document text is included in a
	// prompt when MAX_CONTENT_CHARS is not configured.
	DefaultMaxContentChars = 30000

	maxAttempts  = 3
	retryBackoff = 2 * time.Second
)

// Client wraps the Gemini client with one model configured for JSON-mode
// responses (quiz and topic calls) and one for plain text (tutoring).
type Client struct {
	client          *genai.Client
	jsonModel       *genai.GenerativeModel
	textModel       *genai.GenerativeModel
	maxContentChars int
}

// NewClient creates a Gemini client from GEMINI_API_KEY and optional
// MAX_CONTENT_CHARS.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	jsonModel := client.GenerativeModel(ModelName)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(0.2)
	jsonModel.SetTopK(40)
	jsonModel.SetTopP(0.95)
	jsonModel.SetMaxOutputTokens(8192)

	textModel := client.GenerativeModel(ModelName)
	textModel.SetTemperature(0.7)

	maxChars := DefaultMaxContentChars
	if v := os.Getenv("MAX_CONTENT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_CONTENT_CHARS value %q", v)
		}
		maxChars = n
	}

	return &Client{
		client:          client,
		jsonModel:       jsonModel,
		textModel:       textModel,
		maxContentChars: maxChars,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// GenerateQuiz builds a quiz from the supplied document text. Questions that
// violate the response contract (wrong option count, no single correct
// answer) are skipped rather than failing the whole quiz.
func (c *Client) GenerateQuiz(ctx context.Context, content string, opts QuizOptions) (*models.Quiz, error) {
	opts = opts.withDefaults()
	prompt := buildQuizPrompt(c.truncate(content), opts)

	var quiz models.Quiz
	if err := c.generateJSON(ctx, prompt, &quiz); err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	quiz.Questions = validQuestions(quiz.Questions)
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz response contained no usable questions")
	}
	if quiz.Title == "" {
		quiz.Title = fmt.Sprintf("Quiz Generated on %s", time.Now().Format("January 2, 2006"))
	}
	return &quiz, nil
}

// AnalyzeTopics produces a topic breakdown of the supplied document text.
func (c *Client) AnalyzeTopics(ctx context.Context, content string) (*models.TopicAnalysis, error) {
	prompt := buildTopicPrompt(c.truncate(content))

	var analysis models.TopicAnalysis
	if err := c.generateJSON(ctx, prompt, &analysis); err != nil {
		return nil, fmt.Errorf("analyze topics: %w", err)
	}
	if len(analysis.Topics) == 0 {
		return nil, fmt.Errorf("topic analysis contained no topics")
	}
	return &analysis, nil
}

// TutorReply answers a single tutoring exchange. The conversation is
// stateless on the server; the client carries the history between calls.
func (c *Client) TutorReply(ctx context.Context, req models.TutorRequest) (string, error) {
	prompt := buildTutorPrompt(req, c.maxContentChars)

	resp, err := c.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	reply := strings.TrimSpace(responseText(resp))
	if reply == "" {
		return "", fmt.Errorf("tutor reply: no content generated")
	}
	return reply, nil
}

// generateJSON sends the prompt to the JSON-mode model, extracts the JSON
// payload from the response, and decodes it into out. Up to maxAttempts
// tries; transient failures and malformed responses both count as a failed
// attempt.
func (c *Client) generateJSON(ctx context.Context, prompt string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		resp, err := c.jsonModel.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("failed to generate content (attempt %d): %w", attempt, err)
			continue
		}

		jsonText := extractJSONFromText(responseText(resp))
		if jsonText == "" {
			lastErr = fmt.Errorf("no JSON content found in response (attempt %d)", attempt)
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(jsonText))
		decoder.UseNumber()
		if err := decoder.Decode(out); err != nil {
			log.Printf("WARN: Invalid JSON from model (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("failed to parse JSON response (attempt %d): %w", attempt, err)
			continue
		}
		return nil
	}

	return fmt.Errorf("gave up after %d attempts: %w", maxAttempts, lastErr)
}

// responseText concatenates all text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// truncate caps document text at the configured character budget before it
// goes into a prompt, cutting back to a rune boundary.
func (c *Client) truncate(content string) string {
	return truncateContent(content, c.maxContentChars)
}

func truncateContent(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	cut := max
	for cut > 0 && !isRuneStart(content[cut]) {
		cut--
	}
	log.Printf("INFO: Truncating document content from %d to %d bytes before prompting", len(content), cut)
	return content[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// validQuestions filters the model's questions down to those honoring the
// response contract. Multiple-choice and true/false questions need the right
// option count and exactly one correct option; short-answer questions need a
// non-empty answer.
func validQuestions(questions []models.Question) []models.Question {
	kept := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.Text == "" {
			log.Printf("WARN: Skipping question with empty text")
			continue
		}
		if q.Type == "" {
			q.Type = QuestionTypeMultipleChoice
		}
		if q.Topic == "" {
			q.Topic = "General"
		}
		switch q.Type {
		case QuestionTypeMultipleChoice:
			if len(q.Options) != 4 || correctCount(q.Options) != 1 {
				log.Printf("WARN: Skipping malformed multiple-choice question: %q", q.Text)
				continue
			}
		case QuestionTypeTrueFalse:
			if len(q.Options) != 2 || correctCount(q.Options) != 1 {
				log.Printf("WARN: Skipping malformed true/false question: %q", q.Text)
				continue
			}
		case QuestionTypeShortAnswer:
			if q.Answer == "" {
				log.Printf("WARN: Skipping short-answer question without an answer: %q", q.Text)
				continue
			}
		default:
			log.Printf("WARN: Skipping question with unknown type %q", q.Type)
			continue
		}
		kept = append(kept, q)
	}
	return kept
}

func correctCount(options []models.Option) int {
	n := 0
	for _, o := range options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}
