package gemini

import (
	"fmt"
	"strings"

	"studytoolsai/internal/models"
)

// Question types accepted in QuizOptions and echoed back by the model.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

// QuizOptions are the user-chosen parameters for quiz generation.
type QuizOptions struct {
	NumQuestions  int
	Difficulty    string
	QuestionTypes []string
}

func (o QuizOptions) withDefaults() QuizOptions {
	if o.NumQuestions <= 0 {
		o.NumQuestions = 10
	}
	if o.NumQuestions > 50 {
		o.NumQuestions = 50
	}
	if o.Difficulty == "" {
		o.Difficulty = "mixed"
	}
	if len(o.QuestionTypes) == 0 {
		o.QuestionTypes = []string{QuestionTypeMultipleChoice}
	}
	return o
}

const quizPromptTemplate = `Generate a quiz based on the study material below. Follow these requirements exactly:

1. Create a descriptive title for the quiz that reflects the main subject matter of the material.
2. Create exactly %d questions covering the main topics in the material. Include the topic for each question so questions can be grouped later.
3. Question difficulty: %s. When difficulty is "mixed", include a balance of factual recall, comprehension, and application/analysis questions.
4. Only use these question types: %s.
5. For "multiple_choice" questions provide exactly 4 options with exactly one correct answer. For "true_false" questions provide exactly 2 options ("True" and "False") with exactly one correct. For "short_answer" questions provide the expected answer in the "answer" field and no options.
6. For EACH option, provide a concise "explanation" of WHY it is correct or incorrect based on the material. Don't state "This is incorrect/correct"; just give the explanation. Make incorrect options plausible by using common misconceptions.

Format your response as a JSON object with this structure:
{
  "title": "Descriptive Quiz Title",
  "questions": [
    {
      "text": "Question text here?",
      "topic": "the topic this question is about",
      "type": "multiple_choice",
      "options": [
        {"text": "Option A", "is_correct": false, "explanation": "Why A is incorrect."},
        {"text": "Option B", "is_correct": true, "explanation": "Why B is correct."},
        {"text": "Option C", "is_correct": false, "explanation": "Why C is incorrect."},
        {"text": "Option D", "is_correct": false, "explanation": "Why D is incorrect."}
      ]
    }
  ]
}

Study material:
---
%s
---`

func buildQuizPrompt(content string, opts QuizOptions) string {
	return fmt.Sprintf(quizPromptTemplate, opts.NumQuestions, opts.Difficulty, strings.Join(opts.QuestionTypes, ", "), content)
}

const topicPromptTemplate = `Analyze the study material below and break it down into its main topics.

1. Write a short overall summary of the material (2-4 sentences).
2. Identify every main topic. For each topic give a title, a 1-2 sentence summary, and 3-6 key points a student must understand.
3. Suggest a study order: the topic titles sorted so that prerequisite concepts come first.

Format your response as a JSON object with this structure:
{
  "summary": "Overall summary of the material.",
  "topics": [
    {"title": "Topic title", "summary": "Topic summary.", "key_points": ["point 1", "point 2"]}
  ],
  "study_order": ["First topic", "Second topic"]
}

Study material:
---
%s
---`

func buildTopicPrompt(content string) string {
	return fmt.Sprintf(topicPromptTemplate, content)
}

const tutorPreamble = `You are a patient, encouraging tutor. Answer the student's question clearly and concisely. Prefer guiding the student toward understanding over just stating answers. When study material is provided, ground your explanation in it.`

// buildTutorPrompt assembles the stateless tutoring prompt: preamble,
// optional document context (truncated to the character budget), prior turns,
// and the new message.
func buildTutorPrompt(req models.TutorRequest, maxContentChars int) string {
	var b strings.Builder
	b.WriteString(tutorPreamble)
	b.WriteString("\n\n")

	if req.Context != "" {
		b.WriteString("Study material:\n---\n")
		b.WriteString(truncateContent(req.Context, maxContentChars))
		b.WriteString("\n---\n\n")
	}

	for _, turn := range req.History {
		switch turn.Role {
		case "tutor":
			b.WriteString("Tutor: ")
		default:
			b.WriteString("Student: ")
		}
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}

	b.WriteString("Student: ")
	b.WriteString(req.Message)
	b.WriteString("\nTutor:")
	return b.String()
}
