package models

// Quiz is the structured quiz returned to the client.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is a single quiz question. Options is populated for
// multiple-choice and true/false questions; Answer carries the expected
// response for short-answer questions.
type Question struct {
	Text    string   `json:"text"`
	Topic   string   `json:"topic"`
	Type    string   `json:"type"`
	Options []Option `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
}

// Option is an answer option for a question. Every option carries an
// explanation of why it is correct or incorrect.
type Option struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// TopicAnalysis is the structured topic breakdown of a document.
type TopicAnalysis struct {
	Summary    string   `json:"summary"`
	Topics     []Topic  `json:"topics"`
	StudyOrder []string `json:"study_order"`
}

// Topic is one subject area identified in the source material.
type Topic struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// TutorTurn is one message in a tutoring conversation. Role is either
// "user" or "tutor".
type TutorTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TutorRequest is a stateless tutoring exchange: the new message plus any
// prior turns and optional document context the client carries between calls.
type TutorRequest struct {
	Message string      `json:"message"`
	History []TutorTurn `json:"history,omitempty"`
	Context string      `json:"context,omitempty"`
}

// UploadData is the payload returned for a successful upload-and-extract.
type UploadData struct {
	Filename      string `json:"filename"`
	FileType      string `json:"fileType"`
	Content       string `json:"content"`
	ContentLength int    `json:"contentLength"`
}
