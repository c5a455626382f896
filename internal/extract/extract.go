package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Kind identifies which extractor handles an uploaded file. The declared
// media type is inspected exactly once, at the boundary; everything past
// KindForMediaType dispatches on the closed set below.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindImage
	KindPlainText
)

// KindForMediaType maps a declared media type onto an extractor kind.
// PDF and plain text match exactly; any image/* subtype is accepted.
func KindForMediaType(mediaType string) Kind {
	switch {
	case mediaType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	case mediaType == "text/plain":
		return KindPlainText
	default:
		return KindUnsupported
	}
}

// UploadedFile describes a file handed over for extraction. The service owns
// the file at TempPath for the duration of Extract and deletes it before
// returning, on success and failure alike.
type UploadedFile struct {
	TempPath     string
	MediaType    string
	OriginalName string
}

// ErrUnsupportedMediaType is returned when no extractor matches the declared
// media type. The file is not read or deleted in that case.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ExtractionError wraps an extractor-level failure (read, parse, or
// recognition error).
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// Service routes uploaded files to the matching extractor and normalizes the
// result. Extract is safe for concurrent use; each call operates on its own
// file path and shares no mutable state.
type Service struct {
	// OCR recognizes text in image uploads. Defaults to the Tesseract engine.
	OCR Engine
	// Progress, if set, receives coarse stage notifications during OCR. It is
	// purely an operator side channel and never affects the returned result.
	Progress func(stage string)
}

// NewService creates an extraction service with the default OCR engine.
func NewService() *Service {
	return &Service{OCR: NewTesseractEngine()}
}

// Extract turns the uploaded file into normalized text. The temporary file is
// deleted exactly once before Extract returns, whether the extractor
// succeeded or failed. An unsupported media type fails before the file is
// touched.
func (s *Service) Extract(ctx context.Context, file UploadedFile) (string, error) {
	kind := KindForMediaType(file.MediaType)
	if kind == KindUnsupported {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, file.MediaType)
	}

	// The service owns the temp file from here on. Cleanup must run on every
	// exit path, including re-raised extractor errors.
	defer removeIfExists(file.TempPath)

	var text string
	var err error
	switch kind {
	case KindPDF:
		text, err = extractPDF(file.TempPath)
	case KindImage:
		text, err = s.extractImage(ctx, file.TempPath)
	case KindPlainText:
		text, err = extractPlainText(file.TempPath)
	}
	if err != nil {
		return "", &ExtractionError{Cause: err}
	}

	return Normalize(text), nil
}

// removeIfExists deletes the file at path, best effort. Cleanup failures are
// an operational concern, not a correctness one: they are logged and never
// surfaced to the caller. A file that is already gone is not a failure.
func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: Failed to remove temporary file %s: %v", path, err)
	}
}

func (s *Service) observe(stage string) {
	if s.Progress != nil {
		s.Progress(stage)
		return
	}
	log.Printf("INFO: extract: %s", stage)
}
