package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in a single image file. Implementations must be safe
// for concurrent use by independent extraction calls.
type Engine interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// TesseractEngine runs OCR through the gosseract client. The engine is fixed
// to its configured languages; there is no confidence thresholding, and
// everything the engine recognizes is returned.
type TesseractEngine struct {
	Languages []string
}

// NewTesseractEngine constructs a Tesseract-backed engine configured for
// English.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{Languages: []string{"eng"}}
}

// Recognize performs OCR over the full image at path. A fresh client is
// created per call; gosseract clients are not safe to share.
func (e *TesseractEngine) Recognize(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.Languages) > 0 {
		if err := client.SetLanguage(e.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func (s *Service) extractImage(ctx context.Context, path string) (string, error) {
	s.observe("ocr started")
	text, err := s.OCR.Recognize(ctx, path)
	if err != nil {
		return "", err
	}
	s.observe("ocr finished")
	return text, nil
}
