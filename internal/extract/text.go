package extract

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// extractPlainText reads the whole file as UTF-8 and returns its content
// verbatim. Normalization happens later, uniformly, in the orchestrator.
func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", path)
	}
	return string(data), nil
}
