package gemini

import (
	"regexp"
	"strings"
)

var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	codeBlockPattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
)

// extractJSONFromText pulls a JSON object out of a model response that may
// wrap it in markdown fences or surrounding prose. JSON mode usually makes
// this a no-op, but the model does not always honor it.
func extractJSONFromText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Fenced code block first: the fence delimits the object precisely.
	if matches := codeBlockPattern.FindStringSubmatch(text); len(matches) > 1 {
		return matches[1]
	}

	// Otherwise take the outermost brace-delimited span.
	if match := jsonObjectPattern.FindString(text); match != "" {
		return match
	}

	return ""
}
