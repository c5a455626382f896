package extract

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reHorizontal = regexp.MustCompile(`[ \t]+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses whitespace noise in extracted text into a canonical
// form: runs of spaces and tabs become a single space, lines lose their
// leading and trailing horizontal whitespace, runs of blank lines are capped
// at one, and the whole result is trimmed. Normalize is total and idempotent:
// re-applying it changes nothing.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	s = reCRLF.ReplaceAllString(s, "\n")
	s = reHorizontal.ReplaceAllString(s, " ")

	// Trim lines before capping blank runs so that whitespace-only lines
	// count as blank; trimming after would reopen runs and break idempotence.
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.Trim(lines[i], " ")
	}
	s = strings.Join(lines, "\n")

	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
