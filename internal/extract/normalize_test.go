package extract

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "a b\n\nc", "a b\n\nc"},
		{"collapses spaces and blank runs", "a   b\n\n\n\nc", "a b\n\nc"},
		{"trims lines and whole text", "  Hello   World  \n\n\n\nBye  ", "Hello World\n\nBye"},
		{"tabs collapse to one space", "a\t\tb \t c", "a b c"},
		{"crlf becomes lf", "a\r\nb\rc", "a\nb\nc"},
		{"whitespace-only lines count as blank", "a\n \n \n \nb", "a\n\nb"},
		{"only whitespace", " \t \n\n \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a   b\n\n\n\nc",
		"  Hello   World  \n\n\n\nBye  ",
		"a\n \n \n \nb",
		"line\r\n\r\n\r\n\r\nother",
		"\t\t  mixed \t whitespace \n\n\n everywhere \t\n",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
