package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "zero limit", input: "Developed the billing API", limit: 0, expect: ""},
		{name: "fits", input: "Managed a team", limit: 20, expect: "Managed a team"},
		{name: "cut", input: "Managed a team of five", limit: 7, expect: "Managed..."},
		{name: "model response on one line", input: "{\n  \"text\": \"Led\"\n}\n", limit: 50, expect: `{ "text": "Led" }`},
		{name: "cut counts runes", input: "Développé l'API", limit: 8, expect: "Développ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTruncateForLogKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	const limit = 200
	input := strings.Repeat("опыт ", 100)

	got := TruncateForLog(input, limit)
	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid utf-8: %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != limit {
		t.Fatalf("expected %d runes before the ellipsis, got %d", limit, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}
