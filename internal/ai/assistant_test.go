package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseTone(t *testing.T) {
	tests := []struct {
		input  string
		expect Tone
	}{
		{input: "professional", expect: ToneProfessional},
		{input: " CONFIDENT ", expect: ToneConfident},
		{input: "Executive", expect: ToneExecutive},
		{input: "fresh-graduate", expect: ToneFreshGraduate},
		{input: "Fresh Graduate", expect: ToneFreshGraduate},
		{input: "freshgraduate", expect: ToneFreshGraduate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTone(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestParseToneUnknown(t *testing.T) {
	_, err := ParseTone("sarcastic")

	var toneErr *UnknownToneError
	if !errors.As(err, &toneErr) {
		t.Fatalf("expected UnknownToneError, got %v", err)
	}
	for _, tone := range Tones() {
		if !strings.Contains(err.Error(), string(tone)) {
			t.Fatalf("expected %q to be listed in %q", tone, err.Error())
		}
	}
}

func TestTemplateRewriter(t *testing.T) {
	rw := NewTemplateRewriter()

	tests := []struct {
		name     string
		req      Request
		contains string
	}{
		{name: "frontend professional", req: Request{Tone: "professional", Role: "Frontend Developer", Experience: "built ui"}, contains: "React-based UI"},
		{name: "data executive", req: Request{Tone: ToneExecutive, Role: "Data Scientist", Experience: "models"}, contains: "machine learning roadmap"},
		{name: "backend graduate", req: Request{Tone: "fresh graduate", Role: "backend engineer", Experience: "apis"}, contains: "Node.js services"},
		{name: "unknown role falls back", req: Request{Tone: ToneConfident, Role: "Astronaut", Experience: "space"}, contains: "frontend system"},
		{name: "empty role falls back", req: Request{Tone: ToneConfident, Experience: "space"}, contains: "frontend system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rw.Rewrite(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got.Text, tt.contains) {
				t.Fatalf("expected text to contain %q, got %q", tt.contains, got.Text)
			}
			if got.Provider != ProviderTemplate {
				t.Fatalf("unexpected provider %q", got.Provider)
			}
			if got.Original != strings.TrimSpace(tt.req.Experience) {
				t.Fatalf("unexpected original %q", got.Original)
			}
		})
	}
}

func TestTemplateTableIsComplete(t *testing.T) {
	for role, table := range toneTemplates {
		for _, tone := range Tones() {
			if strings.TrimSpace(table[tone]) == "" {
				t.Fatalf("role %s has no text for tone %s", role, tone)
			}
		}
	}
}

func TestTemplateRewriterErrors(t *testing.T) {
	rw := NewTemplateRewriter()

	if _, err := rw.Rewrite(context.Background(), Request{Tone: ToneProfessional, Experience: "  \n"}); !errors.Is(err, ErrEmptyExperience) {
		t.Fatalf("expected ErrEmptyExperience, got %v", err)
	}

	var toneErr *UnknownToneError
	if _, err := rw.Rewrite(context.Background(), Request{Tone: "loud", Experience: "x"}); !errors.As(err, &toneErr) {
		t.Fatalf("expected UnknownToneError, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rw.Rewrite(ctx, Request{Tone: ToneProfessional, Experience: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
