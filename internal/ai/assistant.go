package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Tone controls the voice of a rewritten experience entry.
type Tone string

const (
	ToneProfessional  Tone = "Professional"
	ToneConfident     Tone = "Confident"
	ToneExecutive     Tone = "Executive"
	ToneFreshGraduate Tone = "Fresh Graduate"
)

// ErrEmptyExperience is returned when there is nothing to rewrite.
var ErrEmptyExperience = errors.New("experience text is empty")

// Tones lists the supported tones in display order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneConfident, ToneExecutive, ToneFreshGraduate}
}

// UnknownToneError reports a tone outside of Tones.
type UnknownToneError struct {
	Tone string
}

func (e *UnknownToneError) Error() string {
	names := make([]string, 0, len(Tones()))
	for _, tone := range Tones() {
		names = append(names, string(tone))
	}
	return fmt.Sprintf("unknown tone %q, valid tones: %s", e.Tone, strings.Join(names, ", "))
}

// ParseTone resolves a tone name ignoring case and separators, so
// "fresh-graduate" and "Fresh Graduate" are the same tone.
func ParseTone(value string) (Tone, error) {
	key := toneKey(value)
	for _, tone := range Tones() {
		if toneKey(string(tone)) == key {
			return tone, nil
		}
	}
	return "", &UnknownToneError{Tone: value}
}

func toneKey(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(value)))
}

// Request is a single rewrite job.
type Request struct {
	Tone       Tone
	Role       string
	Experience string
}

// Validate checks the experience text and normalizes the tone in place.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Experience) == "" {
		return ErrEmptyExperience
	}
	tone, err := ParseTone(string(r.Tone))
	if err != nil {
		return err
	}
	r.Tone = tone
	r.Role = strings.TrimSpace(r.Role)
	return nil
}

// Rewrite is the polished experience text.
type Rewrite struct {
	Tone     Tone
	Role     string
	Text     string
	Original string
	Provider string
	Raw      string
}

// Rewriter turns raw experience text into a polished entry for a target role.
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (*Rewrite, error)
}
