package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenizeOption tunes Tokenize.
type TokenizeOption func(*tokenizeConfig)

type tokenizeConfig struct {
	minLength int
}

// WithMinLength drops tokens shorter than n runes.
func WithMinLength(n int) TokenizeOption {
	return func(c *tokenizeConfig) {
		c.minLength = n
	}
}

// Tokenize lowercases text and splits it on runs of non-alphanumeric characters.
func Tokenize(text string, opts ...TokenizeOption) []string {
	var cfg tokenizeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" || utf8.RuneCountInString(field) < cfg.minLength {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// Document is a tokenized piece of text. It is not modified after NewDocument.
type Document struct {
	text   string
	order  []string
	counts map[string]int
}

// NewDocument tokenizes text and records token occurrence counts.
func NewDocument(text string, opts ...TokenizeOption) *Document {
	d := &Document{
		text:   text,
		counts: make(map[string]int),
	}
	for _, token := range Tokenize(text, opts...) {
		if d.counts[token] == 0 {
			d.order = append(d.order, token)
		}
		d.counts[token]++
	}
	return d
}

// Text returns the raw text the document was built from.
func (d *Document) Text() string { return d.text }

// Has reports whether token occurs in the document. The lookup is case-insensitive.
func (d *Document) Has(token string) bool {
	return d.counts[strings.ToLower(token)] > 0
}

// Count returns the number of occurrences of token.
func (d *Document) Count(token string) int {
	return d.counts[strings.ToLower(token)]
}

// Distinct returns the distinct tokens in order of first occurrence.
func (d *Document) Distinct() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of distinct tokens.
func (d *Document) Len() int { return len(d.order) }
