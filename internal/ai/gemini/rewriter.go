package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/ai"
	"github.com/spigell/careersuite/internal/logger"
	"github.com/spigell/careersuite/internal/utils"
)

// Provider names this backend in results and logs.
const Provider = "gemini"

const (
	defaultMaxLogLength = 200
	maxExperienceRunes  = 4000
	maxRoleRunes        = 120
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, systemInstruction, message string) (string, error)
	Model() string
}

// Rewriter polishes experience text with Gemini.
type Rewriter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Rewriter = (*Rewriter)(nil)

func NewRewriter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Rewriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Rewriter{
		generator: generator,
		logger:    logger.WithCommonFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (r *Rewriter) Rewrite(ctx context.Context, req ai.Request) (*ai.Rewrite, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	system := buildSystemInstruction(req)
	message := truncateRunes(strings.TrimSpace(req.Experience), maxExperienceRunes)

	r.logger.Debug("gemini rewrite request",
		zap.String("tone", string(req.Tone)),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rewrite response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	text, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return &ai.Rewrite{
		Tone:     req.Tone,
		Role:     req.Role,
		Text:     text,
		Original: strings.TrimSpace(req.Experience),
		Provider: Provider,
		Raw:      raw,
	}, nil
}

func buildSystemInstruction(req ai.Request) string {
	role := sanitizeSingleLine(req.Role, maxRoleRunes)
	if role == "" {
		role = "any"
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{TONE}}", string(req.Tone))
	return strings.ReplaceAll(prompt, "{{ROLE}}", role)
}

// sanitizeSingleLine collapses whitespace and replaces square brackets so user
// input cannot open a new prompt section.
func sanitizeSingleLine(value string, limit int) string {
	value = strings.NewReplacer("[", "(", "]", ")").Replace(value)
	return truncateRunes(strings.Join(strings.Fields(value), " "), limit)
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// parseResponse accepts a JSON object (optionally fenced) with a text field and
// falls back to the raw output when the model answered with plain prose.
func parseResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return "", errors.New("gemini response is empty")
	}

	if !strings.HasPrefix(cleaned, "{") {
		return cleaned, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	for _, key := range []string{"text", "rewrite", "experience"} {
		if text := coerceString(data[key]); text != "" {
			return text, nil
		}
	}

	return "", errors.New("gemini response has no text field")
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
