package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var (
	ErrMissingField = errors.New("product name is required")
	// ErrUnavailable is returned when no model client is configured.
	ErrUnavailable = errors.New("suggestions are not available")
	// ErrNoSuggestion is returned when the model gave no usable answer.
	ErrNoSuggestion = errors.New("no suggestion")
)

const prompt = "Gợi ý đơn vị tính phổ biến nhất cho sản phẩm '%s' (ví dụ: kg, lít, cái, gói, chai, hộp). Chỉ trả lời một từ duy nhất, không kèm giải thích."

// Generator produces a raw model completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini is the production Generator, backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoSuggestion
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Service suggests a Vietnamese unit of measure for a product name.
// A nil generator means the feature is off (no API key configured); Unit then
// fails with ErrUnavailable rather than guessing.
type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

func (s *Service) Unit(ctx context.Context, productName string) (string, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "", ErrMissingField
	}

	if s.gen == nil {
		return "", ErrUnavailable
	}

	raw, err := s.gen.Generate(ctx, fmt.Sprintf(prompt, productName))
	if err != nil {
		return "", err
	}

	unit := normalize(raw)
	if unit == "" {
		return "", ErrNoSuggestion
	}

	return unit, nil
}

// normalize reduces a model answer to a single lowercase word. Models asked
// for one word still occasionally pad the reply with punctuation or a trailing
// sentence.
func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, `."'`)

	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}

	return ""
}
