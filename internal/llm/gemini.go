package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiCompleter uses the Gemini API through the genai SDK.
type GeminiCompleter struct {
	models contentGenerator
}

func NewGeminiCompleter(client *genai.Client) *GeminiCompleter {
	return &GeminiCompleter{models: client.Models}
}

func (c *GeminiCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini response: %w", ErrEmptyCompletion)
	}
	return resp.Text(), nil
}
