// Package summary produces the short narrative analysis of a trading history.
package summary

import (
	"context"
	"fmt"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"google.golang.org/genai"
)

// advisorInstruction frames every request sent to the model.
const advisorInstruction = "Act as a financial advisor for a currency trader in Bangladesh."

// Generator turns a prompt into prose.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is a Generator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed generator.
// Returns apperrors.ErrMissingCredential when apiKey is empty.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apperrors.ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Generate sends prompt to the configured model and returns the text of the
// first candidate, which may be empty.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: advisorInstruction}}},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrSummaryUnavailable, err)
	}
	return resp.Text(), nil
}
