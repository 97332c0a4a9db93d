package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"slingshot/internal/models/gen_models"
)

// GeminiCompletionClient implements CompletionClientInterface using Google's
// Gemini models with JSON-forced output.
type GeminiCompletionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletionClient(apiKey, model string) (*GeminiCompletionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletionClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiCompletionClient) GenerateDayCards(ctx context.Context, prompt string) ([]gen_models.RawCard, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so fence stripping is a formality.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)

	ctx, cancel := context.WithTimeout(ctx, completionCallTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini day generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	cards, err := decodeDayCards(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if err != nil {
		return nil, fmt.Errorf("gemini day generation: %w", err)
	}
	return cards, nil
}

func (c *GeminiCompletionClient) GenerateExplanation(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)

	ctx, cancel := context.WithTimeout(ctx, completionCallTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini explanation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}
