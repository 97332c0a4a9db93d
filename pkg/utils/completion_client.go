package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"slingshot/internal/models/gen_models"
)

// CompletionClientInterface is the structured-completion service the
// synthesizer talks to. Implementations constrain the response shape only;
// semantic validity (time ordering, venue dedup) is the repairer's job.
type CompletionClientInterface interface {
	GenerateDayCards(ctx context.Context, prompt string) ([]gen_models.RawCard, error)
	GenerateExplanation(ctx context.Context, prompt string) (string, error)
}

// NewCompletionClient creates either an OpenAI or Gemini backed client.
func NewCompletionClient(provider, apiKey, model string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAICompletionClient(apiKey, model), nil
	case "gemini":
		return NewGeminiCompletionClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", provider)
	}
}

// decodeDayCards parses a provider's raw reply into day cards, stripping
// markdown fences and prose first. A reply that still is not the documented
// JSON shape is ErrUnexpectedBehaviorOfAI.
func decodeDayCards(content string) ([]gen_models.RawCard, error) {
	var day gen_models.RawDay
	if err := json.Unmarshal([]byte(CleanJSONResponse(content)), &day); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBehaviorOfAI, err)
	}
	return day.Cards, nil
}

// CleanJSONResponse strips markdown fences and surrounding prose that models
// add around JSON payloads, returning just the first complete object or array.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingDelim(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatchingDelim(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

func findMatchingDelim(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
