package intent

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const classifierInstruction = "You are helping classify user intent for a voice bot. " +
	"Return only one of: book_appointment, check_booking, customer_support, " +
	"working_hours, make_payment, set_reminder, or \"unknown\" if unclear."

// GeminiClassifier labels menu input with a Gemini model.
type GeminiClassifier struct {
	model *genai.GenerativeModel
}

func NewGeminiClassifier(apiKey string) (*GeminiClassifier, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(classifierInstruction)},
	}
	return &GeminiClassifier{model: model}, nil
}

// ClassifyIntent returns the model's label for the caller's utterance.
func (g *GeminiClassifier) ClassifyIntent(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf("User said: '%s'", userInput)
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
