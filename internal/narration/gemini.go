package narration

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	DefaultFlavorModel = "gemini-3-flash-preview"
	DefaultStoryModel  = "gemini-3-pro-preview"
)

// NewGeminiClient connects to the Gemini API. The caller closes the client.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

// GeminiGenerator is a TextGenerator backed by one Gemini model.
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

// NewGeminiGenerator wraps model; an empty name selects DefaultFlavorModel.
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultFlavorModel
	}
	return &GeminiGenerator{model: client.GenerativeModel(model)}
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
