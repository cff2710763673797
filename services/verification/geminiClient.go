// File: services/verification/geminiClient.go
package verification

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// VisionModel answers a text prompt about an attached image. Tests
// substitute a canned implementation.
type VisionModel interface {
	Describe(ctx context.Context, prompt, mimeType string, image []byte) (string, error)
}

// GeminiClient wraps the multimodal Gemini model used to read payment
// receipts.
type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}
}

// Describe sends the image plus the rubric prompt and concatenates the
// text parts of the first candidate.
func (g *GeminiClient) Describe(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	format := strings.TrimPrefix(mimeType, "image/")

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(prompt),
	)
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
	return sb.String(), nil
}
