package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// generationTemperature is kept low so repeated runs over the same corpus
// produce stable documents.
const generationTemperature = 0.1

// Client is the narrow surface the generation layer depends on. Every
// call routes through GenerateJSON because all document output is
// schema-constrained JSON.
type Client interface {
	// GenerateJSON sends a prompt and returns the model's JSON text,
	// stripped of any markdown fences.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel reports which model a tier resolves to
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a Gemini-backed client. A nil config uses the
// default tier mapping.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return newGeminiClient(ctx, config, apiKey)
}

type geminiClient struct {
	client *genai.Client
	config *Config
}

func newGeminiClient(ctx context.Context, config *Config, apiKey string) (*geminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiClient{client: client, config: config}, nil
}

func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(generationTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	// Models sometimes fence the payload even with a JSON MIME type set.
	return stripFences(text), nil
}

func (c *geminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

func (c *geminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// stripFences removes a surrounding markdown code fence, tolerating a
// language tag on the opening line.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
