package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const ocrPrompt = "Extract all text from this recipe image. Include the recipe title, all ingredients with quantities, and all cooking instructions. Be thorough and accurate."

// Client talks to an OpenRouter-compatible chat-completions API with a
// vision-capable model. It is used to transcribe recipe photos.
type Client struct {
	client *resty.Client
	model  string
}

// NewClient creates a new OpenRouter client.
func NewClient(baseURL, apiKey, model string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey)).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client, model: model}
}

// ExtractText sends a base64-encoded image to the vision model and returns
// its transcription. imageData may be raw base64 or a full data URL.
func (c *Client) ExtractText(ctx context.Context, imageData string) (string, error) {
	url := imageData
	if !strings.HasPrefix(imageData, "data:image/") {
		url = fmt.Sprintf("data:image/jpeg;base64,%s", imageData)
	}

	req := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": ocrPrompt},
					{"type": "image_url", "image_url": map[string]string{"url": url}},
				},
			},
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
