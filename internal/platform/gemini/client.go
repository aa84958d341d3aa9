package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"bringer/internal/recipe"
)

const parserPrompt = `You are a recipe parser. Extract recipe information from the provided text.
Be precise and extract all ingredients with their quantities.
For instructions, keep them clear and step-by-step.
If no clear recipe is found, do your best to extract any cooking-related information.

Text:
`

// Client is a client for the Gemini API, configured for schema-constrained
// recipe extraction.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini client. modelName selects the generative
// model, e.g. "gemini-1.5-flash".
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":        {Type: genai.TypeString, Description: "The recipe title"},
			"instructions": {Type: genai.TypeString, Description: "Step-by-step cooking instructions"},
			"ingredients": {
				Type:        genai.TypeArray,
				Description: "List of ingredients",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString, Description: "Ingredient name (e.g. \"flour\", \"eggs\")"},
						"note": {Type: genai.TypeString, Description: "Quantity and preparation notes (e.g. \"2 cups\", \"3 large, beaten\")"},
					},
					Required: []string{"name", "note"},
				},
			},
			"image_url": {Type: genai.TypeString, Nullable: true, Description: "URL of a recipe image found in the content, or null"},
		},
		Required: []string{"title", "instructions", "ingredients", "image_url"},
	}

	return &Client{client: client, model: model}, nil
}

// ParseRecipe sends working text to the model and decodes the structured
// recipe it returns. The caller is responsible for setting ExternalLink.
func (c *Client) ParseRecipe(ctx context.Context, text string) (*recipe.Parsed, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(parserPrompt+text))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	jsonText, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	// Constrained output should be bare JSON, but guard against markdown
	// wrapping the way free-form responses sometimes come back.
	raw := string(jsonText)
	startIndex := strings.Index(raw, "{")
	endIndex := strings.LastIndex(raw, "}")
	if startIndex == -1 || endIndex == -1 || startIndex > endIndex {
		return nil, fmt.Errorf("could not find JSON object in response: %s", raw)
	}

	var parsed struct {
		Title        string                    `json:"title"`
		Instructions string                    `json:"instructions"`
		Ingredients  []recipe.ParsedIngredient `json:"ingredients"`
		ImageURL     *string                   `json:"image_url"`
	}
	if err := json.Unmarshal([]byte(raw[startIndex:endIndex+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	if parsed.Title == "" {
		return nil, fmt.Errorf("model returned a recipe without a title")
	}

	result := &recipe.Parsed{
		Title:        parsed.Title,
		Instructions: parsed.Instructions,
		Ingredients:  parsed.Ingredients,
	}
	if parsed.ImageURL != nil {
		result.ImageURL = *parsed.ImageURL
	}
	return result, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	return c.client.Close()
}
