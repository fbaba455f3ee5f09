package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/models"
	"github.com/sashabaranov/go-openai"
)

// Client is the recipe data collaborator. It answers three questions the
// engine cannot: which recipes fit a set of ingredients, what exactly a
// recipe needs, and what a free-form pantry description contains.
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new recipe client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger.New("recipes"),
	}
}

// SearchByIngredients returns candidate recipes for the given ingredient
// list, each annotated with which of the ingredients it uses, how many it
// misses, and a popularity estimate.
func (c *Client) SearchByIngredients(ingredients []string, count int) ([]models.CandidateRecipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a recipe search engine. Based on the available ingredients, suggest %d recipes.

Available ingredients: %s

Return the recipes in the following JSON format:
[
  {
    "title": "Recipe title",
    "used_ingredients": [{"name": "ingredient from the available list"}, ...],
    "missed_ingredients": [{"name": "ingredient that must be bought"}, ...],
    "likes": 123
  },
  ...
]
"likes" is an integer popularity estimate between 0 and 1000.
Only return the JSON array, no other text.
`, count, strings.Join(ingredients, ", "))

	c.logger.Info("Searching recipes for %d ingredients", len(ingredients))
	c.logger.Debug("Prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a recipe search engine that suggests recipes based on available ingredients.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.5,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("Response (first 100 chars): %s", truncateString(content, 100))

	var candidates []models.CandidateRecipe
	if err := json.Unmarshal([]byte(content), &candidates); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse recipe search response: %w", err)
	}

	// The model is unreliable about counts, so derive them from the lists
	// and assign stable IDs.
	for i := range candidates {
		candidates[i].ID = i + 1
		candidates[i].UsedIngredientCount = len(candidates[i].UsedIngredients)
		candidates[i].MissedIngredientCount = len(candidates[i].MissedIngredients)
		if candidates[i].Likes < 0 {
			candidates[i].Likes = 0
		}
	}

	c.logger.Info("Found %d candidate recipes", len(candidates))
	return candidates, nil
}

// RecipeDetails returns the full ingredient list for a recipe, with
// numeric amounts and unit strings the deduction calculator understands.
func (c *Client) RecipeDetails(title string) (*models.RecipeDetails, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a cooking expert. Provide the ingredient list for the recipe "%s".
Return the information in the following JSON format:
{
  "title": "Full recipe title",
  "servings": 4,
  "ingredients": [
    {"id": 1, "name": "ingredient name", "amount": 500, "unit": "g", "original": "500g of ingredient, diced"},
    ...
  ],
  "instructions": ["step1", "step2", ...]
}
Use metric units (g, kg, ml, l) or common kitchen units (cup, tbsp, tsp, piece).
"amount" must be a number. Only return the JSON, no other text.
`, title)

	c.logger.Info("Requesting recipe details for %q", title)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a cooking expert who provides accurate ingredient lists for recipes.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("Response (first 100 chars): %s", truncateString(content, 100))

	var details models.RecipeDetails
	if err := json.Unmarshal([]byte(content), &details); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse recipe details response: %w", err)
	}

	if details.Servings <= 0 {
		details.Servings = 1
	}
	for i := range details.Ingredients {
		if details.Ingredients[i].ID == 0 {
			details.Ingredients[i].ID = i + 1
		}
	}

	c.logger.Info("Got %d ingredients for %q", len(details.Ingredients), details.Title)
	return &details, nil
}

// ParseInventoryFromText extracts pantry items from free-form text
func (c *Client) ParseInventoryFromText(text string) ([]models.InventoryDraft, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a pantry assistant. Extract all food items from the following text.
Return only a JSON array in this format, no other text:
[
  {"name": "tomato", "quantity": 500, "unit": "g", "category": "vegetables", "shelf_life_days": 7},
  ...
]
"quantity" must be a number; use 1 with unit "piece" when no amount is given.
"shelf_life_days" is your estimate of how long the item keeps.

Text: %s
`, text)

	c.logger.Info("Parsing pantry items from text")
	c.logger.Debug("Text to parse (first 100 chars): %s", truncateString(text, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("Response (first 100 chars): %s", truncateString(content, 100))

	var drafts []models.InventoryDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse pantry items response: %w", err)
	}

	return drafts, nil
}

// Helper functions

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// cleanJSONResponse strips the markdown code fences the model sometimes
// wraps around JSON
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if firstLineEnd := strings.Index(s, "\n"); firstLineEnd != -1 {
			s = s[firstLineEnd+1:]
		}
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}
		s = strings.TrimSpace(s)
	}

	return s
}
