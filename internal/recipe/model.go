package recipe

import (
	"time"

	"bringer/internal/catalog"
)

// Recipe owns an ordered ingredient list. ExternalLink points at the page a
// recipe was imported from, when it came in via URL ingestion.
type Recipe struct {
	ID           string        `json:"id" db:"id"`
	WorkspaceID  string        `json:"workspace_id" db:"workspace_id"`
	Title        string        `json:"title" db:"title"`
	Instructions string        `json:"instructions" db:"instructions"`
	ImageURL     string        `json:"image_url" db:"image_url"`
	ExternalLink string        `json:"external_link" db:"external_link"`
	CreatedBy    string        `json:"created_by" db:"created_by"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
	Ingredients  []*Ingredient `json:"ingredients,omitempty" db:"-"`
}

// Ingredient references a catalog item with a free-text quantity note.
// Position is the 0-based display order within the recipe.
type Ingredient struct {
	ID       string        `json:"id" db:"id"`
	RecipeID string        `json:"recipe_id" db:"recipe_id"`
	ItemID   string        `json:"item_id" db:"item_id"`
	Note     string        `json:"note" db:"note"`
	Position int           `json:"position" db:"position"`
	Item     *catalog.Item `json:"item,omitempty" db:"-"`
}

// NewIngredient is the input for saving a recipe's ingredient list.
// Positions are assigned from slice order, 0..n-1.
type NewIngredient struct {
	ItemID string `json:"item_id"`
	Note   string `json:"note"`
}

// Parsed is the transient result of AI ingestion, before the user confirms
// and the ingredient names are resolved to catalog items.
type Parsed struct {
	Title        string             `json:"title"`
	Instructions string             `json:"instructions"`
	Ingredients  []ParsedIngredient `json:"ingredients"`
	ImageURL     string             `json:"image_url"`
	ExternalLink string             `json:"external_link"`
}

// ParsedIngredient is a plain extracted name plus quantity note.
type ParsedIngredient struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// RecipeInput is the payload for creating or updating a recipe. Saves are
// full rewrites: the ingredient list replaces whatever was stored.
type RecipeInput struct {
	Title        string          `json:"title"`
	Instructions string          `json:"instructions"`
	ImageURL     string          `json:"image_url"`
	ExternalLink string          `json:"external_link"`
	Ingredients  []NewIngredient `json:"ingredients"`
}
