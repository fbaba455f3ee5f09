package models

import (
	"time"
)

// Pantry represents the inventory tracked for a chat
type Pantry struct {
	ID          string                   `json:"id"`
	ChatID      int64                    `json:"chat_id"`
	Items       map[string]InventoryItem `json:"items"` // ItemID -> InventoryItem
	LastUpdated time.Time                `json:"last_updated"`
}

// InventoryItem represents a single item in a pantry
type InventoryItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category,omitempty"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	BestBeforeDate time.Time `json:"best_before_date"`
	AddedAt        time.Time `json:"added_at"`
}

// InventoryDraft is an item parsed from free-form text before it is
// added to a pantry
type InventoryDraft struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category,omitempty"`
	ShelfLifeDays int     `json:"shelf_life_days,omitempty"`
}

// RecipeIngredient represents one ingredient required by a recipe
type RecipeIngredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original,omitempty"`
}

// MatchedIngredient is a RecipeIngredient linked to the inventory item it
// was matched against. For unmatched ingredients Available is false and
// the optional fields stay unset.
type MatchedIngredient struct {
	RecipeIngredient
	InventoryItemID string  `json:"inventory_item_id,omitempty"`
	Available       bool    `json:"available"`
	MatchConfidence float64 `json:"match_confidence,omitempty"`
}

// QuantityDeduction is the result of computing how much of an inventory
// item a recipe consumes
type QuantityDeduction struct {
	DeductAmount      float64 `json:"deduct_amount"`
	Sufficient        bool    `json:"sufficient"`
	RemainingQuantity float64 `json:"remaining_quantity"`
}

// IngredientRef is a name-only reference to an ingredient inside a
// candidate recipe
type IngredientRef struct {
	Name string `json:"name"`
}

// CandidateRecipe is a recipe returned by the recipe search collaborator,
// already annotated with how many of the searched ingredients it uses
type CandidateRecipe struct {
	ID                    int             `json:"id"`
	Title                 string          `json:"title"`
	UsedIngredients       []IngredientRef `json:"used_ingredients"`
	MissedIngredients     []IngredientRef `json:"missed_ingredients,omitempty"`
	UsedIngredientCount   int             `json:"used_ingredient_count"`
	MissedIngredientCount int             `json:"missed_ingredient_count"`
	Likes                 int             `json:"likes"`
}

// RankedRecipe is a CandidateRecipe with its suggestion score
type RankedRecipe struct {
	CandidateRecipe
	Score                   float64 `json:"score"`
	UsesExpiringIngredients bool    `json:"uses_expiring_ingredients"`
}

// RecipeDetails represents the full ingredient list for a recipe
type RecipeDetails struct {
	Title        string             `json:"title"`
	Servings     int                `json:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions,omitempty"`
}

// CookRecord represents one cooked recipe for a chat
type CookRecord struct {
	ID                string    `json:"id"`
	ChatID            int64     `json:"chat_id"`
	Title             string    `json:"title"`
	Servings          int       `json:"servings"`
	CookedAt          time.Time `json:"cooked_at"`
	ConsumedItems     []string  `json:"consumed_items,omitempty"` // inventory item IDs
	MissingCount      int       `json:"missing_count"`
	InsufficientCount int       `json:"insufficient_count"`
	UsedExpiring      bool      `json:"used_expiring"`
}

// RecipeStat represents per-recipe cooking statistics
type RecipeStat struct {
	Title        string    `json:"title"`
	CookCount    int       `json:"cook_count"`
	LastCookedAt time.Time `json:"last_cooked_at"`
}

// Statistics represents the cooking statistics for a chat
type Statistics struct {
	ChatID            int64                 `json:"chat_id"`
	RecipesCooked     int                   `json:"recipes_cooked"`
	ItemsConsumed     int                   `json:"items_consumed"`
	MissingEncounters int                   `json:"missing_encounters"`
	InsufficientCount int                   `json:"insufficient_count"`
	ExpiringUsed      int                   `json:"expiring_used"`
	RecipeStats       map[string]RecipeStat `json:"recipe_stats"` // Title -> RecipeStat
}

// SuggestionSet represents the last ranked suggestions shown to a chat
type SuggestionSet struct {
	ChatID      int64          `json:"chat_id"`
	Recipes     []RankedRecipe `json:"recipes"`
	GeneratedAt time.Time      `json:"generated_at"`
}
