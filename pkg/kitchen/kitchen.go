package kitchen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/pantrychef/pkg/inventory"
	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/match"
	"github.com/korjavin/pantrychef/pkg/models"
	"github.com/korjavin/pantrychef/pkg/rank"
	"github.com/korjavin/pantrychef/pkg/stats"
	"github.com/korjavin/pantrychef/pkg/storage"
	"github.com/korjavin/pantrychef/pkg/units"
)

// RecipeSource supplies recipe ingredient lists. Satisfied by
// recipes.Client; tests provide a stub.
type RecipeSource interface {
	RecipeDetails(title string) (*models.RecipeDetails, error)
}

// IngredientDeduction links one matched ingredient to the deduction
// computed against its inventory item
type IngredientDeduction struct {
	Ingredient models.MatchedIngredient `json:"ingredient"`
	Item       models.InventoryItem     `json:"item"`
	Deduction  models.QuantityDeduction `json:"deduction"`
}

// CookResult is everything the bot needs to report about a cook run
type CookResult struct {
	Title      string                     `json:"title"`
	Servings   int                        `json:"servings"`
	Matched    []models.MatchedIngredient `json:"matched"`
	Missing    []models.MatchedIngredient `json:"missing"`
	Deductions []IngredientDeduction      `json:"deductions"`
	Record     models.CookRecord          `json:"record"`
}

// Service orchestrates the cook flow: recipe details, ingredient matching,
// quantity deduction, and the write-back of what was consumed.
type Service struct {
	store            *storage.Store
	inventoryService *inventory.Service
	recipeSource     RecipeSource
	statsService     *stats.Service
	logger           *logger.Logger
	matchThreshold   float64
	expiryWindowDays int
}

// New creates a new kitchen service
func New(store *storage.Store, inventoryService *inventory.Service, recipeSource RecipeSource, statsService *stats.Service, matchThreshold float64, expiryWindowDays int) *Service {
	if matchThreshold <= 0 {
		matchThreshold = match.DefaultThreshold
	}
	if expiryWindowDays <= 0 {
		expiryWindowDays = rank.DefaultExpiryWindowDays
	}
	return &Service{
		store:            store,
		inventoryService: inventoryService,
		recipeSource:     recipeSource,
		statsService:     statsService,
		logger:           logger.New("kitchen"),
		matchThreshold:   matchThreshold,
		expiryWindowDays: expiryWindowDays,
	}
}

// Cook looks up a recipe, matches its ingredients against the chat's
// pantry, deducts the consumed quantities, and records the cook. Missing
// ingredients and insufficient quantities are reported in the result, not
// treated as failures.
func (s *Service) Cook(chatID int64, title string, servings int) (*CookResult, error) {
	details, err := s.recipeSource.RecipeDetails(title)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe details: %w", err)
	}

	if servings <= 0 {
		servings = details.Servings
	}

	snapshot, err := s.inventoryService.Snapshot(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pantry: %w", err)
	}

	itemsByID := make(map[string]models.InventoryItem, len(snapshot))
	for _, item := range snapshot {
		itemsByID[item.ID] = item
	}
	expiring := rank.ExpiringIngredients(snapshot, time.Now(), s.expiryWindowDays)

	matched := match.IngredientsWithThreshold(details.Ingredients, snapshot, s.matchThreshold)
	s.logger.Info("Recipe %q: %d matched, %d missing for chat %d",
		details.Title, len(matched.Matched), len(matched.Missing), chatID)

	result := &CookResult{
		Title:    details.Title,
		Servings: servings,
		Matched:  matched.Matched,
		Missing:  matched.Missing,
	}

	record := models.CookRecord{
		ChatID:       chatID,
		Title:        details.Title,
		Servings:     servings,
		CookedAt:     time.Now(),
		MissingCount: len(matched.Missing),
	}

	for _, ingredient := range matched.Matched {
		item, ok := itemsByID[ingredient.InventoryItemID]
		if !ok {
			continue
		}

		deduction := units.CalculateDeduction(
			ingredient.Amount, ingredient.Unit,
			item.Quantity, item.Unit,
			servings, details.Servings,
		)

		if !deduction.Sufficient {
			record.InsufficientCount++
			if deduction.DeductAmount == 0 && deduction.RemainingQuantity == item.Quantity {
				s.logger.Warn("Cannot convert %v %s of %q into %s, skipping deduction",
					ingredient.Amount, ingredient.Unit, ingredient.Name, item.Unit)
			}
		}

		if deduction.DeductAmount > 0 {
			if err := s.inventoryService.CommitDeduction(chatID, item.ID, deduction); err != nil {
				return nil, fmt.Errorf("failed to commit deduction for %s: %w", item.ID, err)
			}
			record.ConsumedItems = append(record.ConsumedItems, item.ID)
			if isExpiring(item.Name, expiring) {
				record.UsedExpiring = true
			}
		}

		result.Deductions = append(result.Deductions, IngredientDeduction{
			Ingredient: ingredient,
			Item:       item,
			Deduction:  deduction,
		})
	}

	record.ID = fmt.Sprintf("cook:%d:%d", chatID, record.CookedAt.UnixNano())
	if err := s.store.Set(record.ID, record); err != nil {
		return nil, fmt.Errorf("failed to save cook record: %w", err)
	}
	result.Record = record

	if s.statsService != nil {
		if err := s.statsService.RecordCook(chatID, record); err != nil {
			s.logger.Error("Failed to update statistics: %v", err)
		}
	}

	return result, nil
}

// History returns the chat's cook records, most recent first
func (s *Service) History(chatID int64) ([]models.CookRecord, error) {
	keys, err := s.store.List(fmt.Sprintf("cook:%d:", chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to list cook records: %w", err)
	}

	records := make([]models.CookRecord, 0, len(keys))
	for _, key := range keys {
		var record models.CookRecord
		if err := s.store.Get(key, &record); err != nil {
			s.logger.Error("Failed to get cook record %s: %v", key, err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CookedAt.After(records[j].CookedAt)
	})

	return records, nil
}

func isExpiring(name string, expiring []string) bool {
	lowered := strings.ToLower(name)
	for _, e := range expiring {
		if e == lowered {
			return true
		}
	}
	return false
}
