package suggest

import (
	"fmt"
	"time"

	"github.com/korjavin/pantrychef/pkg/inventory"
	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/models"
	"github.com/korjavin/pantrychef/pkg/rank"
	"github.com/korjavin/pantrychef/pkg/storage"
)

// RecipeSearcher finds candidate recipes for an ingredient list.
// Satisfied by recipes.Client; tests provide a stub.
type RecipeSearcher interface {
	SearchByIngredients(ingredients []string, count int) ([]models.CandidateRecipe, error)
}

// Service produces ranked recipe suggestions for a chat's pantry
type Service struct {
	store            *storage.Store
	inventoryService *inventory.Service
	searcher         RecipeSearcher
	logger           *logger.Logger
	expiryWindowDays int
	maxIngredients   int
}

// New creates a new suggestion service
func New(store *storage.Store, inventoryService *inventory.Service, searcher RecipeSearcher, expiryWindowDays, maxIngredients int) *Service {
	if expiryWindowDays <= 0 {
		expiryWindowDays = rank.DefaultExpiryWindowDays
	}
	if maxIngredients <= 0 {
		maxIngredients = rank.DefaultMaxIngredients
	}
	return &Service{
		store:            store,
		inventoryService: inventoryService,
		searcher:         searcher,
		logger:           logger.New("suggest"),
		expiryWindowDays: expiryWindowDays,
		maxIngredients:   maxIngredients,
	}
}

func suggestionKey(chatID int64) string {
	return fmt.Sprintf("suggestion:%d", chatID)
}

// Suggest builds a prioritized ingredient list from the pantry, asks the
// recipe searcher for candidates, and ranks them with expiring items
// weighted in. The ranked list is persisted so the chat can cook one of
// the suggestions by index.
func (s *Service) Suggest(chatID int64, count int) ([]models.RankedRecipe, error) {
	snapshot, err := s.inventoryService.Snapshot(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pantry: %w", err)
	}

	if len(snapshot) == 0 {
		return nil, nil
	}

	now := time.Now()
	ingredients := rank.PrioritizeIngredients(snapshot, now, s.expiryWindowDays, s.maxIngredients)
	expiring := rank.ExpiringIngredients(snapshot, now, s.expiryWindowDays)
	s.logger.Info("Searching recipes for chat %d: %d ingredients, %d expiring",
		chatID, len(ingredients), len(expiring))

	candidates, err := s.searcher.SearchByIngredients(ingredients, count)
	if err != nil {
		return nil, fmt.Errorf("recipe search failed: %w", err)
	}

	ranked := rank.Suggestions(candidates, expiring)

	set := models.SuggestionSet{
		ChatID:      chatID,
		Recipes:     ranked,
		GeneratedAt: now,
	}
	if err := s.store.Set(suggestionKey(chatID), set); err != nil {
		s.logger.Error("Failed to save suggestions for chat %d: %v", chatID, err)
	}

	return ranked, nil
}

// LastSuggestions returns the most recently generated suggestions for a
// chat
func (s *Service) LastSuggestions(chatID int64) (*models.SuggestionSet, error) {
	var set models.SuggestionSet
	if err := s.store.Get(suggestionKey(chatID), &set); err != nil {
		return nil, fmt.Errorf("no suggestions for chat %d: %w", chatID, err)
	}
	return &set, nil
}
