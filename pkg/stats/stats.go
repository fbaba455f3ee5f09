package stats

import (
	"fmt"
	"time"

	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/models"
	"github.com/korjavin/pantrychef/pkg/storage"
)

// Service tracks per-chat cooking and waste statistics
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
	}
}

func statsKey(chatID int64) string {
	return fmt.Sprintf("stats:%d", chatID)
}

// GetStatistics retrieves the statistics for a chat, creating an empty
// record if none exists yet
func (s *Service) GetStatistics(chatID int64) (*models.Statistics, error) {
	var stats models.Statistics
	err := s.store.Get(statsKey(chatID), &stats)
	if err != nil {
		stats = models.Statistics{
			ChatID:      chatID,
			RecipeStats: make(map[string]models.RecipeStat),
		}

		if err := s.store.Set(statsKey(chatID), stats); err != nil {
			return nil, fmt.Errorf("failed to create statistics: %w", err)
		}
	}

	if stats.RecipeStats == nil {
		stats.RecipeStats = make(map[string]models.RecipeStat)
	}

	return &stats, nil
}

// RecordCook updates the statistics after a recipe has been cooked
func (s *Service) RecordCook(chatID int64, record models.CookRecord) error {
	stats, err := s.GetStatistics(chatID)
	if err != nil {
		return err
	}

	stats.RecipesCooked++
	stats.ItemsConsumed += len(record.ConsumedItems)
	stats.MissingEncounters += record.MissingCount
	stats.InsufficientCount += record.InsufficientCount
	if record.UsedExpiring {
		stats.ExpiringUsed++
	}

	recipeStat := stats.RecipeStats[record.Title]
	recipeStat.Title = record.Title
	recipeStat.CookCount++
	recipeStat.LastCookedAt = time.Now()
	stats.RecipeStats[record.Title] = recipeStat

	return s.store.Set(statsKey(chatID), stats)
}
