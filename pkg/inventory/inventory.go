package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/models"
	"github.com/korjavin/pantrychef/pkg/storage"
)

// DefaultShelfLifeDays is assumed when an imported item carries no
// shelf-life estimate
const DefaultShelfLifeDays = 7

// Service provides pantry management functionality. It owns all writes to
// pantry documents; the matching and deduction engines only ever see
// read-only snapshots.
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new inventory service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("inventory"),
	}
}

func pantryKey(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

// GetPantry retrieves the pantry for a chat, creating an empty one if it
// does not exist yet
func (s *Service) GetPantry(chatID int64) (*models.Pantry, error) {
	key := pantryKey(chatID)

	var pantry models.Pantry
	err := s.store.Get(key, &pantry)
	if err != nil {
		pantry = models.Pantry{
			ID:          key,
			ChatID:      chatID,
			Items:       make(map[string]models.InventoryItem),
			LastUpdated: time.Now(),
		}

		if err := s.store.Set(key, pantry); err != nil {
			return nil, fmt.Errorf("failed to create pantry: %w", err)
		}
	}

	if pantry.Items == nil {
		pantry.Items = make(map[string]models.InventoryItem)
	}

	return &pantry, nil
}

// AddItem adds an item to the pantry and returns it with its generated ID
func (s *Service) AddItem(chatID int64, name, category string, quantity float64, unit string, bestBefore time.Time) (*models.InventoryItem, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		ID:             fmt.Sprintf("item:%d", time.Now().UnixNano()),
		Name:           name,
		Category:       category,
		Quantity:       quantity,
		Unit:           unit,
		BestBeforeDate: bestBefore,
		AddedAt:        time.Now(),
	}

	pantry.Items[item.ID] = item
	pantry.LastUpdated = time.Now()

	if err := s.store.Set(pantry.ID, pantry); err != nil {
		return nil, fmt.Errorf("failed to save pantry: %w", err)
	}

	return &item, nil
}

// ImportDrafts adds parsed items in bulk, computing best-before dates
// from their shelf-life estimates
func (s *Service) ImportDrafts(chatID int64, drafts []models.InventoryDraft) (int, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i, draft := range drafts {
		days := draft.ShelfLifeDays
		if days <= 0 {
			days = DefaultShelfLifeDays
		}
		quantity := draft.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		item := models.InventoryItem{
			ID:             fmt.Sprintf("item:%d-%d", now.UnixNano(), i),
			Name:           draft.Name,
			Category:       draft.Category,
			Quantity:       quantity,
			Unit:           draft.Unit,
			BestBeforeDate: now.AddDate(0, 0, days),
			AddedAt:        now,
		}
		pantry.Items[item.ID] = item
	}

	pantry.LastUpdated = now
	if err := s.store.Set(pantry.ID, pantry); err != nil {
		return 0, fmt.Errorf("failed to save pantry: %w", err)
	}

	return len(drafts), nil
}

// RemoveItem removes an item from the pantry
func (s *Service) RemoveItem(chatID int64, itemID string) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	delete(pantry.Items, itemID)
	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// Snapshot returns the pantry contents as a name-sorted slice. The slice
// is a copy; mutating it does not touch the stored pantry.
func (s *Service) Snapshot(chatID int64) ([]models.InventoryItem, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(pantry.Items))
	for _, item := range pantry.Items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})

	return items, nil
}

// CommitDeduction persists a computed deduction: the item's quantity
// becomes the remaining quantity, and items deducted to zero are removed.
// This is the only place a deduction result is written back.
func (s *Service) CommitDeduction(chatID int64, itemID string, deduction models.QuantityDeduction) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	item, ok := pantry.Items[itemID]
	if !ok {
		return fmt.Errorf("item %s not found in pantry %d", itemID, chatID)
	}

	if deduction.RemainingQuantity <= 0 {
		s.logger.Info("Item %s (%s) used up, removing from pantry %d", itemID, item.Name, chatID)
		delete(pantry.Items, itemID)
	} else {
		item.Quantity = deduction.RemainingQuantity
		pantry.Items[itemID] = item
	}

	pantry.LastUpdated = time.Now()
	return s.store.Set(pantry.ID, pantry)
}

// ResetPantry replaces the pantry with an empty one
func (s *Service) ResetPantry(chatID int64) error {
	key := pantryKey(chatID)

	pantry := models.Pantry{
		ID:          key,
		ChatID:      chatID,
		Items:       make(map[string]models.InventoryItem),
		LastUpdated: time.Now(),
	}

	return s.store.Set(key, pantry)
}
