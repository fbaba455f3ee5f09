package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/korjavin/pantrychef/pkg/inventory"
	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/messages"
	"github.com/korjavin/pantrychef/pkg/rank"
	"github.com/korjavin/pantrychef/pkg/storage"
	"github.com/korjavin/pantrychef/pkg/telegram"
)

// Service sends a daily reminder to every chat whose pantry contains
// items close to their best-before date
type Service struct {
	store            *storage.Store
	bot              *telegram.Bot
	inventoryService *inventory.Service
	logger           *logger.Logger
	reminderHour     int
	expiryWindowDays int
	stopChan         chan struct{}
}

// New creates a new scheduler service
func New(store *storage.Store, bot *telegram.Bot, inventoryService *inventory.Service, reminderHour, expiryWindowDays int) *Service {
	if expiryWindowDays <= 0 {
		expiryWindowDays = rank.DefaultExpiryWindowDays
	}
	return &Service{
		store:            store,
		bot:              bot,
		inventoryService: inventoryService,
		logger:           logger.New("scheduler"),
		reminderHour:     reminderHour,
		expiryWindowDays: expiryWindowDays,
		stopChan:         make(chan struct{}),
	}
}

// Start starts the reminder loop
func (s *Service) Start() {
	s.logger.Info("Starting expiry reminder scheduler (hour %d)", s.reminderHour)
	go s.run()
}

// Stop stops the reminder loop
func (s *Service) Stop() {
	s.logger.Info("Stopping expiry reminder scheduler")
	close(s.stopChan)
}

func (s *Service) run() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			if now.Hour() != s.reminderHour || now.Minute() >= 5 {
				continue
			}
			s.notifyAll(now)
		case <-s.stopChan:
			return
		}
	}
}

// notifyAll checks every stored pantry and sends at most one reminder per
// chat per day
func (s *Service) notifyAll(now time.Time) {
	keys, err := s.store.List("pantry:")
	if err != nil {
		s.logger.Error("Failed to list pantries: %v", err)
		return
	}

	today := now.Format("2006-01-02")
	for _, key := range keys {
		chatID, err := strconv.ParseInt(strings.TrimPrefix(key, "pantry:"), 10, 64)
		if err != nil {
			s.logger.Error("Unexpected pantry key %s: %v", key, err)
			continue
		}

		markerKey := fmt.Sprintf("reminder:%d", chatID)
		var lastNotified string
		if err := s.store.Get(markerKey, &lastNotified); err == nil && lastNotified == today {
			continue
		}

		snapshot, err := s.inventoryService.Snapshot(chatID)
		if err != nil {
			s.logger.Error("Failed to read pantry for chat %d: %v", chatID, err)
			continue
		}

		expiring := rank.ExpiringIngredients(snapshot, now, s.expiryWindowDays)
		if len(expiring) == 0 {
			continue
		}

		s.logger.Info("Reminding chat %d about %d expiring items", chatID, len(expiring))
		if _, err := s.bot.SendMessage(chatID, messages.ExpiryReminder(expiring)); err != nil {
			s.logger.Error("Failed to send reminder to chat %d: %v", chatID, err)
			continue
		}

		if err := s.store.Set(markerKey, today); err != nil {
			s.logger.Error("Failed to save reminder marker for chat %d: %v", chatID, err)
		}
	}
}
