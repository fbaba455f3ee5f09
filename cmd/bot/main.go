package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/pantrychef/pkg/config"
	"github.com/korjavin/pantrychef/pkg/inventory"
	"github.com/korjavin/pantrychef/pkg/kitchen"
	"github.com/korjavin/pantrychef/pkg/logger"
	"github.com/korjavin/pantrychef/pkg/messages"
	"github.com/korjavin/pantrychef/pkg/recipes"
	"github.com/korjavin/pantrychef/pkg/scheduler"
	"github.com/korjavin/pantrychef/pkg/state"
	"github.com/korjavin/pantrychef/pkg/stats"
	"github.com/korjavin/pantrychef/pkg/storage"
	"github.com/korjavin/pantrychef/pkg/suggest"
	"github.com/korjavin/pantrychef/pkg/telegram"
)

func main() {
	log := logger.Global
	log.Info("Starting PantryChef bot...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	store.StartGCRoutine(10 * time.Minute)

	recipeClient := recipes.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	inventoryService := inventory.New(store)
	statsService := stats.New(store)
	kitchenService := kitchen.New(store, inventoryService, recipeClient, statsService, cfg.MatchThreshold, cfg.ExpiryWindowDays)
	suggestService := suggest.New(store, inventoryService, recipeClient, cfg.ExpiryWindowDays, cfg.MaxSearchIngredients)
	stateManager := state.New()

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	reminderService := scheduler.New(store, bot, inventoryService, cfg.ReminderHour, cfg.ExpiryWindowDays)
	reminderService.Start()

	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messages.Welcome())
		},
		"pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			items, err := inventoryService.Snapshot(chatID)
			if err != nil {
				log.Error("Failed to read pantry: %v", err)
				bot.SendMessage(chatID, messages.Error("read your pantry"))
				return
			}

			if len(items) == 0 {
				bot.SendMessage(chatID, messages.EmptyPantry())
				return
			}

			bot.SendMessage(chatID, messages.PantryContents(items, time.Now()))
		},
		"sync_pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			if err := inventoryService.ResetPantry(chatID); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				bot.SendMessage(chatID, messages.Error("reset your pantry"))
				return
			}

			stateManager.SetState(chatID, state.StateAddingItems)
			bot.SendMessage(chatID, "🧹 Pantry reset! Now send me what you have, with amounts if you know them (e.g. \"500g pasta, 2 onions, a liter of milk\").")
		},
		"suggest": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			ranked, err := suggestService.Suggest(chatID, cfg.SuggestionCount)
			if err != nil {
				log.Error("Failed to suggest recipes: %v", err)
				bot.SendMessage(chatID, messages.Error("find recipe suggestions"))
				return
			}

			if ranked == nil {
				bot.SendMessage(chatID, messages.EmptyPantry())
				return
			}

			bot.SendMessage(chatID, messages.Suggestions(ranked))
		},
		"cook": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			args := strings.TrimSpace(message.CommandArguments())
			if args == "" {
				bot.SendMessage(chatID, "Tell me what to cook: /cook <number from /suggest> or /cook <recipe title>.")
				return
			}

			title := args
			if index, err := strconv.Atoi(args); err == nil {
				set, err := suggestService.LastSuggestions(chatID)
				if err != nil || index < 1 || index > len(set.Recipes) {
					bot.SendMessage(chatID, "I don't have a suggestion with that number. Run /suggest first.")
					return
				}
				title = set.Recipes[index-1].Title
			}

			bot.SendMessage(chatID, fmt.Sprintf("🔪 Cooking %s, checking your pantry...", title))

			result, err := kitchenService.Cook(chatID, title, 0)
			if err != nil {
				log.Error("Failed to cook %q: %v", title, err)
				bot.SendMessage(chatID, messages.Error("cook that recipe"))
				return
			}

			bot.SendMessage(chatID, messages.CookReport(result))
		},
		"history": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			records, err := kitchenService.History(chatID)
			if err != nil {
				log.Error("Failed to read history: %v", err)
				bot.SendMessage(chatID, messages.Error("read your history"))
				return
			}

			if len(records) > 10 {
				records = records[:10]
			}
			bot.SendMessage(chatID, messages.History(records))
		},
		"stats": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID

			chatStats, err := statsService.GetStatistics(chatID)
			if err != nil {
				log.Error("Failed to read statistics: %v", err)
				bot.SendMessage(chatID, messages.Error("read your statistics"))
				return
			}

			bot.SendMessage(chatID, messages.Statistics(chatStats))
		},
	}

	callbackHandlers := map[string]telegram.CallbackHandler{
		"done_adding": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID

			stateManager.ClearState(chatID)
			bot.AnswerCallbackQuery(callback.ID, "Pantry updated!")
			bot.EditMessage(chatID, callback.Message.MessageID,
				"✅ Pantry update complete! Use /pantry to review it or /suggest for recipe ideas.")
		},
		"add_more": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID

			bot.AnswerCallbackQuery(callback.ID, "Send more items!")
			bot.EditMessage(chatID, callback.Message.MessageID,
				"Send more items and I'll add them to your pantry.")
		},
	}

	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
			return
		}

		chatID := update.Message.Chat.ID
		if stateManager.GetState(chatID) != state.StateAddingItems {
			return
		}

		drafts, err := recipeClient.ParseInventoryFromText(update.Message.Text)
		if err != nil {
			log.Error("Failed to parse pantry items: %v", err)
			bot.SendMessage(chatID, "😢 I couldn't understand that list. Please try again with a clearer one.")
			return
		}

		if len(drafts) == 0 {
			bot.SendMessage(chatID, "I couldn't find any food items in your message. Please try again.")
			return
		}

		added, err := inventoryService.ImportDrafts(chatID, drafts)
		if err != nil {
			log.Error("Failed to import pantry items: %v", err)
			bot.SendMessage(chatID, messages.Error("save your pantry items"))
			return
		}

		names := make([]string, len(drafts))
		for i, draft := range drafts {
			names[i] = draft.Name
		}
		bot.SendMessage(chatID, fmt.Sprintf("✅ Added %d items to your pantry: %s", added, strings.Join(names, ", ")))

		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Done", "done_adding"),
				tgbotapi.NewInlineKeyboardButtonData("Add more", "add_more"),
			),
		)
		bot.SendMessageWithKeyboard(chatID, "Anything else in your pantry?", keyboard)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		reminderService.Stop()
		store.Close()
		os.Exit(0)
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}
