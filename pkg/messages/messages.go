// Package messages renders computed results as Telegram text. Formatting
// is deterministic: quantities and scores must appear exactly as the
// engine calculated them.
package messages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/korjavin/pantrychef/pkg/kitchen"
	"github.com/korjavin/pantrychef/pkg/models"
)

// Welcome returns the /start greeting
func Welcome() string {
	return "👋 Welcome to PantryChef! I track what's in your pantry, suggest recipes that use it up before it expires, and subtract what you cook.\n\n" +
		"Commands:\n" +
		"/pantry — show what you have\n" +
		"/sync_pantry — rebuild your pantry from a text list\n" +
		"/suggest — recipe ideas for your pantry\n" +
		"/cook <title or number> — cook a recipe and deduct ingredients\n" +
		"/history — what you cooked recently\n" +
		"/stats — your cooking statistics"
}

// EmptyPantry returns the message shown when a pantry has no items
func EmptyPantry() string {
	return "🧊 Your pantry is empty! Use /sync_pantry and send me a list of what you have."
}

// PantryContents renders the pantry snapshot
func PantryContents(items []models.InventoryItem, now time.Time) string {
	var b strings.Builder
	b.WriteString("🧊 Here's what's in your pantry:\n\n")
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(item.Name)
		if item.Quantity > 0 {
			b.WriteString(fmt.Sprintf(" — %s", formatQuantity(item.Quantity, item.Unit)))
		}
		if !item.BestBeforeDate.IsZero() {
			days := int(item.BestBeforeDate.Sub(now).Hours() / 24)
			switch {
			case days < 0:
				b.WriteString(" ⚠️ expired")
			case days <= 1:
				b.WriteString(" ⏰ use today")
			default:
				b.WriteString(fmt.Sprintf(" (best before in %d days)", days))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Suggestions renders the ranked recipe list
func Suggestions(recipes []models.RankedRecipe) string {
	if len(recipes) == 0 {
		return "😢 I couldn't find any recipes for your pantry. Try adding more items with /sync_pantry."
	}

	var b strings.Builder
	b.WriteString("🍽️ Here's what you could cook:\n\n")
	for i, recipe := range recipes {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, recipe.Title))
		b.WriteString(fmt.Sprintf(" — uses %d of your ingredients, %d to buy",
			recipe.UsedIngredientCount, recipe.MissedIngredientCount))
		if recipe.UsesExpiringIngredients {
			b.WriteString(" ⏰ rescues expiring items")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nCook one with /cook <number>.")
	return b.String()
}

// CookReport renders the outcome of a cook run
func CookReport(result *kitchen.CookResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👨‍🍳 Cooked %s (%d servings).\n", result.Title, result.Servings))

	if len(result.Deductions) > 0 {
		b.WriteString("\nDeducted from your pantry:\n")
		for _, d := range result.Deductions {
			if d.Deduction.DeductAmount == 0 {
				b.WriteString(fmt.Sprintf("• %s: left untouched (can't convert %s to %s)\n",
					d.Item.Name, d.Ingredient.Unit, d.Item.Unit))
				continue
			}
			b.WriteString(fmt.Sprintf("• %s: -%s, %s left",
				d.Item.Name,
				formatQuantity(d.Deduction.DeductAmount, d.Item.Unit),
				formatQuantity(d.Deduction.RemainingQuantity, d.Item.Unit)))
			if !d.Deduction.Sufficient {
				b.WriteString(" ⚠️ not enough, used all of it")
			}
			b.WriteString("\n")
		}
	}

	if len(result.Missing) > 0 {
		b.WriteString("\n🛒 Missing ingredients:\n")
		for _, missing := range result.Missing {
			b.WriteString("• " + missing.Name + "\n")
		}
	}

	return b.String()
}

// ExpiryReminder renders the daily expiring-items notification
func ExpiryReminder(names []string) string {
	var b strings.Builder
	b.WriteString("⏰ These items are close to their best-before date:\n\n")
	for _, name := range names {
		b.WriteString("• " + name + "\n")
	}
	b.WriteString("\nTry /suggest to use them up before they go to waste!")
	return b.String()
}

// History renders recent cook records
func History(records []models.CookRecord) string {
	if len(records) == 0 {
		return "You haven't cooked anything yet. Try /suggest!"
	}

	var b strings.Builder
	b.WriteString("📖 Recently cooked:\n\n")
	for _, record := range records {
		b.WriteString(fmt.Sprintf("• %s — %s", record.Title, record.CookedAt.Format("Jan 2")))
		if record.UsedExpiring {
			b.WriteString(" ♻️")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Statistics renders a chat's cooking statistics
func Statistics(stats *models.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 Your kitchen stats:\n\n")
	b.WriteString(fmt.Sprintf("Recipes cooked: %d\n", stats.RecipesCooked))
	b.WriteString(fmt.Sprintf("Pantry items consumed: %d\n", stats.ItemsConsumed))
	b.WriteString(fmt.Sprintf("Cooks that rescued expiring items: %d\n", stats.ExpiringUsed))
	b.WriteString(fmt.Sprintf("Missing ingredients encountered: %d\n", stats.MissingEncounters))
	b.WriteString(fmt.Sprintf("Times you ran short: %d\n", stats.InsufficientCount))
	return b.String()
}

// Error returns a generic failure message for a given action
func Error(action string) string {
	return "😢 Sorry, I couldn't " + action + ". Please try again later."
}

// formatQuantity renders a quantity without trailing zeros
func formatQuantity(quantity float64, unit string) string {
	value := strconv.FormatFloat(quantity, 'f', -1, 64)
	if unit == "" {
		return value
	}
	return value + " " + unit
}
