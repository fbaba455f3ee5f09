package rank

import (
	"reflect"
	"testing"
	"time"

	"github.com/korjavin/pantrychef/pkg/models"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func item(name string, bestBeforeDays int) models.InventoryItem {
	return models.InventoryItem{
		ID:             "item-" + name,
		Name:           name,
		BestBeforeDate: testNow.AddDate(0, 0, bestBeforeDays),
	}
}

func candidate(title string, used, missed, likes int, usedNames ...string) models.CandidateRecipe {
	refs := make([]models.IngredientRef, len(usedNames))
	for i, name := range usedNames {
		refs[i] = models.IngredientRef{Name: name}
	}
	return models.CandidateRecipe{
		Title:                 title,
		UsedIngredients:       refs,
		UsedIngredientCount:   used,
		MissedIngredientCount: missed,
		Likes:                 likes,
	}
}

func TestExpiringIngredients(t *testing.T) {
	inventory := []models.InventoryItem{
		item("Milk", 0),      // today
		item("Yogurt", 5),    // window edge
		item("Cheese", 6),    // beyond window
		item("Old Bread", -1), // already expired
		item("Spinach", 2),
	}

	got := ExpiringIngredients(inventory, testNow, DefaultExpiryWindowDays)
	want := []string{"milk", "yogurt", "spinach"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpiringIngredients() = %v, want %v", got, want)
	}
}

func TestExpiringIngredientsEmptyInventory(t *testing.T) {
	got := ExpiringIngredients(nil, testNow, DefaultExpiryWindowDays)
	if len(got) != 0 {
		t.Errorf("expected no expiring ingredients, got %v", got)
	}
}

func TestUsesExpiring(t *testing.T) {
	tests := []struct {
		name     string
		recipe   models.CandidateRecipe
		expiring []string
		want     bool
	}{
		{
			"exact name",
			candidate("Omelette", 2, 0, 0, "eggs", "butter"),
			[]string{"eggs"},
			true,
		},
		{
			"expiring contains used",
			candidate("Salad", 1, 0, 0, "tomato"),
			[]string{"cherry tomatoes"},
			true,
		},
		{
			"used contains expiring",
			candidate("Pasta", 1, 0, 0, "cherry tomatoes"),
			[]string{"tomato"},
			true,
		},
		{
			"case insensitive",
			candidate("Toast", 1, 0, 0, "Sourdough Bread"),
			[]string{"bread"},
			true,
		},
		{
			"no overlap",
			candidate("Curry", 2, 0, 0, "chicken", "rice"),
			[]string{"milk"},
			false,
		},
		{
			"no expiring names",
			candidate("Curry", 2, 0, 0, "chicken"),
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsesExpiring(tt.recipe, tt.expiring); got != tt.want {
				t.Errorf("UsesExpiring() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	recipe := candidate("Test", 3, 2, 10)

	if got := Score(recipe, false); got != 21 {
		t.Errorf("Score without bonus = %v, want 21", got)
	}
	if got := Score(recipe, true); got != 71 {
		t.Errorf("Score with bonus = %v, want 71", got)
	}
}

func TestScoreWithCustomWeights(t *testing.T) {
	recipe := candidate("Test", 2, 1, 0)
	w := Weights{Used: 1, Missed: 1, ExpiringBonus: 100, Likes: 0}

	if got := ScoreWith(recipe, true, w); got != 101 {
		t.Errorf("ScoreWith() = %v, want 101", got)
	}
}

func TestSuggestionsExpiringBonusDominates(t *testing.T) {
	// Identical recipes except one uses an expiring ingredient.
	plain := candidate("Plain", 4, 2, 50, "rice")
	rescuer := candidate("Rescuer", 4, 2, 50, "milk")

	ranked := Suggestions([]models.CandidateRecipe{plain, rescuer}, []string{"milk"})

	if ranked[0].Title != "Rescuer" {
		t.Fatalf("expected Rescuer first, got %s", ranked[0].Title)
	}
	if !ranked[0].UsesExpiringIngredients {
		t.Error("Rescuer not flagged as using expiring ingredients")
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("Rescuer score %v not strictly above %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestSuggestionsStableOnTies(t *testing.T) {
	first := candidate("First", 2, 1, 0)
	second := candidate("Second", 2, 1, 0)
	third := candidate("Third", 2, 1, 0)

	ranked := Suggestions([]models.CandidateRecipe{first, second, third}, nil)

	want := []string{"First", "Second", "Third"}
	for i, r := range ranked {
		if r.Title != want[i] {
			t.Errorf("ranked[%d] = %s, want %s", i, r.Title, want[i])
		}
	}
}

func TestSuggestionsSortedDescending(t *testing.T) {
	low := candidate("Low", 1, 3, 0)
	high := candidate("High", 5, 0, 100)
	mid := candidate("Mid", 3, 1, 0)

	ranked := Suggestions([]models.CandidateRecipe{low, high, mid}, nil)

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("ranked[%d].Score %v < ranked[%d].Score %v",
				i-1, ranked[i-1].Score, i, ranked[i].Score)
		}
	}
	if ranked[0].Title != "High" {
		t.Errorf("ranked[0] = %s, want High", ranked[0].Title)
	}
}

func TestPrioritizeIngredients(t *testing.T) {
	inventory := []models.InventoryItem{
		item("Rice", 30),
		item("Milk", 1),
		item("Flour", 60),
		item("Spinach", 3),
	}

	got := PrioritizeIngredients(inventory, testNow, DefaultExpiryWindowDays, DefaultMaxIngredients)
	want := []string{"Milk", "Spinach", "Rice", "Flour"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrioritizeIngredients() = %v, want %v", got, want)
	}
}

func TestPrioritizeIngredientsTruncates(t *testing.T) {
	inventory := []models.InventoryItem{
		item("Milk", 1),
		item("Rice", 30),
		item("Flour", 60),
	}

	got := PrioritizeIngredients(inventory, testNow, DefaultExpiryWindowDays, 2)
	want := []string{"Milk", "Rice"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrioritizeIngredients() = %v, want %v", got, want)
	}
}
