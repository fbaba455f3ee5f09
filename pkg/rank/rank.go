// Package rank scores candidate recipes against a pantry so that recipes
// using soon-to-expire ingredients surface first. Scoring is a fixed
// policy, not a learned model: the weights below are deliberate choices
// favoring waste reduction over popularity, exposed as constants so the
// ranking stays auditable.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/korjavin/pantrychef/pkg/models"
)

const (
	// UsedIngredientWeight rewards every searched ingredient a recipe uses
	UsedIngredientWeight = 10.0
	// MissedIngredientPenalty punishes every ingredient that must be bought
	MissedIngredientPenalty = 5.0
	// ExpiringBonus dominates the per-ingredient terms for typical recipes,
	// pushing recipes that rescue expiring items to the top
	ExpiringBonus = 50.0
	// LikesWeight keeps popularity a minor tie-breaker
	LikesWeight = 0.1
)

// DefaultExpiryWindowDays is how far ahead an item counts as expiring.
// Tunable, not a hard invariant.
const DefaultExpiryWindowDays = 5

// DefaultMaxIngredients bounds the ingredient list handed to the recipe
// search collaborator
const DefaultMaxIngredients = 20

// Weights bundles the scoring policy for callers that want to tune it
type Weights struct {
	Used          float64
	Missed        float64
	ExpiringBonus float64
	Likes         float64
}

// DefaultWeights returns the standard scoring policy
func DefaultWeights() Weights {
	return Weights{
		Used:          UsedIngredientWeight,
		Missed:        MissedIngredientPenalty,
		ExpiringBonus: ExpiringBonus,
		Likes:         LikesWeight,
	}
}

// ExpiringIngredients returns the lowercased names of items whose
// best-before date falls between today and windowDays from now, inclusive.
// Already-expired items are excluded.
func ExpiringIngredients(inventory []models.InventoryItem, now time.Time, windowDays int) []string {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}

	today := truncateToDay(now)
	cutoff := today.AddDate(0, 0, windowDays)

	names := make([]string, 0)
	for _, item := range inventory {
		best := truncateToDay(item.BestBeforeDate)
		if best.Before(today) || best.After(cutoff) {
			continue
		}
		names = append(names, strings.ToLower(item.Name))
	}

	return names
}

// UsesExpiring reports whether any of the recipe's used ingredients
// overlaps an expiring name. The check is a case-insensitive substring
// match in either direction, deliberately permissive so "tomato" still
// flags "cherry tomatoes".
func UsesExpiring(recipe models.CandidateRecipe, expiringNames []string) bool {
	for _, used := range recipe.UsedIngredients {
		name := strings.ToLower(used.Name)
		if name == "" {
			continue
		}
		for _, expiring := range expiringNames {
			if expiring == "" {
				continue
			}
			if strings.Contains(name, expiring) || strings.Contains(expiring, name) {
				return true
			}
		}
	}
	return false
}

// Score computes a recipe's suggestion score with the default weights
func Score(recipe models.CandidateRecipe, usesExpiring bool) float64 {
	return ScoreWith(recipe, usesExpiring, DefaultWeights())
}

// ScoreWith computes a recipe's suggestion score with an explicit policy
func ScoreWith(recipe models.CandidateRecipe, usesExpiring bool, w Weights) float64 {
	score := float64(recipe.UsedIngredientCount)*w.Used -
		float64(recipe.MissedIngredientCount)*w.Missed +
		float64(recipe.Likes)*w.Likes
	if usesExpiring {
		score += w.ExpiringBonus
	}
	return score
}

// Suggestions annotates every candidate with its score and expiring flag
// and returns them sorted best-first. The sort is stable: ties keep the
// relative order of the input.
func Suggestions(recipes []models.CandidateRecipe, expiringNames []string) []models.RankedRecipe {
	ranked := make([]models.RankedRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		uses := UsesExpiring(recipe, expiringNames)
		ranked = append(ranked, models.RankedRecipe{
			CandidateRecipe:         recipe,
			Score:                   Score(recipe, uses),
			UsesExpiringIngredients: uses,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// PrioritizeIngredients returns inventory item names with expiring items
// first, each group in inventory order, truncated to maxIngredients. The
// list is meant for a bounded recipe search call, not for scoring.
func PrioritizeIngredients(inventory []models.InventoryItem, now time.Time, windowDays, maxIngredients int) []string {
	if maxIngredients <= 0 {
		maxIngredients = DefaultMaxIngredients
	}

	today := truncateToDay(now)
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	cutoff := today.AddDate(0, 0, windowDays)

	expiring := make([]string, 0)
	rest := make([]string, 0)
	for _, item := range inventory {
		best := truncateToDay(item.BestBeforeDate)
		if !best.Before(today) && !best.After(cutoff) {
			expiring = append(expiring, item.Name)
		} else {
			rest = append(rest, item.Name)
		}
	}

	names := append(expiring, rest...)
	if len(names) > maxIngredients {
		names = names[:maxIngredients]
	}
	return names
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
