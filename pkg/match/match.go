// Package match decides which recipe ingredients a pantry already covers.
// All functions are pure: they read their arguments, build fresh result
// values, and keep no state between calls.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/korjavin/pantrychef/pkg/models"
)

// DefaultThreshold is the minimum similarity score an inventory item must
// reach to count as a match. Tunable, not a hard invariant.
const DefaultThreshold = 0.6

// SubstringConfidence is the fixed confidence assigned when one normalized
// name contains the other. Kept below 1.0 so exact matches rank higher.
const SubstringConfidence = 0.9

// qualifierWords are preparation/state words stripped before comparison,
// so "fresh basil" and "basil" compare equal.
var qualifierWords = map[string]bool{
	"fresh":   true,
	"frozen":  true,
	"canned":  true,
	"dried":   true,
	"chopped": true,
	"minced":  true,
	"sliced":  true,
	"diced":   true,
}

// Result partitions a recipe's ingredients into those covered by the
// inventory and those that are not. Both slices preserve the input
// ingredient order.
type Result struct {
	Matched []models.MatchedIngredient
	Missing []models.MatchedIngredient
}

// Normalize reduces an ingredient or inventory name to a comparable form:
// lowercased, punctuation removed, qualifier words dropped, and a trailing
// "s" stripped from each token as a crude de-pluralization.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, token := range tokens {
		if qualifierWords[token] {
			continue
		}
		if len(token) > 1 && strings.HasSuffix(token, "s") {
			token = token[:len(token)-1]
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// Similarity scores two normalized names in [0,1] as
// 1 - editDistance/maxLen. Two empty strings are identical by definition.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Ingredients matches every recipe ingredient against the full inventory
// using DefaultThreshold.
func Ingredients(ingredients []models.RecipeIngredient, inventory []models.InventoryItem) Result {
	return IngredientsWithThreshold(ingredients, inventory, DefaultThreshold)
}

// IngredientsWithThreshold matches every recipe ingredient against the full
// inventory. Each ingredient is evaluated independently, so one inventory
// item may back several ingredients. An ingredient lands in Missing when no
// item scores at or above the threshold.
func IngredientsWithThreshold(ingredients []models.RecipeIngredient, inventory []models.InventoryItem, threshold float64) Result {
	normalized := make([]string, len(inventory))
	for i, item := range inventory {
		normalized[i] = Normalize(item.Name)
	}

	result := Result{
		Matched: make([]models.MatchedIngredient, 0, len(ingredients)),
		Missing: make([]models.MatchedIngredient, 0),
	}

	for _, ingredient := range ingredients {
		name := Normalize(ingredient.Name)

		bestScore := 0.0
		bestIdx := -1
		for i, invName := range normalized {
			if name == invName {
				bestScore = 1.0
				bestIdx = i
				break
			}

			score := Similarity(name, invName)
			if name != "" && invName != "" &&
				(strings.Contains(name, invName) || strings.Contains(invName, name)) {
				score = SubstringConfidence
			}

			// first item with the best score wins
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx >= 0 && bestScore >= threshold {
			result.Matched = append(result.Matched, models.MatchedIngredient{
				RecipeIngredient: ingredient,
				InventoryItemID:  inventory[bestIdx].ID,
				Available:        true,
				MatchConfidence:  bestScore,
			})
		} else {
			result.Missing = append(result.Missing, models.MatchedIngredient{
				RecipeIngredient: ingredient,
				Available:        false,
			})
		}
	}

	return result
}
