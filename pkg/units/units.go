// Package units converts recipe quantities into the units a pantry uses
// and computes how much of an item a recipe consumes. Conversion is only
// performed between units of the same physical dimension; anything else is
// refused rather than guessed.
package units

import (
	"math"
	"strings"

	"github.com/korjavin/pantrychef/pkg/models"
)

// Dimension is the physical base dimension of a unit
type Dimension string

const (
	DimensionVolume Dimension = "volume" // base: milliliter
	DimensionMass   Dimension = "mass"   // base: gram
	DimensionCount  Dimension = "count"  // base: discrete unit
)

type unitDef struct {
	dimension    Dimension
	factorToBase float64
}

// conversionTable maps normalized unit names to their base dimension and
// the factor converting one of that unit into the base unit.
var conversionTable = map[string]unitDef{
	// volume, base = milliliter
	"ml":          {DimensionVolume, 1},
	"milliliter":  {DimensionVolume, 1},
	"l":           {DimensionVolume, 1000},
	"liter":       {DimensionVolume, 1000},
	"cup":         {DimensionVolume, 236.588},
	"tablespoon":  {DimensionVolume, 14.787},
	"tbsp":        {DimensionVolume, 14.787},
	"teaspoon":    {DimensionVolume, 4.929},
	"tsp":         {DimensionVolume, 4.929},
	"fluid ounce": {DimensionVolume, 29.574},
	"fl oz":       {DimensionVolume, 29.574},
	"pint":        {DimensionVolume, 473.176},
	"quart":       {DimensionVolume, 946.353},
	"gallon":      {DimensionVolume, 3785.41},

	// mass, base = gram
	"g":         {DimensionMass, 1},
	"gram":      {DimensionMass, 1},
	"kg":        {DimensionMass, 1000},
	"kilogram":  {DimensionMass, 1000},
	"mg":        {DimensionMass, 0.001},
	"milligram": {DimensionMass, 0.001},
	"oz":        {DimensionMass, 28.35},
	"ounce":     {DimensionMass, 28.35},
	"lb":        {DimensionMass, 453.592},
	"pound":     {DimensionMass, 453.592},

	// count, base = discrete unit
	"unit":  {DimensionCount, 1},
	"piece": {DimensionCount, 1},
	"item":  {DimensionCount, 1},
	"":      {DimensionCount, 1},
}

// NormalizeUnit lowercases a unit string and strips one trailing period
// and one trailing "s", so "Cups.", "cups" and "cup" all resolve the same.
func NormalizeUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	unit = strings.TrimSuffix(unit, ".")
	if len(unit) > 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return unit
}

// Compatible reports whether two units can be converted into each other.
// Identical normalized units are always compatible, even free-text ones
// the table does not know.
func Compatible(unit1, unit2 string) bool {
	u1 := NormalizeUnit(unit1)
	u2 := NormalizeUnit(unit2)
	if u1 == u2 {
		return true
	}

	def1, ok1 := conversionTable[u1]
	def2, ok2 := conversionTable[u2]
	return ok1 && ok2 && def1.dimension == def2.dimension
}

// Convert converts a quantity between two units. The second return value
// is false when the units are unknown or belong to different dimensions.
func Convert(quantity float64, fromUnit, toUnit string) (float64, bool) {
	from := NormalizeUnit(fromUnit)
	to := NormalizeUnit(toUnit)
	if from == to {
		return quantity, true
	}

	fromDef, ok := conversionTable[from]
	if !ok {
		return 0, false
	}
	toDef, ok := conversionTable[to]
	if !ok {
		return 0, false
	}
	if fromDef.dimension != toDef.dimension {
		return 0, false
	}

	return quantity * fromDef.factorToBase / toDef.factorToBase, true
}

// CalculateDeduction computes how much of an inventory item a recipe
// consumes, scaling the recipe quantity by servings/recipeServings and
// converting it into the inventory item's unit. The deduction is clamped
// to the available quantity and never goes negative. Incompatible units
// refuse with a zero deduction, leaving the inventory untouched.
// Non-positive servings values fall back to 1.
func CalculateDeduction(recipeQuantity float64, recipeUnit string, inventoryQuantity float64, inventoryUnit string, servings, recipeServings int) models.QuantityDeduction {
	if servings <= 0 {
		servings = 1
	}
	if recipeServings <= 0 {
		recipeServings = 1
	}

	scaled := recipeQuantity * float64(servings) / float64(recipeServings)

	converted, ok := Convert(scaled, recipeUnit, inventoryUnit)
	if !ok {
		return models.QuantityDeduction{
			DeductAmount:      0,
			Sufficient:        false,
			RemainingQuantity: inventoryQuantity,
		}
	}

	sufficient := inventoryQuantity >= converted
	deduct := converted
	if !sufficient {
		deduct = inventoryQuantity
	}

	remaining := inventoryQuantity - deduct
	if remaining < 0 {
		remaining = 0
	}

	return models.QuantityDeduction{
		DeductAmount:      round2(deduct),
		Sufficient:        sufficient,
		RemainingQuantity: round2(remaining),
	}
}

// round2 rounds to two decimal places for presentation stability
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
