package units

import (
	"testing"

	"github.com/korjavin/pantrychef/pkg/models"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cups.", "cup"},
		{"GRAMS", "gram"},
		{"tbsp", "tbsp"},
		{"Lbs", "lb"},
		{" ml ", "ml"},
		{"pieces", "piece"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeUnit(tt.in); got != tt.want {
				t.Errorf("NormalizeUnit(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name   string
		u1, u2 string
		want   bool
	}{
		{"same mass units", "g", "kg", true},
		{"same volume units", "cup", "l", true},
		{"count aliases", "piece", "item", true},
		{"empty unit is count", "", "unit", true},
		{"mass vs volume", "g", "ml", false},
		{"unknown equal free text", "bunch", "Bunch", true},
		{"unknown plural free text", "bunch", "bunches", false},
		{"unknown vs known", "bunch", "g", false},
		{"case and plural insensitive", "Grams", "KG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.u1, tt.u2); got != tt.want {
				t.Errorf("Compatible(%q, %q) = %v, want %v", tt.u1, tt.u2, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		from, to string
		want     float64
		wantOK   bool
	}{
		{"g to kg", 500, "g", "kg", 0.5, true},
		{"kg to g", 2, "kg", "g", 2000, true},
		{"cup to ml", 1, "cup", "ml", 236.588, true},
		{"tbsp to tsp", 1, "tbsp", "tsp", 14.787 / 4.929, true},
		{"identical unknown passes through", 3, "bunch", "bunch", 3, true},
		{"cross dimension refused", 1, "g", "ml", 0, false},
		{"unknown refused", 1, "handful", "g", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.quantity, tt.from, tt.to)
			if ok != tt.wantOK {
				t.Fatalf("Convert(%v, %q, %q) ok = %v, want %v", tt.quantity, tt.from, tt.to, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v", tt.quantity, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCalculateDeduction(t *testing.T) {
	tests := []struct {
		name           string
		recipeQty      float64
		recipeUnit     string
		invQty         float64
		invUnit        string
		servings       int
		recipeServings int
		want           models.QuantityDeduction
	}{
		{
			name:      "sufficient with conversion",
			recipeQty: 500, recipeUnit: "g", invQty: 1, invUnit: "kg",
			servings: 1, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 0.5, Sufficient: true, RemainingQuantity: 0.5},
		},
		{
			name:      "insufficient clamps to available",
			recipeQty: 800, recipeUnit: "g", invQty: 0.5, invUnit: "kg",
			servings: 1, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 0.5, Sufficient: false, RemainingQuantity: 0},
		},
		{
			name:      "incompatible units refuse cleanly",
			recipeQty: 1, recipeUnit: "grams", invQty: 500, invUnit: "milliliters",
			servings: 1, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 0, Sufficient: false, RemainingQuantity: 500},
		},
		{
			name:      "free text unit passes through when equal",
			recipeQty: 1, recipeUnit: "bunch", invQty: 3, invUnit: "bunch",
			servings: 1, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 1, Sufficient: true, RemainingQuantity: 2},
		},
		{
			name:      "scales up by servings",
			recipeQty: 100, recipeUnit: "g", invQty: 500, invUnit: "g",
			servings: 2, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 200, Sufficient: true, RemainingQuantity: 300},
		},
		{
			name:      "scales down by recipe servings",
			recipeQty: 400, recipeUnit: "g", invQty: 500, invUnit: "g",
			servings: 2, recipeServings: 4,
			want: models.QuantityDeduction{DeductAmount: 200, Sufficient: true, RemainingQuantity: 300},
		},
		{
			name:      "zero servings treated as one",
			recipeQty: 100, recipeUnit: "g", invQty: 500, invUnit: "g",
			servings: 0, recipeServings: 0,
			want: models.QuantityDeduction{DeductAmount: 100, Sufficient: true, RemainingQuantity: 400},
		},
		{
			name:      "results rounded to two decimals",
			recipeQty: 1, recipeUnit: "tsp", invQty: 1, invUnit: "cup",
			servings: 1, recipeServings: 1,
			want: models.QuantityDeduction{DeductAmount: 0.02, Sufficient: true, RemainingQuantity: 0.98},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDeduction(tt.recipeQty, tt.recipeUnit, tt.invQty, tt.invUnit, tt.servings, tt.recipeServings)
			if got != tt.want {
				t.Errorf("CalculateDeduction() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeductionNeverOverdraws(t *testing.T) {
	quantities := []struct {
		recipe    float64
		inventory float64
	}{
		{0, 100}, {50, 100}, {100, 100}, {150, 100}, {1000, 0.5},
	}

	for _, q := range quantities {
		got := CalculateDeduction(q.recipe, "g", q.inventory, "g", 1, 1)
		if got.DeductAmount > q.inventory {
			t.Errorf("deducted %v from inventory of %v", got.DeductAmount, q.inventory)
		}
		if got.RemainingQuantity < 0 {
			t.Errorf("remaining quantity %v is negative", got.RemainingQuantity)
		}
	}
}

func TestScalingLinearity(t *testing.T) {
	single := CalculateDeduction(120, "g", 10000, "g", 1, 1)
	double := CalculateDeduction(120, "g", 10000, "g", 2, 1)

	if double.DeductAmount != 2*single.DeductAmount {
		t.Errorf("double servings deducted %v, want %v", double.DeductAmount, 2*single.DeductAmount)
	}
}
