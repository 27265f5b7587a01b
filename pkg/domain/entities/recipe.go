package entities

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityPlaces is the number of decimal places scaled quantities are rounded to
const QuantityPlaces = 2

// DishKey is a normalized (trimmed, lowercased) dish identifier
type DishKey string

// NormalizeDishKey turns free-text dish input into a catalog key
func NormalizeDishKey(dishName string) DishKey {
	return DishKey(strings.ToLower(strings.TrimSpace(dishName)))
}

// Ingredient identifies a raw material within a recipe
type Ingredient struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// RecipeLine is one ingredient of a recipe with its per-serving ratio
type RecipeLine struct {
	Ingredient      Ingredient      `json:"ingredient"`
	RatioPerServing decimal.Decimal `json:"ratio_per_serving"`
}

// NewRecipeLine creates a validated RecipeLine
func NewRecipeLine(name, unit string, ratioPerServing decimal.Decimal) (*RecipeLine, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return nil, NewValidationError("ingredient", "name cannot be empty")
	}
	if unit == "" {
		return nil, NewValidationError("unit", "unit cannot be empty for %s", name)
	}
	if !ratioPerServing.IsPositive() {
		return nil, NewValidationError("ratioPerServing", "ratio must be positive, got %s", ratioPerServing)
	}

	return &RecipeLine{
		Ingredient:      Ingredient{Name: name, Unit: unit},
		RatioPerServing: ratioPerServing,
	}, nil
}

// Recipe is the base, per-serving ingredient list of a dish
type Recipe struct {
	DishKey DishKey      `json:"dish_key"`
	Name    string       `json:"name"`
	Lines   []RecipeLine `json:"lines"`
}

// NewRecipe creates a validated Recipe. Lines keep the given display order.
func NewRecipe(name string, lines []RecipeLine) (*Recipe, error) {
	key := NormalizeDishKey(name)
	if key == "" {
		return nil, NewValidationError("dishName", "dish name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, NewValidationError("lines", "recipe %s needs at least one ingredient", key)
	}

	seen := make(map[Ingredient]bool, len(lines))
	for _, line := range lines {
		id := Ingredient{
			Name: strings.ToLower(line.Ingredient.Name),
			Unit: strings.ToLower(line.Ingredient.Unit),
		}
		if seen[id] {
			return nil, NewValidationError("lines", "duplicate ingredient %s (%s) in recipe %s",
				line.Ingredient.Name, line.Ingredient.Unit, key)
		}
		seen[id] = true
	}

	copied := make([]RecipeLine, len(lines))
	copy(copied, lines)

	return &Recipe{
		DishKey: key,
		Name:    strings.TrimSpace(name),
		Lines:   copied,
	}, nil
}

// Clone returns a deep copy so catalog data cannot be mutated through lookups
func (r *Recipe) Clone() *Recipe {
	lines := make([]RecipeLine, len(r.Lines))
	copy(lines, r.Lines)
	return &Recipe{DishKey: r.DishKey, Name: r.Name, Lines: lines}
}

// QuantifiedIngredient is an ingredient scaled to a serving count
type QuantifiedIngredient struct {
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// QuantityString renders the quantity with fixed two decimals
func (q QuantifiedIngredient) QuantityString() string {
	return q.Quantity.StringFixed(QuantityPlaces)
}

// MarshalJSON emits the quantity with its fixed two decimals ("100.00")
func (q QuantifiedIngredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string `json:"name"`
		Unit     string `json:"unit"`
		Quantity string `json:"quantity"`
	}{q.Name, q.Unit, q.QuantityString()})
}

// Scale computes round2(ratio * servings) for the line.
// decimal.Round rounds half away from zero, which is half-up for non-negative quantities.
func (l RecipeLine) Scale(servings int) QuantifiedIngredient {
	qty := l.RatioPerServing.Mul(decimal.NewFromInt(int64(servings))).Round(QuantityPlaces)
	return QuantifiedIngredient{
		Name:     l.Ingredient.Name,
		Unit:     l.Ingredient.Unit,
		Quantity: qty,
	}
}
