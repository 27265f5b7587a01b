package memory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// DefaultDish is the recipe served for dishes the catalog does not know
const DefaultDish entities.DishKey = "pav bhaji"

// RecipeCatalog provides in-memory, read-only recipe storage.
// It is seeded at construction and never mutated afterwards.
type RecipeCatalog struct {
	recipes     []entities.Recipe
	recipesMap  map[entities.DishKey]int
	defaultDish entities.DishKey
	log         *zap.Logger
}

// Verify interface compliance
var _ repositories.RecipeCatalog = (*RecipeCatalog)(nil)

// NewRecipeCatalog creates a catalog seeded with the built-in street food recipes
func NewRecipeCatalog(log *zap.Logger) *RecipeCatalog {
	catalog, err := NewRecipeCatalogFrom(BuiltinRecipes(), string(DefaultDish), log)
	if err != nil {
		// Built-in data is static; failing here is a programming error
		panic(fmt.Sprintf("built-in recipe catalog is invalid: %v", err))
	}
	return catalog
}

// NewRecipeCatalogFrom creates a catalog from loaded recipes. The default dish must be one of them.
func NewRecipeCatalogFrom(recipes []*entities.Recipe, defaultDish string, log *zap.Logger) (*RecipeCatalog, error) {
	log = logging.OrNop(log)
	c := &RecipeCatalog{
		recipes:    make([]entities.Recipe, 0, len(recipes)),
		recipesMap: make(map[entities.DishKey]int, len(recipes)),
		log:        log,
	}

	for _, recipe := range recipes {
		if _, exists := c.recipesMap[recipe.DishKey]; exists {
			return nil, entities.NewValidationError("dishName", "recipe %s defined twice", recipe.DishKey)
		}
		c.recipesMap[recipe.DishKey] = len(c.recipes)
		c.recipes = append(c.recipes, *recipe.Clone())
	}

	key := entities.NormalizeDishKey(defaultDish)
	if _, ok := c.recipesMap[key]; !ok {
		return nil, &entities.NotFoundError{Kind: "default recipe", Key: string(key)}
	}
	c.defaultDish = key

	c.log.Debug("recipe catalog seeded",
		zap.Int("recipes", len(c.recipes)),
		zap.String("default_dish", string(key)))
	return c, nil
}

// Lookup returns the recipe for a dish, or the default recipe when the dish is unknown
func (c *RecipeCatalog) Lookup(dishName string) *entities.Recipe {
	key := entities.NormalizeDishKey(dishName)
	index, ok := c.recipesMap[key]
	if !ok {
		c.log.Debug("unknown dish, using default recipe",
			zap.String("dish", string(key)),
			zap.String("default_dish", string(c.defaultDish)))
		index = c.recipesMap[c.defaultDish]
	}
	return c.recipes[index].Clone()
}

// IsKnown reports whether the dish has its own recipe
func (c *RecipeCatalog) IsKnown(dishName string) bool {
	_, ok := c.recipesMap[entities.NormalizeDishKey(dishName)]
	return ok
}

// DefaultDish returns the key of the fallback recipe
func (c *RecipeCatalog) DefaultDish() entities.DishKey {
	return c.defaultDish
}

// Dishes returns all dish keys in seed order
func (c *RecipeCatalog) Dishes() []entities.DishKey {
	keys := make([]entities.DishKey, len(c.recipes))
	for i := range c.recipes {
		keys[i] = c.recipes[i].DishKey
	}
	return keys
}

type seedLine struct {
	name  string
	ratio string
	unit  string
}

// BuiltinRecipes returns fresh copies of the street food recipes the catalog ships with
func BuiltinRecipes() []*entities.Recipe {
	seeds := []struct {
		name  string
		lines []seedLine
	}{
		{"Pav Bhaji", []seedLine{
			{"Potatoes", "2", "kg"},
			{"Tomatoes", "1", "kg"},
			{"Onions", "0.5", "kg"},
			{"Capsicum", "0.3", "kg"},
			{"Pav bread", "1", "packet"},
			{"Butter", "0.2", "kg"},
		}},
		{"Vada Pav", []seedLine{
			{"Potatoes", "1.5", "kg"},
			{"Green chilies", "0.1", "kg"},
			{"Gram flour", "0.3", "kg"},
			{"Pav bread", "1", "packet"},
			{"Oil", "0.5", "liter"},
		}},
		{"Dosa", []seedLine{
			{"Rice", "2", "kg"},
			{"Urad dal", "0.5", "kg"},
			{"Oil", "0.3", "liter"},
			{"Salt", "0.05", "kg"},
		}},
	}

	recipes := make([]*entities.Recipe, 0, len(seeds))
	for _, seed := range seeds {
		lines := make([]entities.RecipeLine, 0, len(seed.lines))
		for _, l := range seed.lines {
			line, err := entities.NewRecipeLine(l.name, l.unit, decimal.RequireFromString(l.ratio))
			if err != nil {
				panic(err)
			}
			lines = append(lines, *line)
		}
		recipe, err := entities.NewRecipe(seed.name, lines)
		if err != nil {
			panic(err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}
