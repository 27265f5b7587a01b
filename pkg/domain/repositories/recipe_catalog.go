package repositories

import "github.com/vsinha/vendorsupply/pkg/domain/entities"

// RecipeCatalog provides read-only access to base recipes
type RecipeCatalog interface {
	// Lookup normalizes the dish name and returns its recipe, or the default
	// recipe when the dish is unknown. It never returns nil.
	Lookup(dishName string) *entities.Recipe
	IsKnown(dishName string) bool
	DefaultDish() entities.DishKey
	Dishes() []entities.DishKey
}
