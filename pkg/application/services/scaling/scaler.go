package scaling

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// Scaler turns a dish and a serving count into a quantified ingredient list
type Scaler struct {
	catalog repositories.RecipeCatalog
	log     *zap.Logger
}

// NewScaler creates a scaler over a recipe catalog
func NewScaler(catalog repositories.RecipeCatalog, log *zap.Logger) *Scaler {
	log = logging.OrNop(log)
	return &Scaler{catalog: catalog, log: log}
}

// Scale returns one quantified ingredient per recipe line, in recipe order.
// Unknown dishes resolve to the catalog's default recipe.
func (s *Scaler) Scale(dishName string, servings int) ([]entities.QuantifiedIngredient, error) {
	scaled, err := s.ScaleDish(dishName, servings)
	if err != nil {
		return nil, err
	}
	return scaled.Ingredients, nil
}

// ScaleDish is Scale with the resolved dish and fallback flag attached
func (s *Scaler) ScaleDish(dishName string, servings int) (*dto.ScaledRecipe, error) {
	if servings <= 0 {
		return nil, entities.NewValidationError("servings", "servings must be a positive integer, got %d", servings)
	}
	if strings.TrimSpace(dishName) == "" {
		return nil, entities.NewValidationError("dishName", "dish name cannot be empty")
	}

	recipe := s.catalog.Lookup(dishName)
	usedDefault := !s.catalog.IsKnown(dishName)

	ingredients := make([]entities.QuantifiedIngredient, len(recipe.Lines))
	for i, line := range recipe.Lines {
		ingredients[i] = line.Scale(servings)
	}

	s.log.Debug("recipe scaled",
		zap.String("dish", string(recipe.DishKey)),
		zap.Int("servings", servings),
		zap.Bool("used_default", usedDefault),
		zap.Int("ingredients", len(ingredients)))

	return &dto.ScaledRecipe{
		DishKey:       recipe.DishKey,
		RequestedDish: strings.TrimSpace(dishName),
		Servings:      servings,
		UsedDefault:   usedDefault,
		Ingredients:   ingredients,
	}, nil
}

// ParseServings converts user-entered text to a serving count.
// Only whole numbers greater than zero are accepted.
func ParseServings(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, entities.NewValidationError("servings", "servings is required")
	}
	servings, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, entities.NewValidationError("servings", "servings must be a whole number, got %q", trimmed)
	}
	if servings <= 0 {
		return 0, entities.NewValidationError("servings", "servings must be a positive integer, got %d", servings)
	}
	return servings, nil
}
