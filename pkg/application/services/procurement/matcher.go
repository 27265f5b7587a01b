package procurement

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// Matcher finds supplier listings for scaled ingredients.
// It only reads the supplier snapshots it is given.
type Matcher struct {
	log *zap.Logger
}

// NewMatcher creates a matcher
func NewMatcher(log *zap.Logger) *Matcher {
	log = logging.OrNop(log)
	return &Matcher{log: log}
}

// FindCandidates returns, per ingredient name, every listing whose item name
// matches case-insensitively and whose unit is the ingredient's unit, ranked
// by RankCandidates. Ingredients nobody sells map to an empty slice.
func (m *Matcher) FindCandidates(
	ingredients []entities.QuantifiedIngredient,
	suppliers []entities.Supplier,
) map[string][]entities.Candidate {
	result := make(map[string][]entities.Candidate, len(ingredients))

	for _, ingredient := range ingredients {
		candidates := matchIngredient(ingredient, suppliers)
		RankCandidates(candidates)
		result[ingredient.Name] = candidates

		if len(candidates) == 0 {
			m.log.Debug("no supplier lists ingredient",
				zap.String("ingredient", ingredient.Name),
				zap.String("unit", ingredient.Unit))
		}
	}

	return result
}

// Plan picks the best candidate for every ingredient and estimates the spend.
// EstimatedCost is round2(unit price * required quantity); StockShort marks
// lines where the chosen supplier holds less than the required quantity.
func (m *Matcher) Plan(
	ingredients []entities.QuantifiedIngredient,
	suppliers []entities.Supplier,
) dto.ProcurementPlan {
	plan := dto.ProcurementPlan{
		Lines:          make([]dto.PlanLine, 0, len(ingredients)),
		Unsourceable:   []string{},
		EstimatedTotal: decimal.Zero,
	}

	for _, ingredient := range ingredients {
		candidates := matchIngredient(ingredient, suppliers)
		best, ok := SelectBestCandidate(candidates)
		if !ok {
			plan.Unsourceable = append(plan.Unsourceable, ingredient.Name)
			continue
		}

		cost := best.Listing.UnitPrice.Mul(ingredient.Quantity).Round(entities.QuantityPlaces)
		stock := decimal.NewFromInt(best.Listing.StockQuantity)
		plan.Lines = append(plan.Lines, dto.PlanLine{
			Ingredient:    ingredient,
			Candidate:     best,
			EstimatedCost: cost,
			StockShort:    stock.LessThan(ingredient.Quantity),
			Alternatives:  len(candidates) - 1,
		})
		plan.EstimatedTotal = plan.EstimatedTotal.Add(cost)
	}

	m.log.Debug("procurement plan built",
		zap.Int("lines", len(plan.Lines)),
		zap.Int("unsourceable", len(plan.Unsourceable)),
		zap.Stringer("estimated_total", plan.EstimatedTotal))
	return plan
}

func matchIngredient(ingredient entities.QuantifiedIngredient, suppliers []entities.Supplier) []entities.Candidate {
	candidates := []entities.Candidate{}
	for _, supplier := range suppliers {
		listing, ok := supplier.Listing(ingredient.Name)
		if !ok || !entities.SameUnit(listing.Unit, ingredient.Unit) {
			continue
		}
		candidates = append(candidates, entities.Candidate{
			Supplier: supplier.SupplierProfile,
			Listing:  listing,
		})
	}
	return candidates
}
