package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// ScaledRecipe contains the complete output of a scaling request
type ScaledRecipe struct {
	DishKey       entities.DishKey                `json:"dish_key"`
	RequestedDish string                          `json:"requested_dish"`
	Servings      int                             `json:"servings"`
	UsedDefault   bool                            `json:"used_default"`
	Ingredients   []entities.QuantifiedIngredient `json:"ingredients"`
}

// PlanLine is the best candidate chosen for one ingredient requirement
type PlanLine struct {
	Ingredient    entities.QuantifiedIngredient `json:"ingredient"`
	Candidate     entities.Candidate            `json:"candidate"`
	EstimatedCost decimal.Decimal               `json:"estimated_cost"`
	StockShort    bool                          `json:"stock_short"`
	Alternatives  int                           `json:"alternatives"`
}

// ProcurementPlan is a cheapest-first sourcing proposal for a scaled recipe
type ProcurementPlan struct {
	Lines          []PlanLine      `json:"lines"`
	Unsourceable   []string        `json:"unsourceable"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
}

// HasShortages reports whether any line is short on stock or unsourceable
func (p ProcurementPlan) HasShortages() bool {
	if len(p.Unsourceable) > 0 {
		return true
	}
	for _, line := range p.Lines {
		if line.StockShort {
			return true
		}
	}
	return false
}

// DriftKind classifies how a cart line differs from current supplier inventory
type DriftKind string

const (
	DriftUnitChanged     DriftKind = "unit_changed"
	DriftOutOfStock      DriftKind = "out_of_stock"
	DriftPriceChanged    DriftKind = "price_changed"
	DriftListingRemoved  DriftKind = "listing_removed"
	DriftSupplierMissing DriftKind = "supplier_missing"
)

// PriceDrift reports one way a cart line's snapshot no longer matches the supplier.
// A line can drift in several ways at once; each gets its own PriceDrift.
type PriceDrift struct {
	Index        int                 `json:"index"`
	ItemName     string              `json:"item_name"`
	SupplierID   entities.SupplierID `json:"supplier_id"`
	Kind         DriftKind           `json:"kind"`
	CartPrice    decimal.Decimal     `json:"cart_price"`
	CurrentPrice decimal.Decimal     `json:"current_price"`
}

// SupplierSubtotal groups the cart lines bought from one supplier
type SupplierSubtotal struct {
	SupplierID   entities.SupplierID `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	Lines        int                 `json:"lines"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
}

// InventoryStats summarizes one supplier's inventory
type InventoryStats struct {
	SupplierID      entities.SupplierID `json:"supplier_id"`
	TotalItems      int                 `json:"total_items"`
	TotalStockValue decimal.Decimal     `json:"total_stock_value"`
}

// NewInventoryStats totals item count and price * stock over the listings
func NewInventoryStats(supplierID entities.SupplierID, listings []entities.Listing) InventoryStats {
	value := decimal.Zero
	for _, l := range listings {
		value = value.Add(l.StockValue())
	}
	return InventoryStats{
		SupplierID:      supplierID,
		TotalItems:      len(listings),
		TotalStockValue: value,
	}
}

// CartView is the cart as shown to a vendor
type CartView struct {
	Lines []entities.CartLine `json:"lines"`
	Total decimal.Decimal     `json:"total"`
}
