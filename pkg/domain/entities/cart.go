package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a price-snapshotted record of one chosen candidate
type CartLine struct {
	ItemName     string          `json:"item_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Unit         string          `json:"unit"`
	SupplierID   SupplierID      `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Distance     decimal.Decimal `json:"distance_km"`
	AddedAt      time.Time       `json:"added_at"`
}

// NewCartLine snapshots a candidate at the given time
func NewCartLine(candidate Candidate, at time.Time) CartLine {
	return CartLine{
		ItemName:     candidate.Listing.ItemName,
		UnitPrice:    candidate.Listing.UnitPrice,
		Unit:         candidate.Listing.Unit,
		SupplierID:   candidate.Supplier.ID,
		SupplierName: candidate.Supplier.Name,
		Distance:     candidate.Supplier.Distance,
		AddedAt:      at,
	}
}

// SumUnitPrices totals the unit prices of the given lines
func SumUnitPrices(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice)
	}
	return total
}

// Order is the snapshot of a cart at placement time
type Order struct {
	ID       string          `json:"id"`
	VendorID string          `json:"vendor_id"`
	Lines    []CartLine      `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}
