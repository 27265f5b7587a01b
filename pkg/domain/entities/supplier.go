package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SupplierID represents a unique supplier identifier
type SupplierID string

// MaxRating is the upper bound of a supplier rating
var MaxRating = decimal.NewFromInt(5)

// ItemKey normalizes an item name for case-insensitive matching and uniqueness
func ItemKey(itemName string) string {
	return strings.ToLower(strings.TrimSpace(itemName))
}

// SameUnit reports whether two units are the same unit, ignoring case and padding.
// No conversion is attempted: "liter" never equals "kg".
func SameUnit(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SupplierProfile holds the descriptive data of a supplier
type SupplierProfile struct {
	ID       SupplierID      `json:"id"`
	Name     string          `json:"name"`
	Distance decimal.Decimal `json:"distance_km"`
	Rating   decimal.Decimal `json:"rating"`
	Location string          `json:"location,omitempty"`
}

// NewSupplierProfile creates a validated SupplierProfile
func NewSupplierProfile(id SupplierID, name string, distance, rating decimal.Decimal, location string) (*SupplierProfile, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, NewValidationError("supplierId", "supplier id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "supplier name cannot be empty")
	}
	if distance.IsNegative() {
		return nil, NewValidationError("distance", "distance cannot be negative, got %s", distance)
	}
	if rating.IsNegative() || rating.GreaterThan(MaxRating) {
		return nil, NewValidationError("rating", "rating must be between 0 and 5, got %s", rating)
	}

	return &SupplierProfile{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Distance: distance,
		Rating:   rating,
		Location: strings.TrimSpace(location),
	}, nil
}

// Listing is a supplier's priced, stocked offer of one item
type Listing struct {
	ItemName      string          `json:"item_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Unit          string          `json:"unit"`
	StockQuantity int64           `json:"stock_quantity"`
	LastUpdatedAt time.Time       `json:"last_updated_at"`
}

// NewListing creates a validated Listing
func NewListing(itemName string, unitPrice decimal.Decimal, unit string, stockQuantity int64, at time.Time) (*Listing, error) {
	itemName = strings.TrimSpace(itemName)
	unit = strings.TrimSpace(unit)
	if itemName == "" {
		return nil, NewValidationError("itemName", "item name cannot be empty")
	}
	if unit == "" {
		return nil, NewValidationError("unit", "unit cannot be empty")
	}
	if err := ValidatePrice(unitPrice); err != nil {
		return nil, err
	}
	if err := ValidateStock(stockQuantity); err != nil {
		return nil, err
	}

	return &Listing{
		ItemName:      itemName,
		UnitPrice:     unitPrice,
		Unit:          unit,
		StockQuantity: stockQuantity,
		LastUpdatedAt: at,
	}, nil
}

// ValidatePrice rejects prices that are zero or negative
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return NewValidationError("unitPrice", "price must be positive, got %s", price)
	}
	return nil
}

// ValidateStock rejects negative stock quantities
func ValidateStock(stock int64) error {
	if stock < 0 {
		return NewValidationError("stockQuantity", "stock cannot be negative, got %d", stock)
	}
	return nil
}

// StockValue is price * stock for the listing
func (l Listing) StockValue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.StockQuantity))
}

// Supplier is a read-only snapshot of a supplier and its listings keyed by ItemKey
type Supplier struct {
	SupplierProfile
	Listings map[string]Listing `json:"listings"`
}

// Listing returns the listing for an item name, matched case-insensitively
func (s Supplier) Listing(itemName string) (Listing, bool) {
	l, ok := s.Listings[ItemKey(itemName)]
	return l, ok
}

// Candidate is a supplier listing eligible to satisfy one ingredient requirement
type Candidate struct {
	Supplier SupplierProfile `json:"supplier"`
	Listing  Listing         `json:"listing"`
}
