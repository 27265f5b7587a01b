package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// InventoryStore manages the listings of a single supplier
type InventoryStore interface {
	Profile() entities.SupplierProfile
	AddListing(itemName string, unitPrice decimal.Decimal, unit string, stockQuantity int64) (*entities.Listing, error)
	UpdatePrice(itemName string, newPrice decimal.Decimal) (*entities.Listing, error)
	UpdateStock(itemName string, newStock int64) (*entities.Listing, error)
	GetListing(itemName string) (*entities.Listing, error)
	ListAll() []entities.Listing

	// Snapshot returns a copy of the supplier and its listings for read-only queries
	Snapshot() entities.Supplier
}
