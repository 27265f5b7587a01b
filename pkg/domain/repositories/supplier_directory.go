package repositories

import "github.com/vsinha/vendorsupply/pkg/domain/entities"

// SupplierDirectory tracks the suppliers reachable from a vendor session
type SupplierDirectory interface {
	Register(profile entities.SupplierProfile) (InventoryStore, error)
	Store(id entities.SupplierID) (InventoryStore, error)
	Profiles() []entities.SupplierProfile
	Snapshots() []entities.Supplier
}
