package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// ErrDuplicateSupplier is returned when registering a supplier id twice
var ErrDuplicateSupplier = fmt.Errorf("supplier already registered: %w", entities.ErrDuplicateItem)

// SupplierDirectory provides in-memory supplier registration, keeping one
// InventoryStore per supplier in registration order
type SupplierDirectory struct {
	mu        sync.RWMutex
	stores    []*InventoryStore
	storesMap map[entities.SupplierID]int
	opts      StoreOptions
	log       *zap.Logger
}

// Verify interface compliance
var _ repositories.SupplierDirectory = (*SupplierDirectory)(nil)

// NewSupplierDirectory creates an empty directory. opts are passed to every store it creates.
func NewSupplierDirectory(opts StoreOptions) *SupplierDirectory {
	opts.Log = logging.OrNop(opts.Log)
	return &SupplierDirectory{
		storesMap: make(map[entities.SupplierID]int),
		opts:      opts,
		log:       opts.Log,
	}
}

// Register adds a supplier and returns its new, empty inventory store.
// A profile without an id gets a generated one.
func (d *SupplierDirectory) Register(profile entities.SupplierProfile) (repositories.InventoryStore, error) {
	return d.RegisterStore(profile)
}

// RegisterStore is Register returning the concrete store
func (d *SupplierDirectory) RegisterStore(profile entities.SupplierProfile) (*InventoryStore, error) {
	if profile.ID == "" {
		profile.ID = entities.SupplierID(uuid.NewString())
	}
	validated, err := entities.NewSupplierProfile(profile.ID, profile.Name, profile.Distance, profile.Rating, profile.Location)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.storesMap[validated.ID]; exists {
		return nil, fmt.Errorf("%s: %w", validated.ID, ErrDuplicateSupplier)
	}

	store := NewInventoryStore(*validated, d.opts)
	d.storesMap[validated.ID] = len(d.stores)
	d.stores = append(d.stores, store)

	d.log.Info("supplier registered",
		zap.String("supplier_id", string(validated.ID)),
		zap.String("name", validated.Name))
	return store, nil
}

// Store returns the inventory of a registered supplier
func (d *SupplierDirectory) Store(id entities.SupplierID) (repositories.InventoryStore, error) {
	return d.InventoryStore(id)
}

// InventoryStore is Store returning the concrete store
func (d *SupplierDirectory) InventoryStore(id entities.SupplierID) (*InventoryStore, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	index, ok := d.storesMap[id]
	if !ok {
		return nil, &entities.NotFoundError{Kind: "supplier", Key: string(id)}
	}
	return d.stores[index], nil
}

// Profiles returns all supplier profiles in registration order
func (d *SupplierDirectory) Profiles() []entities.SupplierProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]entities.SupplierProfile, len(d.stores))
	for i, store := range d.stores {
		out[i] = store.Profile()
	}
	return out
}

// Snapshots returns a read-only snapshot of every supplier and its listings
func (d *SupplierDirectory) Snapshots() []entities.Supplier {
	d.mu.RLock()
	stores := append([]*InventoryStore(nil), d.stores...)
	d.mu.RUnlock()

	out := make([]entities.Supplier, len(stores))
	for i, store := range stores {
		out[i] = store.Snapshot()
	}
	return out
}
