package memory

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// StoreOptions carries the collaborators of an InventoryStore. Zero values are usable.
type StoreOptions struct {
	Clock     func() time.Time
	Publisher events.Publisher
	Log       *zap.Logger
}

// InventoryStore provides in-memory listing storage for one supplier.
// Every mutation is an atomic read-modify-write under mu; concurrent writers
// to the same listing resolve as last-writer-wins.
type InventoryStore struct {
	mu          sync.RWMutex
	profile     entities.SupplierProfile
	listings    []entities.Listing
	listingsMap map[string]int
	clock       func() time.Time
	publisher   events.Publisher
	log         *zap.Logger
}

// Verify interface compliance
var _ repositories.InventoryStore = (*InventoryStore)(nil)

// NewInventoryStore creates an empty inventory for a supplier
func NewInventoryStore(profile entities.SupplierProfile, opts StoreOptions) *InventoryStore {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	opts.Log = logging.OrNop(opts.Log)
	return &InventoryStore{
		profile:     profile,
		listings:    []entities.Listing{},
		listingsMap: make(map[string]int),
		clock:       opts.Clock,
		publisher:   opts.Publisher,
		log:         opts.Log.With(zap.String("supplier_id", string(profile.ID))),
	}
}

// Profile returns the supplier this inventory belongs to
func (s *InventoryStore) Profile() entities.SupplierProfile {
	return s.profile
}

// AddListing creates a new listing. An existing listing for the same item
// (case-insensitive) is a DuplicateItemError; use UpdatePrice or UpdateStock instead.
func (s *InventoryStore) AddListing(itemName string, unitPrice decimal.Decimal, unit string, stockQuantity int64) (*entities.Listing, error) {
	s.mu.Lock()
	listing, err := entities.NewListing(itemName, unitPrice, unit, stockQuantity, s.clock())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	key := entities.ItemKey(listing.ItemName)
	if _, exists := s.listingsMap[key]; exists {
		s.mu.Unlock()
		return nil, &entities.DuplicateItemError{SupplierID: s.profile.ID, ItemName: listing.ItemName}
	}

	s.listingsMap[key] = len(s.listings)
	s.listings = append(s.listings, *listing)
	added := *listing
	s.mu.Unlock()

	s.log.Info("listing added",
		zap.String("item", added.ItemName),
		zap.Stringer("price", added.UnitPrice),
		zap.String("unit", added.Unit),
		zap.Int64("stock", added.StockQuantity))
	s.publish(events.NewListingAddedEvent(s.profile.ID, added))
	return &added, nil
}

// UpdatePrice sets a new unit price and stamps LastUpdatedAt
func (s *InventoryStore) UpdatePrice(itemName string, newPrice decimal.Decimal) (*entities.Listing, error) {
	if err := entities.ValidatePrice(newPrice); err != nil {
		return nil, err
	}

	s.mu.Lock()
	index, err := s.indexOf(itemName)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	listing := &s.listings[index]
	oldPrice := listing.UnitPrice
	listing.UnitPrice = newPrice
	listing.LastUpdatedAt = s.clock()
	updated := *listing
	s.mu.Unlock()

	s.log.Info("price updated",
		zap.String("item", updated.ItemName),
		zap.Stringer("old_price", oldPrice),
		zap.Stringer("price", updated.UnitPrice))
	s.publish(events.NewListingPriceUpdatedEvent(s.profile.ID, oldPrice, updated))
	return &updated, nil
}

// UpdateStock sets a new stock quantity and stamps LastUpdatedAt
func (s *InventoryStore) UpdateStock(itemName string, newStock int64) (*entities.Listing, error) {
	if err := entities.ValidateStock(newStock); err != nil {
		return nil, err
	}

	s.mu.Lock()
	index, err := s.indexOf(itemName)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	listing := &s.listings[index]
	oldStock := listing.StockQuantity
	listing.StockQuantity = newStock
	listing.LastUpdatedAt = s.clock()
	updated := *listing
	s.mu.Unlock()

	s.log.Info("stock updated",
		zap.String("item", updated.ItemName),
		zap.Int64("old_stock", oldStock),
		zap.Int64("stock", updated.StockQuantity))
	s.publish(events.NewListingStockUpdatedEvent(s.profile.ID, oldStock, updated))
	return &updated, nil
}

// GetListing returns a copy of one listing
func (s *InventoryStore) GetListing(itemName string) (*entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, err := s.indexOf(itemName)
	if err != nil {
		return nil, err
	}
	listing := s.listings[index]
	return &listing, nil
}

// ListAll returns copies of all listings in insertion order
func (s *InventoryStore) ListAll() []entities.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Snapshot returns the supplier with a copy of its current listings
func (s *InventoryStore) Snapshot() entities.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make(map[string]entities.Listing, len(s.listings))
	for _, l := range s.listings {
		listings[entities.ItemKey(l.ItemName)] = l
	}
	return entities.Supplier{SupplierProfile: s.profile, Listings: listings}
}

// indexOf must be called with mu held
func (s *InventoryStore) indexOf(itemName string) (int, error) {
	index, ok := s.listingsMap[entities.ItemKey(itemName)]
	if !ok {
		return 0, &entities.NotFoundError{Kind: "listing", Key: itemName}
	}
	return index, nil
}

func (s *InventoryStore) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.AppendEvent(string(s.profile.ID), event); err != nil {
		s.log.Warn("failed to publish inventory event", zap.String("event_type", event.Type()), zap.Error(err))
	}
}
