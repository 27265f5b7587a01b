package session

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
)

// SupplierSession lets a supplier manage its own inventory
type SupplierSession struct {
	caller    Context
	store     repositories.InventoryStore
	publisher events.Publisher
	clock     func() time.Time
	log       *zap.Logger
}

// Caller returns the supplier owning the session
func (s *SupplierSession) Caller() Context {
	return s.caller
}

// Profile returns the supplier's profile
func (s *SupplierSession) Profile() entities.SupplierProfile {
	return s.store.Profile()
}

// Listings returns the supplier's listings in insertion order
func (s *SupplierSession) Listings() []entities.Listing {
	return s.store.ListAll()
}

// AddListing creates a listing; an item already listed is a DuplicateItemError
func (s *SupplierSession) AddListing(itemName string, unitPrice decimal.Decimal, unit string, stockQuantity int64) (*entities.Listing, error) {
	return s.store.AddListing(itemName, unitPrice, unit, stockQuantity)
}

// UpdatePrice changes the unit price of an existing listing
func (s *SupplierSession) UpdatePrice(itemName string, newPrice decimal.Decimal) (*entities.Listing, error) {
	return s.store.UpdatePrice(itemName, newPrice)
}

// UpdateStock changes the stock quantity of an existing listing
func (s *SupplierSession) UpdateStock(itemName string, newStock int64) (*entities.Listing, error) {
	return s.store.UpdateStock(itemName, newStock)
}

// Stats returns item count and total stock value
func (s *SupplierSession) Stats() dto.InventoryStats {
	return dto.NewInventoryStats(s.store.Profile().ID, s.store.ListAll())
}

// SendPriceAlert broadcasts the supplier's current prices to vendors
func (s *SupplierSession) SendPriceAlert() (events.Event, error) {
	profile := s.store.Profile()
	event := events.NewPriceAlertEvent(profile, s.store.ListAll(), s.clock())

	if s.publisher == nil {
		return event, nil
	}
	if err := s.publisher.AppendEvent(string(profile.ID), event); err != nil {
		s.log.Error("failed to publish price alert", zap.String("supplier_id", string(profile.ID)), zap.Error(err))
		return nil, err
	}

	s.log.Info("price alert sent", zap.String("supplier_id", string(profile.ID)))
	return event, nil
}
