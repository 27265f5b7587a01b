package cart

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
)

// PlaceOrder snapshots the cart into an order and empties it.
// An empty cart cannot be ordered.
func (a *Aggregator) PlaceOrder(vendorID string) (*entities.Order, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, entities.NewValidationError("vendorId", "vendor id cannot be empty")
	}

	a.mu.Lock()
	if len(a.lines) == 0 {
		a.mu.Unlock()
		return nil, entities.NewValidationError("cart", "cannot place an order from an empty cart")
	}
	lines := a.lines
	a.lines = []entities.CartLine{}
	a.mu.Unlock()

	order := &entities.Order{
		ID:       uuid.NewString(),
		VendorID: vendorID,
		Lines:    lines,
		Total:    entities.SumUnitPrices(lines),
		PlacedAt: a.clock(),
	}

	a.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("vendor_id", vendorID),
		zap.Int("lines", len(order.Lines)),
		zap.Stringer("total", order.Total))

	if a.publisher != nil {
		if err := a.publisher.AppendEvent(vendorID, events.NewOrderPlacedEvent(*order)); err != nil {
			a.log.Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
	return order, nil
}
