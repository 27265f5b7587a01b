package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
)

// DefaultCapacity bounds the notifications a feed keeps
const DefaultCapacity = 100

// Kind of vendor notification
type Kind string

const (
	KindPriceAlert   Kind = "price_alert"
	KindPriceChanged Kind = "price_changed"
)

// Notification is one entry in the vendor alert feed
type Notification struct {
	Kind       Kind                `json:"kind"`
	SupplierID entities.SupplierID `json:"supplier_id"`
	ItemName   string              `json:"item_name,omitempty"`
	OldPrice   *decimal.Decimal    `json:"old_price,omitempty"`
	NewPrice   *decimal.Decimal    `json:"new_price,omitempty"`
	Message    string              `json:"message"`
	At         time.Time           `json:"at"`
}

// Feed collects price alerts and price changes published by suppliers
type Feed struct {
	mu            sync.RWMutex
	notifications []Notification
	capacity      int
}

// NewFeed creates a feed keeping at most capacity notifications (DefaultCapacity when <= 0)
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity}
}

// EventTypes lists the events a feed should be subscribed to
func (f *Feed) EventTypes() []string {
	return []string{events.PriceAlertEvent, events.ListingPriceUpdatedEvent}
}

func (f *Feed) Handle(event events.Event) error {
	switch event.Type() {
	case events.PriceAlertEvent:
		return f.handlePriceAlert(event)
	case events.ListingPriceUpdatedEvent:
		return f.handlePriceUpdated(event)
	default:
		return nil
	}
}

func (f *Feed) CanHandle(eventType string) bool {
	switch eventType {
	case events.PriceAlertEvent, events.ListingPriceUpdatedEvent:
		return true
	default:
		return false
	}
}

// Recent returns up to n notifications, newest first. n <= 0 returns all of them.
func (f *Feed) Recent(n int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.notifications) {
		n = len(f.notifications)
	}
	out := make([]Notification, 0, n)
	for i := len(f.notifications) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.notifications[i])
	}
	return out
}

func (f *Feed) handlePriceAlert(event events.Event) error {
	data, ok := event.Data().(events.PriceAlert)
	if !ok {
		return fmt.Errorf("invalid event data for price alert")
	}

	f.push(Notification{
		Kind:       KindPriceAlert,
		SupplierID: data.Supplier.ID,
		Message:    fmt.Sprintf("%s shared prices for %d items", data.Supplier.Name, len(data.Listings)),
		At:         event.Timestamp(),
	})
	return nil
}

func (f *Feed) handlePriceUpdated(event events.Event) error {
	data, ok := event.Data().(events.ListingPriceUpdated)
	if !ok {
		return fmt.Errorf("invalid event data for listing price updated")
	}

	oldPrice, newPrice := data.OldPrice, data.Listing.UnitPrice
	f.push(Notification{
		Kind:       KindPriceChanged,
		SupplierID: data.SupplierID,
		ItemName:   data.Listing.ItemName,
		OldPrice:   &oldPrice,
		NewPrice:   &newPrice,
		Message: fmt.Sprintf("%s now %s per %s (was %s)",
			data.Listing.ItemName, newPrice.StringFixed(2), data.Listing.Unit, oldPrice.StringFixed(2)),
		At: event.Timestamp(),
	})
	return nil
}

func (f *Feed) push(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notifications = append(f.notifications, n)
	if overflow := len(f.notifications) - f.capacity; overflow > 0 {
		f.notifications = append([]Notification(nil), f.notifications[overflow:]...)
	}
}
