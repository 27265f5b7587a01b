package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, clock *fixedClock, publisher events.Publisher) *InventoryStore {
	t.Helper()
	profile, err := entities.NewSupplierProfile("fresh-mart", "Fresh Mart", decimal.RequireFromString("0.5"), decimal.RequireFromString("4.5"), "Andheri")
	if err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
	return NewInventoryStore(*profile, StoreOptions{Clock: clock.Now, Publisher: publisher})
}

func TestInventoryStore_AddAndGetListing(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock, nil)

	listing, err := store.AddListing("Potatoes", decimal.NewFromInt(25), "kg", 100)
	if err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}
	if !listing.LastUpdatedAt.Equal(clock.now) {
		t.Errorf("Expected LastUpdatedAt %v, got %v", clock.now, listing.LastUpdatedAt)
	}

	retrieved, err := store.GetListing("  POTATOES ")
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if retrieved.ItemName != "Potatoes" {
		t.Errorf("Expected item name Potatoes, got %s", retrieved.ItemName)
	}
	if !retrieved.UnitPrice.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected price 25, got %s", retrieved.UnitPrice)
	}
}

func TestInventoryStore_AddListingValidation(t *testing.T) {
	testCases := []struct {
		name  string
		item  string
		price decimal.Decimal
		unit  string
		stock int64
	}{
		{"zero price", "Potatoes", decimal.Zero, "kg", 10},
		{"negative price", "Potatoes", decimal.NewFromInt(-5), "kg", 10},
		{"negative stock", "Potatoes", decimal.NewFromInt(25), "kg", -1},
		{"empty item", "  ", decimal.NewFromInt(25), "kg", 10},
		{"empty unit", "Potatoes", decimal.NewFromInt(25), "", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t, &fixedClock{}, nil)
			_, err := store.AddListing(tc.item, tc.price, tc.unit, tc.stock)
			if !errors.Is(err, entities.ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if len(store.ListAll()) != 0 {
				t.Errorf("Expected store to stay empty after failed add")
			}
		})
	}
}

func TestInventoryStore_DuplicateListingLeavesFirstUnchanged(t *testing.T) {
	store := newTestStore(t, &fixedClock{}, nil)

	if _, err := store.AddListing("Potatoes", decimal.NewFromInt(25), "kg", 100); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	_, err := store.AddListing("potatoes", decimal.NewFromInt(30), "kg", 5)
	var dup *entities.DuplicateItemError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateItemError, got %v", err)
	}
	if dup.SupplierID != "fresh-mart" {
		t.Errorf("Expected supplier fresh-mart, got %s", dup.SupplierID)
	}

	listings := store.ListAll()
	if len(listings) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(listings))
	}
	if !listings[0].UnitPrice.Equal(decimal.NewFromInt(25)) || listings[0].StockQuantity != 100 {
		t.Errorf("Expected first listing unchanged, got %s / %d", listings[0].UnitPrice, listings[0].StockQuantity)
	}
}

func TestInventoryStore_UpdatePrice(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock, nil)
	if _, err := store.AddListing("Tomatoes", decimal.NewFromInt(40), "kg", 50); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	clock.Advance(time.Hour)
	updated, err := store.UpdatePrice("tomatoes", decimal.RequireFromString("38.50"))
	if err != nil {
		t.Fatalf("Failed to update price: %v", err)
	}
	if !updated.UnitPrice.Equal(decimal.RequireFromString("38.5")) {
		t.Errorf("Expected price 38.5, got %s", updated.UnitPrice)
	}
	if !updated.LastUpdatedAt.Equal(clock.now) {
		t.Errorf("Expected LastUpdatedAt to be stamped with %v, got %v", clock.now, updated.LastUpdatedAt)
	}
	if updated.StockQuantity != 50 {
		t.Errorf("Expected stock to stay 50, got %d", updated.StockQuantity)
	}
}

func TestInventoryStore_UpdateMissingItemLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore(t, &fixedClock{}, nil)
	if _, err := store.AddListing("Onions", decimal.NewFromInt(30), "kg", 80); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}
	before := store.ListAll()

	_, err := store.UpdatePrice("Saffron", decimal.NewFromInt(500))
	if !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("Expected not found error, got %v", err)
	}
	_, err = store.UpdateStock("Saffron", 5)
	if !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("Expected not found error from UpdateStock, got %v", err)
	}

	after := store.ListAll()
	if len(after) != len(before) {
		t.Fatalf("Expected %d listings, got %d", len(before), len(after))
	}
	if !after[0].UnitPrice.Equal(before[0].UnitPrice) || after[0].StockQuantity != before[0].StockQuantity {
		t.Errorf("Expected listing unchanged after failed update")
	}
}

func TestInventoryStore_UpdateRejectsInvalidValues(t *testing.T) {
	store := newTestStore(t, &fixedClock{}, nil)
	if _, err := store.AddListing("Onions", decimal.NewFromInt(30), "kg", 80); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	if _, err := store.UpdatePrice("Onions", decimal.Zero); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected validation error for zero price, got %v", err)
	}
	if _, err := store.UpdateStock("Onions", -3); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected validation error for negative stock, got %v", err)
	}

	listing, err := store.GetListing("Onions")
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if !listing.UnitPrice.Equal(decimal.NewFromInt(30)) || listing.StockQuantity != 80 {
		t.Errorf("Expected listing unchanged, got %s / %d", listing.UnitPrice, listing.StockQuantity)
	}
}

func TestInventoryStore_ListAllPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t, &fixedClock{}, nil)
	items := []string{"Potatoes", "Tomatoes", "Onions"}
	for i, item := range items {
		if _, err := store.AddListing(item, decimal.NewFromInt(int64(10+i)), "kg", 10); err != nil {
			t.Fatalf("Failed to add %s: %v", item, err)
		}
	}

	listings := store.ListAll()
	for i, item := range items {
		if listings[i].ItemName != item {
			t.Errorf("Expected listing %d to be %s, got %s", i, item, listings[i].ItemName)
		}
	}

	// Mutating the returned slice must not reach the store
	listings[0].UnitPrice = decimal.NewFromInt(999)
	if got, _ := store.GetListing("Potatoes"); !got.UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected stored price 10, got %s", got.UnitPrice)
	}
}

func TestInventoryStore_Snapshot(t *testing.T) {
	store := newTestStore(t, &fixedClock{}, nil)
	if _, err := store.AddListing("Potatoes", decimal.NewFromInt(25), "kg", 100); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}
	if _, err := store.AddListing("Tomatoes", decimal.RequireFromString("40.5"), "kg", 10); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	snapshot := store.Snapshot()
	if snapshot.ID != "fresh-mart" {
		t.Errorf("Expected snapshot of fresh-mart, got %s", snapshot.ID)
	}
	if _, ok := snapshot.Listing("TOMATOES"); !ok {
		t.Errorf("Expected snapshot to contain Tomatoes")
	}

	tomatoes, _ := snapshot.Listing("tomatoes")
	if !tomatoes.StockValue().Equal(decimal.NewFromInt(405)) {
		t.Errorf("Expected tomatoes stock value 405, got %s", tomatoes.StockValue())
	}
}

func TestInventoryStore_PublishesListingEvents(t *testing.T) {
	eventStore := events.NewInMemoryEventStore(nil)
	store := newTestStore(t, &fixedClock{}, eventStore)

	if _, err := store.AddListing("Potatoes", decimal.NewFromInt(25), "kg", 100); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}
	if _, err := store.UpdatePrice("Potatoes", decimal.NewFromInt(22)); err != nil {
		t.Fatalf("Failed to update price: %v", err)
	}
	if _, err := store.UpdateStock("Potatoes", 60); err != nil {
		t.Fatalf("Failed to update stock: %v", err)
	}
	// Failed operations publish nothing
	_, _ = store.UpdatePrice("Saffron", decimal.NewFromInt(1))

	stream, err := eventStore.ReadEvents("fresh-mart", 0)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}
	expected := []string{events.ListingAddedEvent, events.ListingPriceUpdatedEvent, events.ListingStockUpdatedEvent}
	if len(stream) != len(expected) {
		t.Fatalf("Expected %d events, got %d", len(expected), len(stream))
	}
	for i, eventType := range expected {
		if stream[i].Type() != eventType {
			t.Errorf("Expected event %d to be %s, got %s", i, eventType, stream[i].Type())
		}
	}
}
