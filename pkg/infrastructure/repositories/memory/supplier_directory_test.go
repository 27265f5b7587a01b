package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

func testProfile(id entities.SupplierID, name, distance string) entities.SupplierProfile {
	return entities.SupplierProfile{
		ID:       id,
		Name:     name,
		Distance: decimal.RequireFromString(distance),
		Rating:   decimal.RequireFromString("4.0"),
	}
}

func TestSupplierDirectory_RegisterAndStore(t *testing.T) {
	directory := NewSupplierDirectory(StoreOptions{})

	store, err := directory.Register(testProfile("fresh-mart", "Fresh Mart", "0.5"))
	if err != nil {
		t.Fatalf("Failed to register supplier: %v", err)
	}
	if _, err := store.AddListing("Potatoes", decimal.NewFromInt(25), "kg", 100); err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	retrieved, err := directory.Store("fresh-mart")
	if err != nil {
		t.Fatalf("Failed to get store: %v", err)
	}
	if len(retrieved.ListAll()) != 1 {
		t.Errorf("Expected the registered store to be returned")
	}

	if _, err := directory.Store("nowhere"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestSupplierDirectory_RejectsDuplicateAndInvalidProfiles(t *testing.T) {
	directory := NewSupplierDirectory(StoreOptions{})
	if _, err := directory.Register(testProfile("fresh-mart", "Fresh Mart", "0.5")); err != nil {
		t.Fatalf("Failed to register supplier: %v", err)
	}

	_, err := directory.Register(testProfile("fresh-mart", "Other", "1.0"))
	if !errors.Is(err, ErrDuplicateSupplier) {
		t.Errorf("Expected duplicate supplier error, got %v", err)
	}

	_, err = directory.Register(testProfile("far-away", "Far Away", "-1"))
	if !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected validation error for negative distance, got %v", err)
	}
	if len(directory.Profiles()) != 1 {
		t.Errorf("Expected failed registrations to leave 1 supplier, got %d", len(directory.Profiles()))
	}
}

func TestSupplierDirectory_GeneratesMissingID(t *testing.T) {
	directory := NewSupplierDirectory(StoreOptions{})

	store, err := directory.Register(testProfile("", "Roadside Stall", "0.2"))
	if err != nil {
		t.Fatalf("Failed to register supplier: %v", err)
	}
	if store.Profile().ID == "" {
		t.Fatal("Expected a generated supplier id")
	}
	if _, err := directory.Store(store.Profile().ID); err != nil {
		t.Errorf("Expected generated id to resolve, got %v", err)
	}
}

func TestSupplierDirectory_SnapshotsInRegistrationOrder(t *testing.T) {
	directory := NewSupplierDirectory(StoreOptions{})
	ids := []entities.SupplierID{"green-valley", "fresh-mart", "city-market"}
	for _, id := range ids {
		if _, err := directory.Register(testProfile(id, string(id), "1")); err != nil {
			t.Fatalf("Failed to register %s: %v", id, err)
		}
	}

	snapshots := directory.Snapshots()
	if len(snapshots) != len(ids) {
		t.Fatalf("Expected %d snapshots, got %d", len(ids), len(snapshots))
	}
	for i, id := range ids {
		if snapshots[i].ID != id {
			t.Errorf("Expected snapshot %d to be %s, got %s", i, id, snapshots[i].ID)
		}
		if snapshots[i].Listings == nil {
			t.Errorf("Expected non-nil listings map for %s", id)
		}
	}
}
