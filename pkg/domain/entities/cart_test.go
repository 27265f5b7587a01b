package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewCartLine_SnapshotsCandidate(t *testing.T) {
	at := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	candidate := Candidate{
		Supplier: SupplierProfile{ID: "green-valley", Name: "Green Valley", Distance: decimal.RequireFromString("0.8")},
		Listing:  Listing{ItemName: "Capsicum", UnitPrice: decimal.NewFromInt(60), Unit: "kg", StockQuantity: 100},
	}

	line := NewCartLine(candidate, at)
	candidate.Listing.UnitPrice = decimal.NewFromInt(99)

	if !line.UnitPrice.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected snapshot price 60, got %s", line.UnitPrice)
	}
	if line.SupplierID != "green-valley" || line.SupplierName != "Green Valley" {
		t.Errorf("Expected supplier green-valley/Green Valley, got %s/%s", line.SupplierID, line.SupplierName)
	}
	if !line.AddedAt.Equal(at) {
		t.Errorf("Expected AddedAt %v, got %v", at, line.AddedAt)
	}
}

func TestSumUnitPrices(t *testing.T) {
	lines := []CartLine{
		{UnitPrice: decimal.NewFromInt(25)},
		{UnitPrice: decimal.RequireFromString("38.5")},
	}
	if got := SumUnitPrices(lines); !got.Equal(decimal.RequireFromString("63.5")) {
		t.Errorf("Expected 63.5, got %s", got)
	}
	if got := SumUnitPrices(nil); !got.IsZero() {
		t.Errorf("Expected zero for empty lines, got %s", got)
	}
}
