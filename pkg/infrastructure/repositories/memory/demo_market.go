package memory

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// Supplier ids of the demo neighbourhood market
const (
	FreshMartID   entities.SupplierID = "fresh-mart"
	GreenValleyID entities.SupplierID = "green-valley"
	CityMarketID  entities.SupplierID = "city-market"
)

// MarketSeed describes one supplier and its opening listings
type MarketSeed struct {
	Profile  entities.SupplierProfile
	Listings []ListingSeed
}

// ListingSeed is an opening listing of a MarketSeed
type ListingSeed struct {
	ItemName      string
	UnitPrice     decimal.Decimal
	Unit          string
	StockQuantity int64
}

// DemoMarket returns the three-supplier market used when no supplier files are configured
func DemoMarket() []MarketSeed {
	profile := func(id entities.SupplierID, name, distance, rating, location string) entities.SupplierProfile {
		return entities.SupplierProfile{
			ID:       id,
			Name:     name,
			Distance: decimal.RequireFromString(distance),
			Rating:   decimal.RequireFromString(rating),
			Location: location,
		}
	}
	listing := func(item string, price int64, unit string, stock int64) ListingSeed {
		return ListingSeed{ItemName: item, UnitPrice: decimal.NewFromInt(price), Unit: unit, StockQuantity: stock}
	}

	return []MarketSeed{
		{profile(FreshMartID, "Fresh Mart", "0.5", "4.5", "Andheri West, Mumbai"), []ListingSeed{
			listing("Potatoes", 25, "kg", 500),
			listing("Tomatoes", 40, "kg", 300),
			listing("Onions", 30, "kg", 200),
		}},
		{profile(GreenValleyID, "Green Valley", "0.8", "4.2", "Juhu, Mumbai"), []ListingSeed{
			listing("Potatoes", 28, "kg", 150),
			listing("Tomatoes", 38, "kg", 40),
			listing("Capsicum", 60, "kg", 100),
		}},
		{profile(CityMarketID, "City Market", "1.2", "4.0", "Dadar, Mumbai"), []ListingSeed{
			listing("Gram flour", 45, "kg", 200),
			listing("Oil", 120, "liter", 50),
			listing("Salt", 20, "kg", 100),
		}},
	}
}

// SeedMarket registers every seed supplier and adds its listings
func (d *SupplierDirectory) SeedMarket(seeds []MarketSeed) error {
	for _, seed := range seeds {
		store, err := d.RegisterStore(seed.Profile)
		if err != nil {
			return err
		}
		for _, l := range seed.Listings {
			if _, err := store.AddListing(l.ItemName, l.UnitPrice, l.Unit, l.StockQuantity); err != nil {
				return err
			}
		}
	}
	return nil
}
