package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
)

// Supplier ids of the street food market
const (
	FreshMartID   = memory.FreshMartID
	GreenValleyID = memory.GreenValleyID
	CityMarketID  = memory.CityMarketID
)

// BuildStreetFoodTestData builds the three-supplier neighbourhood market and the built-in recipe catalog.
//
// Pav Bhaji for 50 servings against this market sources Potatoes and Onions from Fresh Mart,
// Tomatoes and Capsicum from Green Valley (Tomatoes short on stock), and leaves Pav bread and
// Butter unsourceable.
func BuildStreetFoodTestData(opts memory.StoreOptions) (*memory.SupplierDirectory, *memory.RecipeCatalog) {
	directory := memory.NewSupplierDirectory(opts)
	if err := directory.SeedMarket(memory.DemoMarket()); err != nil {
		panic(err)
	}
	return directory, memory.NewRecipeCatalog(opts.Log)
}

// BuildTiedPriceTestData builds three suppliers selling Potatoes where two tie on price:
// A at 28 (0.8 km), B at 25 (0.5 km), C at 25 (1.2 km).
func BuildTiedPriceTestData(opts memory.StoreOptions) *memory.SupplierDirectory {
	seed := func(id entities.SupplierID, price int64, distance string) memory.MarketSeed {
		return memory.MarketSeed{
			Profile: entities.SupplierProfile{
				ID:       id,
				Name:     "Supplier " + string(id),
				Distance: decimal.RequireFromString(distance),
				Rating:   decimal.NewFromInt(4),
			},
			Listings: []memory.ListingSeed{
				{ItemName: "Potatoes", UnitPrice: decimal.NewFromInt(price), Unit: "kg", StockQuantity: 100},
			},
		}
	}

	directory := memory.NewSupplierDirectory(opts)
	if err := directory.SeedMarket([]memory.MarketSeed{
		seed("A", 28, "0.8"),
		seed("B", 25, "0.5"),
		seed("C", 25, "1.2"),
	}); err != nil {
		panic(err)
	}
	return directory
}
