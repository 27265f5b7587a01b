package events

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

const (
	ListingAddedEvent        = "listing.added"
	ListingPriceUpdatedEvent = "listing.price_updated"
	ListingStockUpdatedEvent = "listing.stock_updated"

	PriceAlertEvent = "price.alert"

	OrderPlacedEvent = "order.placed"
)

type ListingAdded struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	Listing    entities.Listing    `json:"listing"`
}

type ListingPriceUpdated struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	OldPrice   decimal.Decimal     `json:"old_price"`
	Listing    entities.Listing    `json:"listing"`
}

type ListingStockUpdated struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	OldStock   int64               `json:"old_stock"`
	Listing    entities.Listing    `json:"listing"`
}

type PriceAlert struct {
	Supplier entities.SupplierProfile `json:"supplier"`
	Listings []entities.Listing       `json:"listings"`
}

type OrderPlaced struct {
	Order entities.Order `json:"order"`
}

func NewListingAddedEvent(supplierID entities.SupplierID, listing entities.Listing) Event {
	return NewEvent(ListingAddedEvent, string(supplierID), ListingAdded{
		SupplierID: supplierID,
		Listing:    listing,
	}, listing.LastUpdatedAt)
}

func NewListingPriceUpdatedEvent(
	supplierID entities.SupplierID,
	oldPrice decimal.Decimal,
	listing entities.Listing,
) Event {
	return NewEvent(ListingPriceUpdatedEvent, string(supplierID), ListingPriceUpdated{
		SupplierID: supplierID,
		OldPrice:   oldPrice,
		Listing:    listing,
	}, listing.LastUpdatedAt)
}

func NewListingStockUpdatedEvent(supplierID entities.SupplierID, oldStock int64, listing entities.Listing) Event {
	return NewEvent(ListingStockUpdatedEvent, string(supplierID), ListingStockUpdated{
		SupplierID: supplierID,
		OldStock:   oldStock,
		Listing:    listing,
	}, listing.LastUpdatedAt)
}

func NewPriceAlertEvent(supplier entities.SupplierProfile, listings []entities.Listing, at time.Time) Event {
	return NewEvent(PriceAlertEvent, string(supplier.ID), PriceAlert{
		Supplier: supplier,
		Listings: listings,
	}, at)
}

func NewOrderPlacedEvent(order entities.Order) Event {
	return NewEvent(OrderPlacedEvent, order.VendorID, OrderPlaced{Order: order}, order.PlacedAt)
}
