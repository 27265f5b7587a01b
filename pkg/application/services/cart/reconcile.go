package cart

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// Reconcile compares every line with the supplier's current listing and
// reports the lines that drifted. Nothing is changed; the vendor decides
// whether to remove and re-add a line.
//
// A missing supplier or listing is the only drift reported for its line.
// Otherwise a line reports, in this order, unit_changed, out_of_stock and
// price_changed, one PriceDrift per kind that applies.
func (a *Aggregator) Reconcile(suppliers []entities.Supplier) []dto.PriceDrift {
	byID := make(map[entities.SupplierID]entities.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}

	drifts := []dto.PriceDrift{}
	for i, line := range a.Lines() {
		drift := dto.PriceDrift{
			Index:        i,
			ItemName:     line.ItemName,
			SupplierID:   line.SupplierID,
			CartPrice:    line.UnitPrice,
			CurrentPrice: decimal.Zero,
		}

		supplier, ok := byID[line.SupplierID]
		if !ok {
			drift.Kind = dto.DriftSupplierMissing
			drifts = append(drifts, drift)
			continue
		}
		listing, ok := supplier.Listing(line.ItemName)
		if !ok {
			drift.Kind = dto.DriftListingRemoved
			drifts = append(drifts, drift)
			continue
		}

		drift.CurrentPrice = listing.UnitPrice
		if !entities.SameUnit(listing.Unit, line.Unit) {
			drift.Kind = dto.DriftUnitChanged
			drifts = append(drifts, drift)
		}
		if listing.StockQuantity == 0 {
			drift.Kind = dto.DriftOutOfStock
			drifts = append(drifts, drift)
		}
		if !listing.UnitPrice.Equal(line.UnitPrice) {
			drift.Kind = dto.DriftPriceChanged
			drifts = append(drifts, drift)
		}
	}

	if len(drifts) > 0 {
		a.log.Debug("cart drifted from supplier inventory", zap.Int("lines", len(drifts)))
	}
	return drifts
}

// GroupBySupplier subtotals the cart per supplier, in the order suppliers first appear
func (a *Aggregator) GroupBySupplier() []dto.SupplierSubtotal {
	groups := []dto.SupplierSubtotal{}
	index := make(map[entities.SupplierID]int)

	for _, line := range a.Lines() {
		i, ok := index[line.SupplierID]
		if !ok {
			i = len(groups)
			index[line.SupplierID] = i
			groups = append(groups, dto.SupplierSubtotal{
				SupplierID:   line.SupplierID,
				SupplierName: line.SupplierName,
				Subtotal:     decimal.Zero,
			})
		}
		groups[i].Lines++
		groups[i].Subtotal = groups[i].Subtotal.Add(line.UnitPrice)
	}

	return groups
}
