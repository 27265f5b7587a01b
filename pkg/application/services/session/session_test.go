package session

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/vendorsupply/pkg/application/services/alerts"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/vendorsupply/pkg/infrastructure/testing"
)

var testNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) (*Registry, *alerts.Feed) {
	t.Helper()
	store := events.NewInMemoryEventStore(nil)
	feed := alerts.NewFeed(0)
	require.NoError(t, store.Subscribe(feed.EventTypes(), feed))

	clock := func() time.Time { return testNow }
	directory, catalog := testhelpers.BuildStreetFoodTestData(memory.StoreOptions{Clock: clock, Publisher: store})
	return NewRegistry(Dependencies{
		Catalog:   catalog,
		Directory: directory,
		Publisher: store,
		Feed:      feed,
		Clock:     clock,
	}), feed
}

func vendor(id string) StaticContext   { return StaticContext{ID: id, CallerAs: RoleVendor} }
func supplier(id string) StaticContext { return StaticContext{ID: id, CallerAs: RoleSupplier} }

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Vendor ")
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestRegistry_EnforcesRoles(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Vendor(supplier("fresh-mart"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = registry.Supplier(vendor("ravi"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = registry.Vendor(StaticContext{CallerAs: RoleVendor})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = registry.Supplier(supplier("unknown-supplier"))
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRegistry_OneCartPerVendor(t *testing.T) {
	registry, _ := newTestRegistry(t)

	ravi, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)
	_, err = ravi.AddToCart(testhelpers.FreshMartID, "Potatoes")
	require.NoError(t, err)

	again, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)
	assert.Same(t, ravi, again)
	assert.Len(t, again.Cart().Lines, 1)

	priya, err := registry.Vendor(vendor("priya"))
	require.NoError(t, err)
	assert.Empty(t, priya.Cart().Lines)
}

func TestVendorSession_ShoppingFlow(t *testing.T) {
	registry, _ := newTestRegistry(t)
	session, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)

	candidates, err := session.Candidates("pav bhaji", 50)
	require.NoError(t, err)
	assert.Len(t, candidates.Candidates, 6)
	assert.Empty(t, candidates.Candidates["Butter"])

	for _, ingredient := range candidates.Recipe.Ingredients {
		if ranked := candidates.Candidates[ingredient.Name]; len(ranked) > 0 {
			session.AddCandidate(ranked[0])
		}
	}

	view := session.Cart()
	require.Len(t, view.Lines, 4)
	// 25 + 38 + 30 + 60
	assert.True(t, decimal.NewFromInt(153).Equal(view.Total), "total %s", view.Total)
	assert.Len(t, session.Deliveries(), 2)

	order, err := session.PlaceOrder()
	require.NoError(t, err)
	assert.Equal(t, "ravi", order.VendorID)
	assert.Empty(t, session.Cart().Lines)
}

func TestVendorSession_AddToCartErrors(t *testing.T) {
	registry, _ := newTestRegistry(t)
	session, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)

	_, err = session.AddToCart("nowhere", "Potatoes")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = session.AddToCart(testhelpers.CityMarketID, "Potatoes")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.ErrorIs(t, session.RemoveFromCart(0), entities.ErrIndexOutOfRange)
}

func TestVendorSession_PlanAndValidation(t *testing.T) {
	registry, _ := newTestRegistry(t)
	session, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)

	result, err := session.Plan("Pav Bhaji", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pav bread", "Butter"}, result.Plan.Unsourceable)

	_, err = session.Plan("Pav Bhaji", 0)
	assert.ErrorIs(t, err, entities.ErrValidation)
	_, err = session.Ingredients("Pav Bhaji", -1)
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestSupplierSession_ManagesOwnInventory(t *testing.T) {
	registry, feed := newTestRegistry(t)
	freshMart, err := registry.Supplier(supplier(string(testhelpers.FreshMartID)))
	require.NoError(t, err)

	_, err = freshMart.AddListing("Capsicum", decimal.NewFromInt(55), "kg", 20)
	require.NoError(t, err)
	_, err = freshMart.AddListing("potatoes", decimal.NewFromInt(20), "kg", 20)
	assert.ErrorIs(t, err, entities.ErrDuplicateItem)

	updated, err := freshMart.UpdatePrice("Potatoes", decimal.NewFromInt(22))
	require.NoError(t, err)
	assert.Equal(t, testNow, updated.LastUpdatedAt)

	stats := freshMart.Stats()
	assert.Equal(t, 4, stats.TotalItems)
	// 22*500 + 40*300 + 30*200 + 55*20
	assert.True(t, decimal.NewFromInt(30100).Equal(stats.TotalStockValue), "value %s", stats.TotalStockValue)

	_, err = freshMart.SendPriceAlert()
	require.NoError(t, err)

	notifications := feed.Recent(0)
	require.Len(t, notifications, 2)
	assert.Equal(t, alerts.KindPriceAlert, notifications[0].Kind)
	assert.Equal(t, alerts.KindPriceChanged, notifications[1].Kind)

	ravi, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)
	assert.Len(t, ravi.Alerts(1), 1)
}

func TestVendorSession_ReconcileSeesSupplierChanges(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ravi, err := registry.Vendor(vendor("ravi"))
	require.NoError(t, err)
	_, err = ravi.AddToCart(testhelpers.GreenValleyID, "Tomatoes")
	require.NoError(t, err)

	greenValley, err := registry.Supplier(supplier(string(testhelpers.GreenValleyID)))
	require.NoError(t, err)
	_, err = greenValley.UpdatePrice("Tomatoes", decimal.NewFromInt(42))
	require.NoError(t, err)

	drifts := ravi.Reconcile()
	require.Len(t, drifts, 1)
	assert.True(t, decimal.NewFromInt(42).Equal(drifts[0].CurrentPrice))
	assert.True(t, decimal.NewFromInt(38).Equal(ravi.Cart().Total))
}
