package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/application/services/alerts"
	"github.com/vsinha/vendorsupply/pkg/application/services/session"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
)

func main() {
	// Wire the market: an event store feeding price alerts, the demo suppliers and the built-in recipes
	eventStore := events.NewInMemoryEventStore(nil)
	feed := alerts.NewFeed(alerts.DefaultCapacity)
	if err := eventStore.Subscribe(feed.EventTypes(), feed); err != nil {
		fmt.Printf("❌ Subscribe failed: %v\n", err)
		return
	}

	directory := memory.NewSupplierDirectory(memory.StoreOptions{Publisher: eventStore})
	if err := directory.SeedMarket(memory.DemoMarket()); err != nil {
		fmt.Printf("❌ Seeding market failed: %v\n", err)
		return
	}

	registry := session.NewRegistry(session.Dependencies{
		Catalog:   memory.NewRecipeCatalog(nil),
		Directory: directory,
		Publisher: eventStore,
		Feed:      feed,
	})

	vendor, err := registry.Vendor(session.StaticContext{ID: "raju-pav-bhaji", CallerAs: session.RoleVendor})
	if err != nil {
		fmt.Printf("❌ Vendor session failed: %v\n", err)
		return
	}

	fmt.Println("🍲 Planning Pav Bhaji for 50 servings...")
	result, err := vendor.Plan("Pav Bhaji", 50)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	for _, line := range result.Plan.Lines {
		fmt.Printf("  %s %s %s from %s at %s (cost %s)\n",
			line.Ingredient.QuantityString(),
			line.Ingredient.Unit,
			line.Ingredient.Name,
			line.Candidate.Supplier.Name,
			line.Candidate.Listing.UnitPrice.StringFixed(2),
			line.EstimatedCost.StringFixed(2))
		if line.StockShort {
			fmt.Printf("    ⚠️  only %d %s in stock\n", line.Candidate.Listing.StockQuantity, line.Ingredient.Unit)
		}
		vendor.AddCandidate(line.Candidate)
	}
	for _, name := range result.Plan.Unsourceable {
		fmt.Printf("  ❓ no nearby supplier lists %s\n", name)
	}
	fmt.Printf("Estimated Total: %s\n\n", result.Plan.EstimatedTotal.StringFixed(2))

	// Green Valley drops its tomato price and tells everyone
	supplier, err := registry.Supplier(session.StaticContext{ID: string(memory.GreenValleyID), CallerAs: session.RoleSupplier})
	if err != nil {
		fmt.Printf("❌ Supplier session failed: %v\n", err)
		return
	}
	if _, err := supplier.UpdatePrice("Tomatoes", decimal.NewFromInt(35)); err != nil {
		fmt.Printf("❌ Price update failed: %v\n", err)
		return
	}
	if _, err := supplier.SendPriceAlert(); err != nil {
		fmt.Printf("❌ Price alert failed: %v\n", err)
		return
	}

	fmt.Println("🔔 Alerts:")
	for _, n := range vendor.Alerts(5) {
		fmt.Printf("  %s\n", n.Message)
	}
	fmt.Println()

	fmt.Println("🔍 Cart check against current prices:")
	for _, drift := range vendor.Reconcile() {
		fmt.Printf("  #%d %s from %s: %s (cart %s, now %s)\n",
			drift.Index, drift.ItemName, drift.SupplierID, drift.Kind,
			drift.CartPrice.StringFixed(2), drift.CurrentPrice.StringFixed(2))
	}
	fmt.Println()

	fmt.Println("🚚 Deliveries:")
	for _, group := range vendor.Deliveries() {
		fmt.Printf("  %s: %d items, subtotal %s\n", group.SupplierName, group.Lines, group.Subtotal.StringFixed(2))
	}

	order, err := vendor.PlaceOrder()
	if err != nil {
		fmt.Printf("❌ Order failed: %v\n", err)
		return
	}
	fmt.Printf("\n✅ Order %s placed: %d lines, total %s\n", order.ID, len(order.Lines), order.Total.StringFixed(2))
}
