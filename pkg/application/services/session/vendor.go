package session

import (
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/application/services/alerts"
	"github.com/vsinha/vendorsupply/pkg/application/services/cart"
	"github.com/vsinha/vendorsupply/pkg/application/services/procurement"
	"github.com/vsinha/vendorsupply/pkg/application/services/scaling"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
)

// VendorSession is one vendor's view of the market: recipe scaling,
// supplier matching and a private cart
type VendorSession struct {
	caller    Context
	scaler    *scaling.Scaler
	matcher   *procurement.Matcher
	directory repositories.SupplierDirectory
	cart      *cart.Aggregator
	feed      *alerts.Feed
	log       *zap.Logger
}

// CandidateList pairs a scaled recipe with the suppliers able to source each ingredient
type CandidateList struct {
	Recipe     *dto.ScaledRecipe               `json:"recipe"`
	Candidates map[string][]entities.Candidate `json:"candidates"`
}

// PlanResult pairs a scaled recipe with its procurement plan
type PlanResult struct {
	Recipe *dto.ScaledRecipe    `json:"recipe"`
	Plan   dto.ProcurementPlan `json:"plan"`
}

// Caller returns the vendor owning the session
func (s *VendorSession) Caller() Context {
	return s.caller
}

// Ingredients scales a dish for the given servings
func (s *VendorSession) Ingredients(dishName string, servings int) (*dto.ScaledRecipe, error) {
	return s.scaler.ScaleDish(dishName, servings)
}

// Candidates scales a dish and matches every ingredient against current inventories
func (s *VendorSession) Candidates(dishName string, servings int) (*CandidateList, error) {
	recipe, err := s.scaler.ScaleDish(dishName, servings)
	if err != nil {
		return nil, err
	}
	return &CandidateList{
		Recipe:     recipe,
		Candidates: s.matcher.FindCandidates(recipe.Ingredients, s.directory.Snapshots()),
	}, nil
}

// Plan scales a dish and proposes the cheapest source for every ingredient
func (s *VendorSession) Plan(dishName string, servings int) (*PlanResult, error) {
	recipe, err := s.scaler.ScaleDish(dishName, servings)
	if err != nil {
		return nil, err
	}
	return &PlanResult{
		Recipe: recipe,
		Plan:   s.matcher.Plan(recipe.Ingredients, s.directory.Snapshots()),
	}, nil
}

// AddToCart adds a supplier's current listing for the item to the cart
func (s *VendorSession) AddToCart(supplierID entities.SupplierID, itemName string) (entities.CartLine, error) {
	store, err := s.directory.Store(supplierID)
	if err != nil {
		return entities.CartLine{}, err
	}
	listing, err := store.GetListing(itemName)
	if err != nil {
		return entities.CartLine{}, err
	}
	return s.cart.Add(entities.Candidate{Supplier: store.Profile(), Listing: *listing}), nil
}

// AddCandidate adds an already matched candidate to the cart
func (s *VendorSession) AddCandidate(candidate entities.Candidate) entities.CartLine {
	return s.cart.Add(candidate)
}

// RemoveFromCart drops the cart line at index; later lines shift down
func (s *VendorSession) RemoveFromCart(index int) error {
	return s.cart.Remove(index)
}

// ClearCart empties the cart
func (s *VendorSession) ClearCart() {
	s.cart.Clear()
}

// Cart returns the cart lines and total
func (s *VendorSession) Cart() dto.CartView {
	return s.cart.View()
}

// Reconcile reports cart lines that drifted from current supplier inventory
func (s *VendorSession) Reconcile() []dto.PriceDrift {
	return s.cart.Reconcile(s.directory.Snapshots())
}

// Deliveries subtotals the cart per supplier
func (s *VendorSession) Deliveries() []dto.SupplierSubtotal {
	return s.cart.GroupBySupplier()
}

// PlaceOrder turns the cart into an order for this vendor
func (s *VendorSession) PlaceOrder() (*entities.Order, error) {
	return s.cart.PlaceOrder(s.caller.CallerID())
}

// Alerts returns the latest supplier notifications, newest first
func (s *VendorSession) Alerts(n int) []alerts.Notification {
	if s.feed == nil {
		return []alerts.Notification{}
	}
	return s.feed.Recent(n)
}
