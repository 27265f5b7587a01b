package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/services/alerts"
	"github.com/vsinha/vendorsupply/pkg/application/services/cart"
	"github.com/vsinha/vendorsupply/pkg/application/services/procurement"
	"github.com/vsinha/vendorsupply/pkg/application/services/scaling"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// Dependencies are shared by every session a Registry hands out
type Dependencies struct {
	Catalog   repositories.RecipeCatalog
	Directory repositories.SupplierDirectory
	Publisher events.Publisher
	Feed      *alerts.Feed
	Clock     func() time.Time
	Log       *zap.Logger
}

// Registry keeps one VendorSession, and so one cart, per vendor
type Registry struct {
	mu      sync.Mutex
	vendors map[string]*VendorSession
	deps    Dependencies
	scaler  *scaling.Scaler
	matcher *procurement.Matcher
}

// NewRegistry creates a registry over the shared catalog and supplier directory
func NewRegistry(deps Dependencies) *Registry {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	deps.Log = logging.OrNop(deps.Log)
	return &Registry{
		vendors: make(map[string]*VendorSession),
		deps:    deps,
		scaler:  scaling.NewScaler(deps.Catalog, deps.Log),
		matcher: procurement.NewMatcher(deps.Log),
	}
}

// Catalog exposes the recipe catalog sessions scale from
func (r *Registry) Catalog() repositories.RecipeCatalog {
	return r.deps.Catalog
}

// Vendor returns the caller's vendor session, creating it on first use
func (r *Registry) Vendor(caller Context) (*VendorSession, error) {
	if err := RequireRole(caller, RoleVendor); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.vendors[caller.CallerID()]; ok {
		return s, nil
	}

	log := r.deps.Log.With(zap.String("vendor_id", caller.CallerID()))
	s := &VendorSession{
		caller:    caller,
		scaler:    r.scaler,
		matcher:   r.matcher,
		directory: r.deps.Directory,
		cart: cart.NewAggregator(cart.Options{
			Clock:     r.deps.Clock,
			Publisher: r.deps.Publisher,
			Log:       log,
		}),
		feed: r.deps.Feed,
		log:  log,
	}
	r.vendors[caller.CallerID()] = s
	log.Info("vendor session opened")
	return s, nil
}

// Supplier returns a session over the inventory of the supplier whose id is the caller id
func (r *Registry) Supplier(caller Context) (*SupplierSession, error) {
	if err := RequireRole(caller, RoleSupplier); err != nil {
		return nil, err
	}

	store, err := r.deps.Directory.Store(entities.SupplierID(caller.CallerID()))
	if err != nil {
		return nil, err
	}

	return &SupplierSession{
		caller:    caller,
		store:     store,
		publisher: r.deps.Publisher,
		clock:     r.deps.Clock,
		log:       r.deps.Log.With(zap.String("supplier_id", caller.CallerID())),
	}, nil
}
