package cart

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// Options carries the collaborators of an Aggregator. Zero values are usable.
type Options struct {
	Clock     func() time.Time
	Publisher events.Publisher
	Log       *zap.Logger
}

// Aggregator is a vendor's cross-supplier cart. Lines keep the price seen
// when they were added; the total is always recomputed from the lines.
type Aggregator struct {
	mu        sync.RWMutex
	lines     []entities.CartLine
	clock     func() time.Time
	publisher events.Publisher
	log       *zap.Logger
}

// NewAggregator creates an empty cart
func NewAggregator(opts Options) *Aggregator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	opts.Log = logging.OrNop(opts.Log)
	return &Aggregator{
		lines:     []entities.CartLine{},
		clock:     opts.Clock,
		publisher: opts.Publisher,
		log:       opts.Log,
	}
}

// Add snapshots the candidate into a new line at the end of the cart.
// Stock is not checked.
func (a *Aggregator) Add(candidate entities.Candidate) entities.CartLine {
	line := entities.NewCartLine(candidate, a.clock())

	a.mu.Lock()
	a.lines = append(a.lines, line)
	count := len(a.lines)
	a.mu.Unlock()

	a.log.Debug("cart line added",
		zap.String("item", line.ItemName),
		zap.String("supplier_id", string(line.SupplierID)),
		zap.Stringer("price", line.UnitPrice),
		zap.Int("lines", count))
	return line
}

// Remove deletes the line at index; later lines shift down by one
func (a *Aggregator) Remove(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.lines) {
		return &entities.IndexOutOfRangeError{Index: index, Length: len(a.lines)}
	}
	a.lines = append(a.lines[:index], a.lines[index+1:]...)
	return nil
}

// Total sums the unit prices of the current lines
func (a *Aggregator) Total() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return entities.SumUnitPrices(a.lines)
}

// Clear empties the cart
func (a *Aggregator) Clear() {
	a.mu.Lock()
	a.lines = []entities.CartLine{}
	a.mu.Unlock()
}

// Lines returns a copy of the lines in insertion order
func (a *Aggregator) Lines() []entities.CartLine {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]entities.CartLine, len(a.lines))
	copy(out, a.lines)
	return out
}

// Len returns the number of lines
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.lines)
}

// View returns lines and total taken under one lock
func (a *Aggregator) View() dto.CartView {
	a.mu.RLock()
	defer a.mu.RUnlock()

	lines := make([]entities.CartLine, len(a.lines))
	copy(lines, a.lines)
	return dto.CartView{Lines: lines, Total: entities.SumUnitPrices(lines)}
}
