package order

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeadmin/internal/domain"
)

// Order is a read-only snapshot of a placed order together with its items,
// adjustments and billing address. It is never patched after construction;
// reload it when the stored order changes.
type Order struct {
	header      domain.Order
	items       []domain.OrderItem
	adjustments []domain.Adjustment
	address     domain.Address
	sequential  bool
}

// Snapshot holds everything loaded for one order
type Snapshot struct {
	Header      domain.Order
	Items       []domain.OrderItem
	Adjustments []domain.Adjustment
	// Address is nil when the order has no billing address
	Address *domain.Address
	// SequentialNumbers reports whether sequential order numbers are enabled
	SequentialNumbers bool
}

// New builds an order from a loaded snapshot
func New(s Snapshot) *Order {
	o := &Order{
		header:      cloneHeader(s.Header),
		items:       cloneItems(s.Items),
		adjustments: cloneAdjustments(s.Adjustments),
		sequential:  s.SequentialNumbers,
	}
	if s.Address != nil {
		o.address = *s.Address
	}
	return o
}

// ID returns the order identifier
func (o *Order) ID() int64 {
	return o.header.ID
}

// Header returns the stored header fields
func (o *Order) Header() domain.Order {
	return cloneHeader(o.header)
}

// Items returns the order's items ordered by cart position
func (o *Order) Items() []domain.OrderItem {
	return cloneItems(o.items)
}

// Adjustments returns the order-level adjustments ordered by creation
func (o *Order) Adjustments() []domain.Adjustment {
	return cloneAdjustments(o.adjustments)
}

// Discounts returns the order-level discount adjustments
func (o *Order) Discounts() []domain.Adjustment {
	return Discounts(cloneAdjustments(o.adjustments))
}

// Taxes returns the order-level tax adjustments
func (o *Order) Taxes() []domain.Adjustment {
	return Taxes(cloneAdjustments(o.adjustments))
}

// Credits returns the order-level credit adjustments
func (o *Order) Credits() []domain.Adjustment {
	return Credits(cloneAdjustments(o.adjustments))
}

// Fees returns order and item fees keyed by fee reference
func (o *Order) Fees() map[string]domain.Adjustment {
	return Fees(cloneAdjustments(o.adjustments), cloneItems(o.items))
}

// TaxRate returns the effective tax rate, zero when the order carries no tax
func (o *Order) TaxRate() decimal.Decimal {
	return TaxRate(o.adjustments)
}

// Breakdown returns every derived adjustment view at once
func (o *Order) Breakdown() Breakdown {
	return Classify(cloneAdjustments(o.adjustments), cloneItems(o.items))
}

// Address returns the billing address. An order without one yields the zero
// Address, which is always safe to render.
func (o *Order) Address() domain.Address {
	return o.address
}

// DisplayNumber returns the sequential order number when sequential
// numbering is enabled and one was assigned, otherwise the numeric ID.
func (o *Order) DisplayNumber() string {
	if o.sequential && o.header.OrderNumber != "" {
		return o.header.OrderNumber
	}
	return strconv.FormatInt(o.header.ID, 10)
}

// IsComplete reports whether the order reached the complete status
func (o *Order) IsComplete() bool {
	return o.header.Status == domain.OrderStatusComplete
}

// The clone helpers copy every slice and pointer so that no value handed in
// or out shares memory with an Order.

func cloneHeader(h domain.Order) domain.Order {
	h.ParentID = clonePtr(h.ParentID)
	h.DateCompleted = clonePtr(h.DateCompleted)
	h.DateRefundable = clonePtr(h.DateRefundable)
	return h
}

func cloneItems(items []domain.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		item.PriceID = clonePtr(item.PriceID)
		if item.Fees != nil {
			item.Fees = cloneAdjustments(item.Fees)
		}
		out[i] = item
	}
	return out
}

func cloneAdjustments(adjustments []domain.Adjustment) []domain.Adjustment {
	out := make([]domain.Adjustment, len(adjustments))
	for i, adj := range adjustments {
		adj.TypeID = clonePtr(adj.TypeID)
		adj.FeeReference = clonePtr(adj.FeeReference)
		out[i] = adj
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
