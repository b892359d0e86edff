package order

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeadmin/internal/domain"
)

// Breakdown partitions an order's adjustments by type
type Breakdown struct {
	Discounts []domain.Adjustment
	Taxes     []domain.Adjustment
	Credits   []domain.Adjustment
	// Fees is keyed by fee reference; later occurrences replace earlier ones
	Fees map[string]domain.Adjustment
	// Other holds adjustments whose type is not recognised
	Other   []domain.Adjustment
	TaxRate decimal.Decimal
}

// Classify splits the order-level adjustments into discount, tax, credit and
// fee buckets, folding in each item's own fees after the order-level ones.
func Classify(adjustments []domain.Adjustment, items []domain.OrderItem) Breakdown {
	b := Breakdown{
		Discounts: make([]domain.Adjustment, 0),
		Taxes:     make([]domain.Adjustment, 0),
		Credits:   make([]domain.Adjustment, 0),
		Other:     make([]domain.Adjustment, 0),
	}

	for _, adj := range adjustments {
		switch adj.Type {
		case domain.AdjustmentTypeDiscount:
			b.Discounts = append(b.Discounts, adj)
		case domain.AdjustmentTypeTaxRate:
			b.Taxes = append(b.Taxes, adj)
		case domain.AdjustmentTypeCredit:
			b.Credits = append(b.Credits, adj)
		case domain.AdjustmentTypeFee:
			// folded below
		default:
			b.Other = append(b.Other, adj)
		}
	}

	b.Fees = Fees(adjustments, items)
	b.TaxRate = TaxRate(adjustments)

	return b
}

// Discounts returns the discount adjustments in their original order
func Discounts(adjustments []domain.Adjustment) []domain.Adjustment {
	return ofType(adjustments, domain.AdjustmentTypeDiscount)
}

// Taxes returns the tax_rate adjustments in their original order
func Taxes(adjustments []domain.Adjustment) []domain.Adjustment {
	return ofType(adjustments, domain.AdjustmentTypeTaxRate)
}

// Credits returns the credit adjustments in their original order
func Credits(adjustments []domain.Adjustment) []domain.Adjustment {
	return ofType(adjustments, domain.AdjustmentTypeCredit)
}

// Fees maps fee reference to fee adjustment. Order-level fees are inserted
// first, then each item's fees in item order. Every insert overwrites the
// existing entry under the same key.
func Fees(adjustments []domain.Adjustment, items []domain.OrderItem) map[string]domain.Adjustment {
	fees := make(map[string]domain.Adjustment)

	for _, adj := range adjustments {
		if adj.Type == domain.AdjustmentTypeFee {
			fees[adj.FeeKey()] = adj
		}
	}

	for _, item := range items {
		for _, fee := range item.Fees {
			if fee.Type == domain.AdjustmentTypeFee {
				fees[fee.FeeKey()] = fee
			}
		}
	}

	return fees
}

// TaxRate returns the amount of the first tax adjustment, or zero when there
// is none.
func TaxRate(adjustments []domain.Adjustment) decimal.Decimal {
	for _, adj := range adjustments {
		if adj.Type == domain.AdjustmentTypeTaxRate {
			return adj.Amount
		}
	}
	return decimal.Zero
}

func ofType(adjustments []domain.Adjustment, t domain.AdjustmentType) []domain.Adjustment {
	out := make([]domain.Adjustment, 0)
	for _, adj := range adjustments {
		if adj.Type == t {
			out = append(out, adj)
		}
	}
	return out
}
