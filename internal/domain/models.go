package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the stored header of a placed order
type Order struct {
	ID             int64
	ParentID       *int64
	OrderNumber    string
	Status         OrderStatus
	Type           string
	UserID         int64
	CustomerID     int64
	Email          string
	IP             string
	Gateway        string
	Mode           string
	Currency       string
	PaymentKey     string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	DateCreated    time.Time
	DateModified   time.Time
	DateCompleted  *time.Time
	DateRefundable *time.Time
}

// OrderItem is one purchased line of an order
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	PriceID     *int64
	CartIndex   int
	Type        string
	Status      string
	Quantity    int
	Amount      decimal.Decimal
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	DateCreated time.Time
	// Fees holds the item's own fee adjustments
	Fees []Adjustment
}

// Adjustment is a discount, tax, fee or credit attached to an order or an
// order item. Type never changes after creation.
type Adjustment struct {
	ID          int64
	ObjectID    int64
	ObjectType  ObjectType
	TypeID      *int64
	Type        AdjustmentType
	Description string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	// Amount is the adjustment's value; for tax_rate adjustments it is the
	// rate percentage
	Amount decimal.Decimal
	// FeeReference is the external fee identifier, set on fee adjustments
	FeeReference *string
	DateCreated  time.Time
}

// FeeKey returns the fee identifier used to fold fees together
func (a Adjustment) FeeKey() string {
	if a.FeeReference == nil {
		return ""
	}
	return *a.FeeReference
}

// Address is an order's billing address
type Address struct {
	ID         int64
	OrderID    int64
	Name       string
	Address    string
	Address2   string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// TaxRateRow is a stored tax rate as exchanged with the admin API
type TaxRateRow struct {
	ID          *int64
	CountryCode string
	RegionLabel string
	Scope       TaxRateScope
	Amount      decimal.Decimal
	Status      TaxRateStatus
}

// Region is a subdivision of a country
type Region struct {
	CountryCode string
	Code        string
	Name        string
}
