package domain

// OrderStatus represents the stored status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusComplete   OrderStatus = "complete"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusRevoked    OrderStatus = "revoked"
	OrderStatusAbandoned  OrderStatus = "abandoned"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusComplete,
		OrderStatusRefunded,
		OrderStatusFailed,
		OrderStatusRevoked,
		OrderStatusAbandoned:
		return true
	default:
		return false
	}
}

// AdjustmentType is the kind of modifier an adjustment applies
type AdjustmentType string

const (
	AdjustmentTypeDiscount AdjustmentType = "discount"
	AdjustmentTypeTaxRate  AdjustmentType = "tax_rate"
	AdjustmentTypeFee      AdjustmentType = "fee"
	AdjustmentTypeCredit   AdjustmentType = "credit"
)

// IsValid checks if the adjustment type is valid
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeDiscount,
		AdjustmentTypeTaxRate,
		AdjustmentTypeFee,
		AdjustmentTypeCredit:
		return true
	default:
		return false
	}
}

// ObjectType identifies what an adjustment is attached to
type ObjectType string

const (
	ObjectTypeOrder     ObjectType = "order"
	ObjectTypeOrderItem ObjectType = "order_item"
)

// TaxRateStatus is the activation status of a tax rate
type TaxRateStatus string

const (
	TaxRateStatusActive   TaxRateStatus = "active"
	TaxRateStatusInactive TaxRateStatus = "inactive"
)

// IsValid checks if the tax rate status is valid
func (s TaxRateStatus) IsValid() bool {
	return s == TaxRateStatusActive || s == TaxRateStatusInactive
}

// TaxRateScope is the stored scope of a tax rate row
type TaxRateScope string

const (
	// TaxRateScopeGlobal applies to the whole country (or every country when
	// the country is empty)
	TaxRateScopeGlobal TaxRateScope = "global"
	// TaxRateScopeRegion applies to a single region of a country
	TaxRateScopeRegion TaxRateScope = "region"
)

// IsValid checks if the scope is valid
func (s TaxRateScope) IsValid() bool {
	return s == TaxRateScopeGlobal || s == TaxRateScopeRegion
}
