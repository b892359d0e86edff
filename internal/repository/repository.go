package repository

import (
	"context"

	"github.com/jafarshop/storeadmin/internal/domain"
)

// OrderRepository reads order headers
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// OrderItemRepository reads order items
type OrderItemRepository interface {
	// ListByOrderID returns the items of an order ordered by cart position
	ListByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)
}

// AdjustmentRepository reads order and order item adjustments
type AdjustmentRepository interface {
	// ListByObject returns an owner's adjustments ordered by creation
	ListByObject(ctx context.Context, objectID int64, objectType domain.ObjectType) ([]*domain.Adjustment, error)
	// ListItemFees returns the fee adjustments of an order item
	ListItemFees(ctx context.Context, itemID int64) ([]*domain.Adjustment, error)
}

// AddressRepository reads billing addresses
type AddressRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Address, error)
}

// OptionRepository reads store options
type OptionRepository interface {
	Get(ctx context.Context, name string) (string, error)
	GetBool(ctx context.Context, name string) (bool, error)
}

// TaxRateRepository stores the tax rate table
type TaxRateRepository interface {
	List(ctx context.Context) ([]*domain.TaxRateRow, error)
	// ReplaceAll makes the stored table equal to rows, returning them with
	// IDs assigned to new rows
	ReplaceAll(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error)
}

// RegionRepository reads country subdivisions
type RegionRepository interface {
	ListByCountry(ctx context.Context, countryCode string) ([]domain.Region, error)
}

// Repositories groups every repository
type Repositories struct {
	Order      OrderRepository
	OrderItem  OrderItemRepository
	Adjustment AdjustmentRepository
	Address    AddressRepository
	Option     OptionRepository
	TaxRate    TaxRateRepository
	Region     RegionRepository
}
