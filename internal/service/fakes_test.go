package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/repository"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

type fakeOrders struct {
	orders map[int64]*domain.Order
	err    error
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	copied := *o
	return &copied, nil
}

type fakeItems struct {
	items map[int64][]*domain.OrderItem
}

func (f *fakeItems) ListByOrderID(_ context.Context, orderID int64) ([]*domain.OrderItem, error) {
	return f.items[orderID], nil
}

type fakeAdjustments struct {
	byOrder map[int64][]*domain.Adjustment
	byItem  map[int64][]*domain.Adjustment
	err     error
}

func (f *fakeAdjustments) ListByObject(_ context.Context, objectID int64, _ domain.ObjectType) ([]*domain.Adjustment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOrder[objectID], nil
}

func (f *fakeAdjustments) ListItemFees(_ context.Context, itemID int64) ([]*domain.Adjustment, error) {
	return f.byItem[itemID], nil
}

type fakeAddresses struct {
	addresses map[int64]*domain.Address
}

func (f *fakeAddresses) GetByOrderID(_ context.Context, orderID int64) (*domain.Address, error) {
	a, ok := f.addresses[orderID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "address", ID: strconv.FormatInt(orderID, 10)}
	}
	return a, nil
}

type fakeOptions struct {
	values map[string]bool
}

func (f *fakeOptions) Get(_ context.Context, name string) (string, error) {
	if f.values[name] {
		return "1", nil
	}
	return "", nil
}

func (f *fakeOptions) GetBool(_ context.Context, name string) (bool, error) {
	return f.values[name], nil
}

type fakeTaxRates struct {
	rows    []*domain.TaxRateRow
	saved   []domain.TaxRateRow
	nextID  int64
	saveErr error
}

func (f *fakeTaxRates) List(_ context.Context) ([]*domain.TaxRateRow, error) {
	return f.rows, nil
}

func (f *fakeTaxRates) ReplaceAll(_ context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	out := make([]domain.TaxRateRow, len(rows))
	for i, row := range rows {
		if row.ID == nil {
			f.nextID++
			id := f.nextID
			row.ID = &id
		}
		out[i] = row
	}
	f.saved = out
	return out, nil
}

type fakeRegions struct {
	mu      sync.Mutex
	regions map[string][]domain.Region
	calls   int
}

func (f *fakeRegions) ListByCountry(_ context.Context, country string) ([]domain.Region, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.regions[country], nil
}

type fakeRegionCache struct {
	entries map[string][]domain.Region
	getErr  error
	sets    int
}

func (f *fakeRegionCache) Get(_ context.Context, country string) ([]domain.Region, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	regions, ok := f.entries[country]
	return regions, ok, nil
}

func (f *fakeRegionCache) Set(_ context.Context, country string, regions []domain.Region) error {
	f.sets++
	f.entries[country] = regions
	return nil
}

func newFakeRepos() *repository.Repositories {
	return &repository.Repositories{
		Order:      &fakeOrders{orders: map[int64]*domain.Order{}},
		OrderItem:  &fakeItems{items: map[int64][]*domain.OrderItem{}},
		Adjustment: &fakeAdjustments{byOrder: map[int64][]*domain.Adjustment{}, byItem: map[int64][]*domain.Adjustment{}},
		Address:    &fakeAddresses{addresses: map[int64]*domain.Address{}},
		Option:     &fakeOptions{values: map[string]bool{}},
		TaxRate:    &fakeTaxRates{},
		Region:     &fakeRegions{regions: map[string][]domain.Region{}},
	}
}
