package service

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jafarshop/storeadmin/internal/config"
	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/order"
	"github.com/jafarshop/storeadmin/internal/repository"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	cfg    config.OrdersConfig
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, cfg config.OrdersConfig, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		cfg:    cfg,
		logger: logger,
	}
}

// LoadOrder reads an order and everything attached to it. A missing order
// is reported as ErrNotFound; a missing address is not an error.
func (s *orderService) LoadOrder(ctx context.Context, id int64) (*order.Order, error) {
	header, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := order.Snapshot{Header: *header}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.loadItems(gctx, id)
		if err != nil {
			return err
		}
		snapshot.Items = items
		return nil
	})

	g.Go(func() error {
		adjs, err := s.repos.Adjustment.ListByObject(gctx, id, domain.ObjectTypeOrder)
		if err != nil {
			return err
		}
		snapshot.Adjustments = derefAll(adjs)
		return nil
	})

	g.Go(func() error {
		addr, err := s.repos.Address.GetByOrderID(gctx, id)
		var notFound *errors.ErrNotFound
		if stderrors.As(err, &notFound) {
			return nil
		}
		if err != nil {
			return err
		}
		snapshot.Address = addr
		return nil
	})

	g.Go(func() error {
		sequential, err := s.repos.Option.GetBool(gctx, s.cfg.SequentialOption)
		if err != nil {
			return err
		}
		snapshot.SequentialNumbers = sequential
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load order", zap.Int64("order_id", id), zap.Error(err))
		return nil, err
	}

	return order.New(snapshot), nil
}

// loadItems reads an order's items along with each item's fees
func (s *orderService) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := s.repos.OrderItem.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		i, row := i, row
		items[i] = *row
		g.Go(func() error {
			fees, err := s.repos.Adjustment.ListItemFees(gctx, row.ID)
			if err != nil {
				return err
			}
			items[i].Fees = derefAll(fees)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func derefAll[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
