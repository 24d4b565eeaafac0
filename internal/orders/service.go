package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
	"github.com/calebhawthorne/regenmarket-backend/pkg/metrics"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

// Service exposes checkout intake and order management operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderDTO, error)
}

// txRunner abstracts db.Client.WithTx so tests can supply a fake.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	dbClient    txRunner
	checkoutCfg config.CheckoutConfig
	logg        *logger.Logger
	metrics     *metrics.OrderFlowMetrics
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo           Repository
	DB             txRunner
	CheckoutConfig config.CheckoutConfig
	Logger         *logger.Logger
	Metrics        *metrics.OrderFlowMetrics
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:        params.Repo,
		dbClient:    params.DB,
		checkoutCfg: params.CheckoutConfig,
		logg:        params.Logger,
		metrics:     params.Metrics,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	started := time.Now()
	result, err := s.create(ctx, input)
	outcome := "created"
	if err != nil {
		outcome = "failed"
	}
	s.metrics.ObserveCheckout(outcome, time.Since(started))
	return result, err
}

func (s *service) create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := s.validate(&input); err != nil {
		s.metrics.IncOrderFailed("validation")
		return nil, err
	}

	// one catalog snapshot per request; every line resolves against it
	catalog, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		s.metrics.IncOrderFailed("catalog_read")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}

	m := newMatcher(catalog, s.checkoutCfg.MatchFallback)
	matched := make([]lineMatch, 0, len(input.Items))
	unmatched := make([]UnmatchedItem, 0)
	for _, line := range input.Items {
		product, stage := m.Resolve(line)
		if product == nil {
			unmatched = append(unmatched, UnmatchedItem{Name: line.Name, Quantity: line.Quantity})
			continue
		}
		s.metrics.IncMatchOutcome(string(stage))
		matched = append(matched, lineMatch{line: line, product: product, stage: stage})
	}

	if len(unmatched) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "unmatched_count", len(unmatched)),
			"cart lines could not be matched to catalog products")
	}
	if len(matched) == 0 {
		s.metrics.IncOrderFailed("no_matches")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no cart items could be matched to products")
	}

	totals := computeTotals(matched, input.ShippingMethod, s.checkoutCfg)

	shippingAddr := input.ShippingAddress.Normalize()
	billingAddr := shippingAddr
	if input.BillingAddress != nil && !input.BillingAddress.IsZero() {
		billingAddr = input.BillingAddress.Normalize()
	}

	order := &models.Order{
		UserID:          input.UserID,
		ShippingAddress: shippingAddr,
		BillingAddress:  billingAddr,
		PaymentMethod:   input.PaymentMethod,
		ShippingMethod:  input.ShippingMethod,
		SubtotalCents:   totals.Subtotal,
		ShippingCents:   totals.Shipping,
		TaxCents:        totals.Tax,
		TotalCents:      totals.Total,
		Status:          enums.OrderStatusPending,
		Notes:           input.Notes,
	}

	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// any line failing the stock guard fails the whole order
		for _, lm := range matched {
			ok, err := repo.DecrementStock(ctx, lm.product.ID, lm.line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
					WithDetails(map[string]any{"product": lm.product.Name, "requested": lm.line.Quantity})
			}
		}

		created, err := repo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(matched))
		for _, lm := range matched {
			unit := lm.product.EffectivePriceCents()
			items = append(items, models.OrderItem{
				OrderID:        created.ID,
				ProductID:      lm.product.ID,
				Name:           lm.product.Name,
				Quantity:       lm.line.Quantity,
				UnitPriceCents: unit,
				TotalCents:     unit * lm.line.Quantity,
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			s.metrics.IncOrderFailed("insufficient_stock")
		} else {
			s.metrics.IncOrderFailed("persistence")
		}
		return nil, txErr
	}

	s.metrics.IncOrderCreated(input.ShippingMethod.String())
	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, "order created")

	detail, err := s.repo.FindOrderDetail(ctx, order.ID)
	if err != nil {
		// the order committed; return what we have rather than failing
		s.logg.Error(ctx, "re-read created order", err)
		return &CreateOrderResult{
			Order:          orderFromModel(order),
			UnmatchedItems: unmatched,
		}, nil
	}

	return &CreateOrderResult{
		Order:          orderFromModel(detail),
		UnmatchedItems: unmatched,
	}, nil
}

func (s *service) validate(input *CreateOrderInput) error {
	if input.ShippingAddress.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "items must not be empty")
	}
	if !input.ShippingMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	named := 0
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if strings.TrimSpace(line.Name) != "" || line.ProductID != nil {
			named++
		}
	}
	if named == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no item names could be extracted")
	}
	return nil
}

func (s *service) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return orderFromModel(order), nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	rows, err := s.repo.ListOrdersByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user orders")
	}
	return buildOrderList(rows, params), nil
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return orderFromModel(order), nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error) {
	rows, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return buildOrderList(rows, params), nil
}

// UpdateStatus applies one step of the order lifecycle. Terminal states are
// locked; a same-status update succeeds without touching the row.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if order.Status == target {
		return s.GetOrderDetail(ctx, orderID)
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, target))
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	s.metrics.IncStatusChange(order.Status.String(), target.String())
	ctx = s.logg.WithOrderID(ctx, orderID.String())
	s.logg.Info(s.logg.WithField(ctx, "status", target.String()), "order status updated")

	return s.GetOrderDetail(ctx, orderID)
}

func (s *service) loadDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

func buildOrderList(rows []models.Order, params pagination.Params) *OrderList {
	limit := pagination.NormalizeLimit(params.Limit)
	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	orders := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		orders = append(orders, *orderFromModel(&rows[i]))
	}
	return &OrderList{Orders: orders, NextCursor: nextCursor}
}
