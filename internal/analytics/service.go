package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
)

// Service loads analytics inputs and runs the reshapers over them.
type Service interface {
	SalesOverview(ctx context.Context) (*SalesOverviewReport, error)
	CustomerSegmentation(ctx context.Context) (*SegmentationReport, error)
	CohortAnalysis(ctx context.Context, period enums.CohortPeriod, metric enums.CohortMetric) (*CohortReport, error)
	ProductPerformance(ctx context.Context, topN int) (*ProductPerformanceReport, error)
}

// Repository reads the order/catalog rows the reshapers fold over.
type Repository interface {
	AllOrders(ctx context.Context) ([]models.Order, error)
	AllOrderItems(ctx context.Context) ([]models.OrderItem, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AllOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) AllOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var out []models.OrderItem
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) AllProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs an analytics service over the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) SalesOverview(ctx context.Context) (*SalesOverviewReport, error) {
	orders, err := s.repo.AllOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load orders")
	}
	return SalesOverview(orders, s.now()), nil
}

func (s *service) CustomerSegmentation(ctx context.Context) (*SegmentationReport, error) {
	orders, err := s.repo.AllOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load orders")
	}
	return SegmentCustomers(orders, s.now()), nil
}

func (s *service) CohortAnalysis(ctx context.Context, period enums.CohortPeriod, metric enums.CohortMetric) (*CohortReport, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cohort period")
	}
	if !metric.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cohort metric")
	}
	orders, err := s.repo.AllOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load orders")
	}
	return CohortAnalysis(orders, period, metric), nil
}

func (s *service) ProductPerformance(ctx context.Context, topN int) (*ProductPerformanceReport, error) {
	if topN <= 0 {
		topN = 10
	}
	items, err := s.repo.AllOrderItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order items")
	}
	products, err := s.repo.AllProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}
	return ProductPerformance(items, products, topN), nil
}
