package observability

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
	"github.com/Apurer/recordkeeper/internal/domains/products/ports"
	"github.com/Apurer/recordkeeper/internal/shared/telemetry"
)

const tracerName = "github.com/Apurer/recordkeeper/internal/domains/products/adapters/observability/service"

// Service decorates the product service with tracing, logging, and metrics.
type Service struct {
	inner      ports.Service
	rec        telemetry.Recorder
	created    metric.Int64Counter
	discounted metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.rec.Logger = logger
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.rec.Tracer = tr
		}
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("products.service.created", metric.WithDescription("Number of products created"))
		s.discounted, _ = m.Int64Counter("products.service.discounted", metric.WithDescription("Number of product prices discounted"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, rec: telemetry.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.GetAllProducts")
	defer span.End()

	list, err := s.inner.GetAllProducts(ctx)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(list)))
	return list, nil
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.GetProductByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := s.inner.GetProductByID(ctx, id)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	span.SetAttributes(attribute.Bool("product.found", product != nil))
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.CreateProduct", trace.WithAttributes(attribute.String("product.name", input.Name)))
	defer span.End()

	product, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	s.rec.Info(ctx, "product created", slog.Int64("product.id", product.ID))
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, input types.ProductMutationInput) (*domain.Product, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.UpdateProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := s.inner.UpdateProduct(ctx, id, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to update product", slog.Int64("product.id", id))
	}
	span.SetAttributes(attribute.Bool("product.found", product != nil))
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.rec.Info(ctx, "withdrawing product", slog.Int64("product.id", id))
	ok, err := s.inner.DeleteProduct(ctx, id)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to withdraw product", slog.Int64("product.id", id))
	}
	span.SetAttributes(attribute.Bool("product.found", ok))
	return ok, nil
}

func (s *Service) ApplyDiscount(ctx context.Context, id int64, percentage decimal.Decimal) (*domain.Product, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.ApplyDiscount",
		trace.WithAttributes(attribute.Int64("product.id", id), attribute.String("discount.percentage", percentage.String())))
	defer span.End()

	product, err := s.inner.ApplyDiscount(ctx, id, percentage)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to discount product", slog.Int64("product.id", id))
	}
	if product != nil && s.discounted != nil {
		s.discounted.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Bool("product.found", product != nil))
	return product, nil
}

func (s *Service) ApplyDiscountToAll(ctx context.Context, percentage decimal.Decimal) (int, error) {
	ctx, span := s.rec.Start(ctx, "ProductService.ApplyDiscountToAll",
		trace.WithAttributes(attribute.String("discount.percentage", percentage.String())))
	defer span.End()

	n, err := s.inner.ApplyDiscountToAll(ctx, percentage)
	if err != nil {
		return 0, s.rec.Fail(ctx, span, err, "failed to discount catalog")
	}
	if s.discounted != nil {
		s.discounted.Add(ctx, int64(n))
	}
	s.rec.Info(ctx, "catalog discounted", slog.String("discount.percentage", percentage.String()), slog.Int("products.count", n))
	return n, nil
}

var _ ports.Service = (*Service)(nil)
