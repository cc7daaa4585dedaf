package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
	"github.com/Apurer/recordkeeper/internal/domains/books/ports"
	"github.com/Apurer/recordkeeper/internal/shared/telemetry"
)

const tracerName = "github.com/Apurer/recordkeeper/internal/domains/books/adapters/observability/service"

// Service decorates the books service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	rec     telemetry.Recorder
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.rec.Logger = logger
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
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core books service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, rec: telemetry.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) AddBook(ctx context.Context, input types.AddBookInput) (*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.AddBook", trace.WithAttributes(attribute.String("book.isbn", input.ISBN)))
	defer span.End()

	s.rec.Info(ctx, "adding book", slog.String("book.isbn", input.ISBN))
	book, err := s.inner.AddBook(ctx, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to add book", slog.String("book.isbn", input.ISBN))
	}
	s.metrics.recordAdded(ctx)
	s.rec.Info(ctx, "book added", slog.Int64("book.id", book.ID))
	return book, nil
}

func (s *Service) GetBookByID(ctx context.Context, id int64) (*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.GetBookByID", trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()

	book, err := s.inner.GetBookByID(ctx, id)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load book", slog.Int64("book.id", id))
	}
	span.SetAttributes(attribute.Bool("book.found", book != nil))
	return book, nil
}

func (s *Service) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.GetBookByISBN", trace.WithAttributes(attribute.String("book.isbn", isbn)))
	defer span.End()

	book, err := s.inner.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load book by isbn", slog.String("book.isbn", isbn))
	}
	span.SetAttributes(attribute.Bool("book.found", book != nil))
	return book, nil
}

func (s *Service) ListAvailableBooks(ctx context.Context) ([]*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.ListAvailableBooks")
	defer span.End()

	books, err := s.inner.ListAvailableBooks(ctx)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to list books")
	}
	span.SetAttributes(attribute.Int("books.count", len(books)))
	return books, nil
}

func (s *Service) ListBooksByRatingRange(ctx context.Context, r types.RatingRange) ([]*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.ListBooksByRatingRange",
		trace.WithAttributes(attribute.Float64("rating.min", r.Min), attribute.Float64("rating.max", r.Max)))
	defer span.End()

	books, err := s.inner.ListBooksByRatingRange(ctx, r)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to search books by rating")
	}
	span.SetAttributes(attribute.Int("books.count", len(books)))
	return books, nil
}

func (s *Service) UpdateBook(ctx context.Context, id int64, input types.BookMutationInput) (*domain.Book, error) {
	ctx, span := s.rec.Start(ctx, "BookService.UpdateBook", trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()

	s.rec.Info(ctx, "updating book", slog.Int64("book.id", id))
	book, err := s.inner.UpdateBook(ctx, id, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to update book", slog.Int64("book.id", id))
	}
	span.SetAttributes(attribute.Bool("book.found", book != nil))
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) (bool, error) {
	ctx, span := s.rec.Start(ctx, "BookService.DeleteBook", trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()

	s.rec.Info(ctx, "withdrawing book", slog.Int64("book.id", id))
	ok, err := s.inner.DeleteBook(ctx, id)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to withdraw book", slog.Int64("book.id", id))
	}
	if ok {
		s.metrics.recordWithdrawn(ctx)
	}
	span.SetAttributes(attribute.Bool("book.found", ok))
	return ok, nil
}

func (s *Service) UpdateStockQuantity(ctx context.Context, id int64, quantity int) (bool, error) {
	ctx, span := s.rec.Start(ctx, "BookService.UpdateStockQuantity",
		trace.WithAttributes(attribute.Int64("book.id", id), attribute.Int("book.stock", quantity)))
	defer span.End()

	ok, err := s.inner.UpdateStockQuantity(ctx, id, quantity)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to update stock", slog.Int64("book.id", id))
	}
	s.rec.Info(ctx, "stock updated", slog.Int64("book.id", id), slog.Int("book.stock", quantity), slog.Bool("book.found", ok))
	return ok, nil
}

type serviceMetrics struct {
	added     metric.Int64Counter
	withdrawn metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("books.service.added", metric.WithDescription("Number of books cataloged"))
	withdrawn, _ := m.Int64Counter("books.service.withdrawn", metric.WithDescription("Number of books withdrawn"))
	return serviceMetrics{added: added, withdrawn: withdrawn}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.added != nil {
		m.added.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordWithdrawn(ctx context.Context) {
	if m.withdrawn != nil {
		m.withdrawn.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
