package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
	"github.com/Apurer/recordkeeper/internal/domains/students/ports"
	"github.com/Apurer/recordkeeper/internal/shared/telemetry"
)

const tracerName = "github.com/Apurer/recordkeeper/internal/domains/students/adapters/observability/service"

// Service decorates the students service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	rec      telemetry.Recorder
	enrolled metric.Int64Counter
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
		s.enrolled, _ = m.Int64Counter("students.service.enrolled", metric.WithDescription("Number of students enrolled"))
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

func (s *Service) AddStudent(ctx context.Context, input types.AddStudentInput) (*domain.Student, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.AddStudent")
	defer span.End()

	student, err := s.inner.AddStudent(ctx, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to enroll student")
	}
	if s.enrolled != nil {
		s.enrolled.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int64("student.id", student.ID))
	s.rec.Info(ctx, "student enrolled", slog.Int64("student.id", student.ID))
	return student, nil
}

func (s *Service) GetStudentByID(ctx context.Context, id int64) (*domain.Student, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.GetStudentByID", trace.WithAttributes(attribute.Int64("student.id", id)))
	defer span.End()

	student, err := s.inner.GetStudentByID(ctx, id)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load student", slog.Int64("student.id", id))
	}
	span.SetAttributes(attribute.Bool("student.found", student != nil))
	return student, nil
}

func (s *Service) ListActiveStudents(ctx context.Context) ([]*domain.Student, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.ListActiveStudents")
	defer span.End()

	list, err := s.inner.ListActiveStudents(ctx)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to list students")
	}
	span.SetAttributes(attribute.Int("students.count", len(list)))
	return list, nil
}

func (s *Service) ListStudentsByGPARange(ctx context.Context, r types.GPARange) ([]*domain.Student, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.ListStudentsByGPARange",
		trace.WithAttributes(attribute.Float64("gpa.min", r.Min), attribute.Float64("gpa.max", r.Max)))
	defer span.End()

	list, err := s.inner.ListStudentsByGPARange(ctx, r)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to search students by gpa")
	}
	span.SetAttributes(attribute.Int("students.count", len(list)))
	return list, nil
}

func (s *Service) UpdateStudent(ctx context.Context, id int64, input types.StudentMutationInput) (*domain.Student, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.UpdateStudent", trace.WithAttributes(attribute.Int64("student.id", id)))
	defer span.End()

	student, err := s.inner.UpdateStudent(ctx, id, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to update student", slog.Int64("student.id", id))
	}
	span.SetAttributes(attribute.Bool("student.found", student != nil))
	return student, nil
}

func (s *Service) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	ctx, span := s.rec.Start(ctx, "StudentService.DeleteStudent", trace.WithAttributes(attribute.Int64("student.id", id)))
	defer span.End()

	s.rec.Info(ctx, "deactivating student", slog.Int64("student.id", id))
	ok, err := s.inner.DeleteStudent(ctx, id)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to deactivate student", slog.Int64("student.id", id))
	}
	span.SetAttributes(attribute.Bool("student.found", ok))
	return ok, nil
}

var _ ports.Service = (*Service)(nil)
