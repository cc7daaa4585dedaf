package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/recordkeeper/internal/domains/conversions/domain"
	"github.com/Apurer/recordkeeper/internal/domains/conversions/ports"
)

// ErrInvalidInput wraps every rejected conversion or calculation.
var ErrInvalidInput = errors.New("invalid conversion input")

// Service adapts the conversion formulas and one process-wide calculator.
type Service struct {
	calc *domain.Calculator
}

func NewService() *Service {
	return &Service{calc: &domain.Calculator{}}
}

func (s *Service) ConvertTemperature(_ context.Context, value float64, from, to string) (float64, error) {
	fromScale, err := domain.ParseScale(from)
	if err != nil {
		return 0, invalid(err)
	}
	toScale, err := domain.ParseScale(to)
	if err != nil {
		return 0, invalid(err)
	}
	out, err := domain.ConvertTemperature(value, fromScale, toScale)
	if err != nil {
		return 0, invalid(err)
	}
	return out, nil
}

func (s *Service) ConvertUnit(_ context.Context, conversion string, value float64) (float64, error) {
	out, err := domain.ConvertUnit(conversion, value)
	if err != nil {
		return 0, invalid(err)
	}
	return out, nil
}

func (s *Service) Calculate(_ context.Context, op domain.Operator, a, b float64) (float64, error) {
	out, err := s.calc.Apply(op, a, b)
	if err != nil {
		return 0, invalid(err)
	}
	return out, nil
}

func (s *Service) StoreInMemory(_ context.Context, value float64) { s.calc.StoreInMemory(value) }

func (s *Service) RecallMemory(context.Context) float64 { return s.calc.RecallMemory() }

func (s *Service) ClearMemory(context.Context) { s.calc.ClearMemory() }

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

var _ ports.Service = (*Service)(nil)
