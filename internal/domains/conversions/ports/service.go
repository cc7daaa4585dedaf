package ports

import (
	"context"

	"github.com/Apurer/recordkeeper/internal/domains/conversions/domain"
)

// Service exposes the conversion formulas and a shared calculator.
type Service interface {
	ConvertTemperature(ctx context.Context, value float64, from, to string) (float64, error)
	ConvertUnit(ctx context.Context, conversion string, value float64) (float64, error)
	Calculate(ctx context.Context, op domain.Operator, a, b float64) (float64, error)
	StoreInMemory(ctx context.Context, value float64)
	RecallMemory(ctx context.Context) float64
	ClearMemory(ctx context.Context)
}
