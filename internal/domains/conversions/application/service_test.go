package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/domains/conversions/domain"
)

func TestService_ConvertTemperature(t *testing.T) {
	svc := NewService()
	got, err := svc.ConvertTemperature(context.Background(), 0, "c", "kelvin")
	require.NoError(t, err)
	assert.InDelta(t, 273.15, got, 1e-9)

	_, err = svc.ConvertTemperature(context.Background(), 0, "c", "r")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ConvertTemperature(context.Background(), -1, "k", "c")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrBelowAbsoluteZero)
}

func TestService_CalculateAndMemory(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	got, err := svc.Calculate(ctx, domain.Divide, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = svc.Calculate(ctx, domain.Divide, 9, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrDivideByZero)

	svc.StoreInMemory(ctx, got)
	assert.Equal(t, 3.0, svc.RecallMemory(ctx))
	svc.ClearMemory(ctx)
	assert.Zero(t, svc.RecallMemory(ctx))
}

func TestService_ConvertUnit(t *testing.T) {
	svc := NewService()
	got, err := svc.ConvertUnit(context.Background(), "kilometers-to-miles", 10)
	require.NoError(t, err)
	assert.InDelta(t, 6.21371, got, 1e-9)

	_, err = svc.ConvertUnit(context.Background(), "nope", 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}
