//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/domains/products/application"
	"github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	"github.com/Apurer/recordkeeper/internal/platform/postgres/postgrestest"
)

func TestRepository_ServiceRoundTrip(t *testing.T) {
	svc := application.NewService(NewRepository(postgrestest.Start(t)))
	ctx := context.Background()

	lamp, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "Lamp", Price: decimal.RequireFromString("20.00")})
	require.NoError(t, err)
	chair, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "Chair", Price: decimal.RequireFromString("99.99")})
	require.NoError(t, err)
	assert.Less(t, lamp.ID, chair.ID)
	assert.Nil(t, lamp.UpdatedAt)

	n, err := svc.ApplyDiscountToAll(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := svc.GetProductByID(ctx, chair.ID)
	require.NoError(t, err)
	assert.Equal(t, "89.99", got.Price.StringFixed(2))
	require.NotNil(t, got.UpdatedAt)
	assert.WithinDuration(t, time.Now(), *got.UpdatedAt, time.Minute)

	ok, err := svc.DeleteProduct(ctx, lamp.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, chair.ID, all[0].ID)

	missing, err := svc.GetProductByID(ctx, 4242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
