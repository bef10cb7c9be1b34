package testutil

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
)

var units = []string{"kg", "m", "unit", "l"}

func uniqueName(base string) string {
	return base + " " + uuid.NewString()[:8]
}

func SeedInput(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.Input {
	tb.Helper()
	in := &types.Input{
		Name: uniqueName(gofakeit.Word()),
		Unit: units[gofakeit.Number(0, len(units)-1)],
	}
	if err := tx.WithContext(ctx).Create(in).Error; err != nil {
		tb.Fatalf("seed input: %v", err)
	}
	return in
}

func SeedProcess(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.Process {
	tb.Helper()
	p := &types.Process{
		Name:        uniqueName(gofakeit.Word()),
		Description: gofakeit.Sentence(6),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed process: %v", err)
	}
	return p
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.Product {
	tb.Helper()
	p := &types.Product{
		Name:        uniqueName(gofakeit.ProductName()),
		Description: gofakeit.Sentence(8),
		UnitCost:    decimal.NewFromFloat(gofakeit.Price(1, 50)).Round(2),
		UnitPrice:   decimal.NewFromFloat(gofakeit.Price(50, 100)).Round(2),
		IsActive:    true,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}
