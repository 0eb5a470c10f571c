package costs

import (
	"context"
	"errors"
	"testing"

	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubLoans struct {
	cost decimal.Decimal
	err  error
}

func (s *stubLoans) FieldFinancingCost(ctx context.Context, fieldID uuid.UUID, cropYear int) (decimal.Decimal, error) {
	return s.cost, s.err
}

func testField(acres int64) *domain.Field {
	return &domain.Field{
		FieldID:  uuid.New(),
		CropYear: 2024,
		Acres:    decimal.NewFromInt(acres),
		FertilizerUsages: []domain.FertilizerUsage{
			{AmountUsed: decimal.NewFromInt(10), PricePerUnit: decimal.NewFromInt(50)},  // 500
			{AmountUsed: decimal.NewFromInt(5), PricePerUnit: decimal.NewFromInt(100)}, // 500
		},
		ChemicalUsages: []domain.ChemicalUsage{
			{AmountUsed: decimal.NewFromInt(20), PricePerUnit: decimal.NewFromInt(10)}, // 200
		},
		SeedUsages: []domain.SeedUsage{
			{BagsUsed: decimal.NewFromInt(4), PricePerBag: decimal.NewFromInt(75)}, // 300
		},
		OtherCosts: []domain.OtherCost{
			{Amount: decimal.NewFromInt(2), IsPerAcre: true},  // 2 * acres
			{Amount: decimal.NewFromInt(150)},                 // flat
			{Amount: decimal.NewFromInt(999), IsInsurance: true}, // excluded
		},
	}
}

func TestCompute_SumsCategories(t *testing.T) {
	agg := &Aggregator{Loans: &stubLoans{cost: decimal.NewFromInt(250)}}
	b := agg.Compute(context.Background(), testField(100))

	assert.True(t, b.FertilizerCost.Equal(decimal.NewFromInt(1000)), "fertilizer %s", b.FertilizerCost)
	assert.True(t, b.ChemicalCost.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.SeedCost.Equal(decimal.NewFromInt(300)))
	// 2/acre * 100 acres + 150 flat; insurance line skipped
	assert.True(t, b.OtherCosts.Equal(decimal.NewFromInt(350)), "other %s", b.OtherCosts)
	assert.True(t, b.LoanCost.Equal(decimal.NewFromInt(250)))
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(2100)))
	assert.True(t, b.TotalCostPerAcre.Equal(decimal.NewFromInt(21)), "per acre %s", b.TotalCostPerAcre)
}

// Zero acres returns zero per acre instead of dividing by zero.
func TestCompute_ZeroAcres(t *testing.T) {
	agg := &Aggregator{Loans: &stubLoans{}}
	b := agg.Compute(context.Background(), testField(0))
	assert.True(t, b.TotalCostPerAcre.IsZero())
	// Category totals are still reported.
	assert.True(t, b.FertilizerCost.Equal(decimal.NewFromInt(1000)))
}

// A loan lookup failure degrades to zero cost, it does not fail the computation.
func TestCompute_LoanFailureDefaultsToZero(t *testing.T) {
	agg := &Aggregator{Loans: &stubLoans{err: errors.New("lender service down")}}
	b := agg.Compute(context.Background(), testField(100))
	assert.True(t, b.LoanCost.IsZero())
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(1850)))
}

func TestCompute_NilLoanProvider(t *testing.T) {
	agg := &Aggregator{}
	b := agg.Compute(context.Background(), testField(100))
	assert.True(t, b.LoanCost.IsZero())
}

func TestCompute_EmptyField(t *testing.T) {
	agg := &Aggregator{Loans: &stubLoans{}}
	b := agg.Compute(context.Background(), &domain.Field{FieldID: uuid.New(), Acres: decimal.NewFromInt(80)})
	assert.True(t, b.TotalCost.IsZero())
	assert.True(t, b.TotalCostPerAcre.IsZero())
}
