package profitmatrix

import (
	"context"
	"errors"

	"grainbook-backend/internal/costs"
	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrFieldNotFound = errors.New("Field not found")

// Service fetches a field with its usage records and runs the generator.
// Nothing computed here is persisted; every request recomputes from current
// data.
type Service struct {
	DB        *gorm.DB
	Generator *Generator
}

// ProfitMatrix builds the scenario grid for a field owned by the business.
func (s *Service) ProfitMatrix(ctx context.Context, businessID, fieldID uuid.UUID, opts Options) (*Matrix, error) {
	field, err := s.loadField(ctx, businessID, fieldID)
	if err != nil {
		return nil, err
	}
	return s.Generator.Generate(ctx, field, opts)
}

// BreakEvenResult is the cost summary behind the break-even figure.
type BreakEvenResult struct {
	CostBreakdown  costs.Breakdown `json:"cost_breakdown"`
	ProjectedYield decimal.Decimal `json:"projected_yield"`
	BreakEvenPrice decimal.Decimal `json:"break_even_price"`
}

// BreakEven returns the field's per-acre cost total and break-even price
// (total cost per acre over projected yield; zero when no yield is set).
func (s *Service) BreakEven(ctx context.Context, businessID, fieldID uuid.UUID) (*BreakEvenResult, error) {
	field, err := s.loadField(ctx, businessID, fieldID)
	if err != nil {
		return nil, err
	}

	breakdown := s.Generator.Costs.Compute(ctx, field)
	breakEven := decimal.Zero
	if field.ProjectedYield.IsPositive() {
		breakEven = breakdown.TotalCostPerAcre.DivRound(field.ProjectedYield, 2)
	}

	return &BreakEvenResult{
		CostBreakdown:  breakdown,
		ProjectedYield: field.ProjectedYield,
		BreakEvenPrice: breakEven,
	}, nil
}

func (s *Service) loadField(ctx context.Context, businessID, fieldID uuid.UUID) (*domain.Field, error) {
	var field domain.Field
	err := s.DB.WithContext(ctx).
		Preload("FertilizerUsages").
		Preload("ChemicalUsages").
		Preload("SeedUsages").
		Preload("OtherCosts").
		Where("field_id = ? AND business_id = ?", fieldID, businessID).
		First(&field).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return &field, nil
}
