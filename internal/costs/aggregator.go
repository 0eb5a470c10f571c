package costs

import (
	"context"

	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LoanInterestProvider resolves per-field financing cost for a crop year.
// Absence of loan data is reported as zero, not an error.
type LoanInterestProvider interface {
	FieldFinancingCost(ctx context.Context, fieldID uuid.UUID, cropYear int) (decimal.Decimal, error)
}

// Breakdown is a field-year's production cost, totaled per category and
// expressed per acre.
type Breakdown struct {
	FertilizerCost   decimal.Decimal `json:"fertilizer_cost"`
	ChemicalCost     decimal.Decimal `json:"chemical_cost"`
	SeedCost         decimal.Decimal `json:"seed_cost"`
	OtherCosts       decimal.Decimal `json:"other_costs"`
	LoanCost         decimal.Decimal `json:"loan_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalCostPerAcre decimal.Decimal `json:"total_cost_per_acre"`
}

// Aggregator totals a field's production cost. Usage records must be loaded
// on the field before calling Compute.
type Aggregator struct {
	Loans LoanInterestProvider
}

// Compute sums fertilizer, chemical, seed, other, and financing costs for
// the field. Per-acre other-cost lines scale by acreage; insurance-tagged
// lines are skipped (premiums are accounted through the policy to avoid
// double counting). A field with zero acres totals to zero per acre rather
// than dividing by zero.
func (a *Aggregator) Compute(ctx context.Context, field *domain.Field) Breakdown {
	fertilizer := decimal.Zero
	for _, u := range field.FertilizerUsages {
		fertilizer = fertilizer.Add(u.AmountUsed.Mul(u.PricePerUnit))
	}

	chemical := decimal.Zero
	for _, u := range field.ChemicalUsages {
		chemical = chemical.Add(u.AmountUsed.Mul(u.PricePerUnit))
	}

	seed := decimal.Zero
	for _, u := range field.SeedUsages {
		seed = seed.Add(u.BagsUsed.Mul(u.PricePerBag))
	}

	other := decimal.Zero
	for _, c := range field.OtherCosts {
		if c.IsInsurance {
			continue
		}
		if c.IsPerAcre {
			other = other.Add(c.Amount.Mul(field.Acres))
		} else {
			other = other.Add(c.Amount)
		}
	}

	loan := decimal.Zero
	if a.Loans != nil {
		cost, err := a.Loans.FieldFinancingCost(ctx, field.FieldID, field.CropYear)
		if err != nil {
			// Missing financing data must not block a cost computation, but
			// the gap should stay diagnosable.
			log.Warn().Err(err).
				Str("field_id", field.FieldID.String()).
				Int("crop_year", field.CropYear).
				Msg("loan cost lookup failed, defaulting to zero")
		} else {
			loan = cost
		}
	}

	total := fertilizer.Add(chemical).Add(seed).Add(other).Add(loan)

	perAcre := decimal.Zero
	if field.Acres.IsPositive() {
		perAcre = total.DivRound(field.Acres, 4)
	}

	return Breakdown{
		FertilizerCost:   fertilizer,
		ChemicalCost:     chemical,
		SeedCost:         seed,
		OtherCosts:       other,
		LoanCost:         loan,
		TotalCost:        total,
		TotalCostPerAcre: perAcre,
	}
}
