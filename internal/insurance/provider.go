package insurance

import (
	"context"

	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scoCoverageTop is the county-level coverage ceiling SCO buys up to.
var scoCoverageTop = decimal.NewFromFloat(0.86)

// GormProvider looks up a field's policy and prices indemnity under a
// simplified revenue-protection model: the guarantee is APH times coverage
// level times projected price, and a scenario pays the shortfall between
// guarantee and scenario revenue. SCO fills the band from the coverage level
// up to 86%; ECO continues from 86% to the elected top.
type GormProvider struct {
	DB *gorm.DB
}

// GetPolicy returns the field's policy, or nil when none is on file.
func (p *GormProvider) GetPolicy(ctx context.Context, fieldID uuid.UUID) (*domain.InsurancePolicy, error) {
	var policy domain.InsurancePolicy
	err := p.DB.WithContext(ctx).Where("field_id = ?", fieldID).First(&policy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// CalculateIndemnity prices the payout for one (yield, price) scenario,
// all figures in $/acre.
func (p *GormProvider) CalculateIndemnity(policy *domain.InsurancePolicy, aph, scenarioYield, scenarioPrice decimal.Decimal) (base, sco, eco decimal.Decimal) {
	base, sco, eco = decimal.Zero, decimal.Zero, decimal.Zero
	if policy == nil {
		return base, sco, eco
	}

	expectedRevenue := aph.Mul(policy.ProjectedPrice)
	if !expectedRevenue.IsPositive() {
		return base, sco, eco
	}
	scenarioRevenue := scenarioYield.Mul(scenarioPrice)

	guarantee := expectedRevenue.Mul(policy.CoverageLevel)
	if shortfall := guarantee.Sub(scenarioRevenue); shortfall.IsPositive() {
		base = shortfall
	}

	// revenueRatio is the scenario's fraction of expected revenue; the
	// riders pay band-capped shortfall below their respective ceilings.
	revenueRatio := scenarioRevenue.Div(expectedRevenue)

	if policy.HasSCO {
		band := scoCoverageTop.Sub(policy.CoverageLevel)
		if band.IsPositive() {
			gap := scoCoverageTop.Sub(revenueRatio)
			if gap.IsPositive() {
				if gap.GreaterThan(band) {
					gap = band
				}
				sco = expectedRevenue.Mul(gap)
			}
		}
	}

	if policy.HasECO {
		band := policy.ECOCoverageTop.Sub(scoCoverageTop)
		if band.IsPositive() {
			gap := policy.ECOCoverageTop.Sub(revenueRatio)
			if gap.IsPositive() {
				if gap.GreaterThan(band) {
					gap = band
				}
				eco = expectedRevenue.Mul(gap)
			}
		}
	}

	return base, sco, eco
}
