package insurance

import (
	"context"
	"testing"

	"grainbook-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInsuranceTest(t *testing.T) (*GormProvider, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.InsurancePolicy{}))
	return &GormProvider{DB: db}, db
}

// APH 200 at 5.00 projected gives 1000 expected revenue; coverage 0.75 with
// SCO and ECO to 0.95 enabled.
func fullPolicy() *domain.InsurancePolicy {
	return &domain.InsurancePolicy{
		PremiumPerAcre: decimal.NewFromInt(12),
		ProjectedPrice: decimal.NewFromInt(5),
		CoverageLevel:  decimal.NewFromFloat(0.75),
		HasSCO:         true,
		HasECO:         true,
		ECOCoverageTop: decimal.NewFromFloat(0.95),
	}
}

func TestGetPolicy_NotFound(t *testing.T) {
	p, _ := setupInsuranceTest(t)
	policy, err := p.GetPolicy(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, policy)
}

func TestGetPolicy_Found(t *testing.T) {
	p, db := setupInsuranceTest(t)
	stored := fullPolicy()
	stored.FieldID = uuid.New()
	require.NoError(t, db.Create(stored).Error)

	policy, err := p.GetPolicy(context.Background(), stored.FieldID)
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.Equal(t, stored.PolicyID, policy.PolicyID)
	assert.True(t, policy.CoverageLevel.Equal(decimal.NewFromFloat(0.75)))
}

func TestCalculateIndemnity_DeepLoss(t *testing.T) {
	p := &GormProvider{}
	aph := decimal.NewFromInt(200)

	// 100 bu at 5.00: 500 revenue against a 750 guarantee.
	base, sco, eco := p.CalculateIndemnity(fullPolicy(), aph, decimal.NewFromInt(100), decimal.NewFromInt(5))
	assert.True(t, base.Equal(decimal.NewFromInt(250)), "base %s", base)
	// SCO band 0.75-0.86 fully exhausted: 1000 * 0.11.
	assert.True(t, sco.Equal(decimal.NewFromInt(110)), "sco %s", sco)
	// ECO band 0.86-0.95 fully exhausted: 1000 * 0.09.
	assert.True(t, eco.Equal(decimal.NewFromInt(90)), "eco %s", eco)
}

// A shallow loss inside the SCO band pays the riders but not the base policy.
func TestCalculateIndemnity_ShallowLoss(t *testing.T) {
	p := &GormProvider{}
	aph := decimal.NewFromInt(200)

	// 160 bu at 5.00: 800 revenue, ratio 0.80, above the 750 guarantee.
	base, sco, eco := p.CalculateIndemnity(fullPolicy(), aph, decimal.NewFromInt(160), decimal.NewFromInt(5))
	assert.True(t, base.IsZero(), "base %s", base)
	// SCO gap 0.86 - 0.80 = 0.06 within its 0.11 band.
	assert.True(t, sco.Equal(decimal.NewFromInt(60)), "sco %s", sco)
	// ECO band 0.09 fully exhausted since ratio is below 0.86.
	assert.True(t, eco.Equal(decimal.NewFromInt(90)), "eco %s", eco)
}

func TestCalculateIndemnity_NoLoss(t *testing.T) {
	p := &GormProvider{}
	aph := decimal.NewFromInt(200)

	base, sco, eco := p.CalculateIndemnity(fullPolicy(), aph, decimal.NewFromInt(200), decimal.NewFromInt(5))
	assert.True(t, base.IsZero())
	assert.True(t, sco.IsZero())
	assert.True(t, eco.IsZero())
}

func TestCalculateIndemnity_RidersDisabled(t *testing.T) {
	p := &GormProvider{}
	policy := fullPolicy()
	policy.HasSCO = false
	policy.HasECO = false

	base, sco, eco := p.CalculateIndemnity(policy, decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(5))
	assert.True(t, base.Equal(decimal.NewFromInt(250)))
	assert.True(t, sco.IsZero())
	assert.True(t, eco.IsZero())
}

func TestCalculateIndemnity_DegenerateInputs(t *testing.T) {
	p := &GormProvider{}

	base, sco, eco := p.CalculateIndemnity(nil, decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(5))
	assert.True(t, base.IsZero())
	assert.True(t, sco.IsZero())
	assert.True(t, eco.IsZero())

	// No projected price means no expected revenue to guarantee against.
	policy := fullPolicy()
	policy.ProjectedPrice = decimal.Zero
	base, sco, eco = p.CalculateIndemnity(policy, decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(5))
	assert.True(t, base.IsZero())
	assert.True(t, sco.IsZero())
	assert.True(t, eco.IsZero())
}
