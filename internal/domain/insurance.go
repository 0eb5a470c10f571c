package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsurancePolicy is the crop-insurance coverage on a field. ProjectedPrice
// anchors the scenario matrix's price ladder; premiums are per acre.
type InsurancePolicy struct {
	PolicyID        uuid.UUID        `gorm:"column:policy_id;type:uuid;primaryKey" json:"policy_id"`
	FieldID         uuid.UUID        `gorm:"column:field_id;type:uuid;not null;uniqueIndex" json:"field_id"`
	PremiumPerAcre  decimal.Decimal  `gorm:"column:premium_per_acre;type:decimal(18,2);not null;default:0" json:"premium_per_acre"`
	ProjectedPrice  decimal.Decimal  `gorm:"column:projected_price;type:decimal(18,4);not null;default:0" json:"projected_price"`
	CoverageLevel   decimal.Decimal  `gorm:"column:coverage_level;type:decimal(5,4);not null;default:0.75" json:"coverage_level"`
	HasSCO          bool             `gorm:"column:has_sco;not null;default:false" json:"has_sco"`
	SCOPremiumAcre  *decimal.Decimal `gorm:"column:sco_premium_acre;type:decimal(18,2)" json:"sco_premium_acre"`
	HasECO          bool             `gorm:"column:has_eco;not null;default:false" json:"has_eco"`
	ECOPremiumAcre  *decimal.Decimal `gorm:"column:eco_premium_acre;type:decimal(18,2)" json:"eco_premium_acre"`
	ECOCoverageTop  decimal.Decimal  `gorm:"column:eco_coverage_top;type:decimal(5,4);not null;default:0.95" json:"eco_coverage_top"`
	CreatedAt       time.Time        `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"column:updatedAt" json:"updatedAt"`
}

func (InsurancePolicy) TableName() string {
	return "InsurancePolicies"
}

func (p *InsurancePolicy) BeforeCreate(tx *gorm.DB) error {
	if p.PolicyID == uuid.Nil {
		p.PolicyID = uuid.New()
	}
	return nil
}
