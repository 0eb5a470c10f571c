package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Field is one farm/field card for a crop year: acreage, yields, and the
// usage records its production cost is totaled from.
type Field struct {
	FieldID        uuid.UUID       `gorm:"column:field_id;type:uuid;primaryKey" json:"field_id"`
	BusinessID     uuid.UUID       `gorm:"column:business_id;type:uuid;not null;index" json:"business_id"`
	Name           string          `gorm:"column:name;type:varchar(120);not null" json:"name"`
	Commodity      Commodity       `gorm:"column:commodity;type:varchar(20);not null" json:"commodity"`
	CropYear       int             `gorm:"column:crop_year;not null" json:"crop_year"`
	Acres          decimal.Decimal `gorm:"column:acres;type:decimal(18,2);not null;default:0" json:"acres"`
	APHYield       decimal.Decimal `gorm:"column:aph_yield;type:decimal(18,2);not null;default:0" json:"aph_yield"`
	ProjectedYield decimal.Decimal `gorm:"column:projected_yield;type:decimal(18,2);not null;default:0" json:"projected_yield"`
	CreatedAt      time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updatedAt" json:"updatedAt"`

	FertilizerUsages []FertilizerUsage `gorm:"foreignKey:FieldID;references:FieldID" json:"fertilizer_usages,omitempty"`
	ChemicalUsages   []ChemicalUsage   `gorm:"foreignKey:FieldID;references:FieldID" json:"chemical_usages,omitempty"`
	SeedUsages       []SeedUsage       `gorm:"foreignKey:FieldID;references:FieldID" json:"seed_usages,omitempty"`
	OtherCosts       []OtherCost       `gorm:"foreignKey:FieldID;references:FieldID" json:"other_costs,omitempty"`
}

func (Field) TableName() string {
	return "Fields"
}

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.FieldID == uuid.Nil {
		f.FieldID = uuid.New()
	}
	return nil
}

// FertilizerUsage is one fertilizer application: quantity times unit price.
type FertilizerUsage struct {
	UsageID      uuid.UUID       `gorm:"column:usage_id;type:uuid;primaryKey" json:"usage_id"`
	FieldID      uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	ProductName  string          `gorm:"column:product_name;type:varchar(120)" json:"product_name"`
	AmountUsed   decimal.Decimal `gorm:"column:amount_used;type:decimal(18,2);not null;default:0" json:"amount_used"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:decimal(18,4);not null;default:0" json:"price_per_unit"`
	CreatedAt    time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (FertilizerUsage) TableName() string {
	return "FertilizerUsages"
}

func (u *FertilizerUsage) BeforeCreate(tx *gorm.DB) error {
	if u.UsageID == uuid.Nil {
		u.UsageID = uuid.New()
	}
	return nil
}

// ChemicalUsage is one chemical application: quantity times unit price.
type ChemicalUsage struct {
	UsageID      uuid.UUID       `gorm:"column:usage_id;type:uuid;primaryKey" json:"usage_id"`
	FieldID      uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	ProductName  string          `gorm:"column:product_name;type:varchar(120)" json:"product_name"`
	AmountUsed   decimal.Decimal `gorm:"column:amount_used;type:decimal(18,2);not null;default:0" json:"amount_used"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:decimal(18,4);not null;default:0" json:"price_per_unit"`
	CreatedAt    time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (ChemicalUsage) TableName() string {
	return "ChemicalUsages"
}

func (u *ChemicalUsage) BeforeCreate(tx *gorm.DB) error {
	if u.UsageID == uuid.Nil {
		u.UsageID = uuid.New()
	}
	return nil
}

// SeedUsage is seed purchased for the field, priced per bag.
type SeedUsage struct {
	UsageID     uuid.UUID       `gorm:"column:usage_id;type:uuid;primaryKey" json:"usage_id"`
	FieldID     uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	VarietyName string          `gorm:"column:variety_name;type:varchar(120)" json:"variety_name"`
	BagsUsed    decimal.Decimal `gorm:"column:bags_used;type:decimal(18,2);not null;default:0" json:"bags_used"`
	PricePerBag decimal.Decimal `gorm:"column:price_per_bag;type:decimal(18,4);not null;default:0" json:"price_per_bag"`
	CreatedAt   time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (SeedUsage) TableName() string {
	return "SeedUsages"
}

func (u *SeedUsage) BeforeCreate(tx *gorm.DB) error {
	if u.UsageID == uuid.Nil {
		u.UsageID = uuid.New()
	}
	return nil
}

// OtherCost is a flat cost line for the field. IsPerAcre amounts scale by
// acreage when totaled. Insurance-tagged lines are excluded from the cost
// total; premiums are accounted through the policy instead.
type OtherCost struct {
	CostID      uuid.UUID       `gorm:"column:cost_id;type:uuid;primaryKey" json:"cost_id"`
	FieldID     uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	Description string          `gorm:"column:description;type:varchar(255)" json:"description"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null;default:0" json:"amount"`
	IsPerAcre   bool            `gorm:"column:is_per_acre;not null;default:false" json:"is_per_acre"`
	IsInsurance bool            `gorm:"column:is_insurance;not null;default:false" json:"is_insurance"`
	CreatedAt   time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (OtherCost) TableName() string {
	return "OtherCosts"
}

func (o *OtherCost) BeforeCreate(tx *gorm.DB) error {
	if o.CostID == uuid.Nil {
		o.CostID = uuid.New()
	}
	return nil
}
