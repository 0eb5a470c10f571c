package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractKind is the pricing structure of a grain marketing agreement.
type ContractKind string

const (
	ContractCash        ContractKind = "cash"
	ContractBasis       ContractKind = "basis"
	ContractHTA         ContractKind = "hta"
	ContractAccumulator ContractKind = "accumulator"
)

// Commodity names the crop a contract or field is for.
type Commodity string

const (
	CommodityCorn     Commodity = "corn"
	CommoditySoybeans Commodity = "soybeans"
	CommodityWheat    Commodity = "wheat"
	CommodityOther    Commodity = "other"
)

// GrainContract is one marketing agreement. Accumulator contracts carry a
// single AccumulatorDetails row; delivered bushels for those are recomputed
// from the accrual schedule on every read, never stored here.
type GrainContract struct {
	ContractID       uuid.UUID        `gorm:"column:contract_id;type:uuid;primaryKey" json:"contract_id"`
	BusinessID       uuid.UUID        `gorm:"column:business_id;type:uuid;not null;index" json:"business_id"`
	Kind             ContractKind     `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Commodity        Commodity        `gorm:"column:commodity;type:varchar(20);not null" json:"commodity"`
	CropYear         int              `gorm:"column:crop_year;not null" json:"crop_year"`
	Buyer            string           `gorm:"column:buyer;type:varchar(120)" json:"buyer"`
	TotalBushels     decimal.Decimal  `gorm:"column:total_bushels;type:decimal(18,2);not null;default:0" json:"total_bushels"`
	DeliveredBushels decimal.Decimal  `gorm:"column:delivered_bushels;type:decimal(18,2);not null;default:0" json:"delivered_bushels"`
	CashPrice        *decimal.Decimal `gorm:"column:cash_price;type:decimal(18,4)" json:"cash_price"`
	FuturesPrice     *decimal.Decimal `gorm:"column:futures_price;type:decimal(18,4)" json:"futures_price"`
	BasisPrice       *decimal.Decimal `gorm:"column:basis_price;type:decimal(18,4)" json:"basis_price"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time        `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"column:updatedAt" json:"updatedAt"`

	Accumulator *AccumulatorDetails `gorm:"foreignKey:ContractID;references:ContractID" json:"accumulator,omitempty"`
}

func (GrainContract) TableName() string {
	return "GrainContracts"
}

func (g *GrainContract) BeforeCreate(tx *gorm.DB) error {
	if g.ContractID == uuid.Nil {
		g.ContractID = uuid.New()
	}
	return nil
}

// EffectivePrice resolves the per-bushel price used when valuing marketed
// bushels: cash price first, then futures+basis, then either leg alone.
// A basis-only contract yields just the basis value, which is not a full
// market price; callers surface it as-is pending product clarification.
func (g *GrainContract) EffectivePrice() decimal.Decimal {
	switch {
	case g.CashPrice != nil:
		return *g.CashPrice
	case g.FuturesPrice != nil && g.BasisPrice != nil:
		return g.FuturesPrice.Add(*g.BasisPrice)
	case g.FuturesPrice != nil:
		return *g.FuturesPrice
	case g.BasisPrice != nil:
		return *g.BasisPrice
	}
	return decimal.Zero
}
