package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccumulatorDetails holds the accrual schedule for an accumulator contract
// (1:1 with GrainContract, only when kind = accumulator).
//
// DoubleUpPrice and IsCurrentlyDoubled are persisted but do not feed the
// accrual formula; daily doubling is recorded on manual entries for audit
// only. TotalBushelsMarketed never exceeds the contract's total bushels.
// KnockoutDate is set exactly when KnockoutReached is true, and neither is
// ever cleared once set.
type AccumulatorDetails struct {
	DetailsID            uuid.UUID        `gorm:"column:details_id;type:uuid;primaryKey" json:"details_id"`
	ContractID           uuid.UUID        `gorm:"column:contract_id;type:uuid;not null;uniqueIndex" json:"contract_id"`
	KnockoutPrice        decimal.Decimal  `gorm:"column:knockout_price;type:decimal(18,4);not null" json:"knockout_price"`
	DoubleUpPrice        *decimal.Decimal `gorm:"column:double_up_price;type:decimal(18,4)" json:"double_up_price"`
	IsCurrentlyDoubled   bool             `gorm:"column:is_currently_doubled;not null;default:false" json:"is_currently_doubled"`
	DailyBushels         decimal.Decimal  `gorm:"column:daily_bushels;type:decimal(18,2);not null" json:"daily_bushels"`
	StartDate            time.Time        `gorm:"column:start_date;not null" json:"start_date"`
	EndDate              *time.Time       `gorm:"column:end_date" json:"end_date"`
	TotalBushelsMarketed decimal.Decimal  `gorm:"column:total_bushels_marketed;type:decimal(18,2);not null;default:0" json:"total_bushels_marketed"`
	KnockoutReached      bool             `gorm:"column:knockout_reached;not null;default:false" json:"knockout_reached"`
	KnockoutDate         *time.Time       `gorm:"column:knockout_date" json:"knockout_date"`
	BasisLocked          bool             `gorm:"column:basis_locked;not null;default:false" json:"basis_locked"`
	CreatedAt            time.Time        `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt            time.Time        `gorm:"column:updatedAt" json:"updatedAt"`
}

func (AccumulatorDetails) TableName() string {
	return "AccumulatorDetails"
}

func (a *AccumulatorDetails) BeforeCreate(tx *gorm.DB) error {
	if a.DetailsID == uuid.Nil {
		a.DetailsID = uuid.New()
	}
	return nil
}

// AccumulatorDailyEntry is an append-only manual log of a day's marketing
// activity. It is an audit trail additive to the time-based accrual; the two
// are not reconciled against each other.
type AccumulatorDailyEntry struct {
	EntryID         uuid.UUID       `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	ContractID      uuid.UUID       `gorm:"column:contract_id;type:uuid;not null;index" json:"contract_id"`
	EntryDate       time.Time       `gorm:"column:entry_date;not null" json:"entry_date"`
	BushelsMarketed decimal.Decimal `gorm:"column:bushels_marketed;type:decimal(18,2);not null" json:"bushels_marketed"`
	MarketPrice     decimal.Decimal `gorm:"column:market_price;type:decimal(18,4);not null" json:"market_price"`
	WasDoubledUp    bool            `gorm:"column:was_doubled_up;not null;default:false" json:"was_doubled_up"`
	Notes           *string         `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (AccumulatorDailyEntry) TableName() string {
	return "AccumulatorDailyEntries"
}

func (e *AccumulatorDailyEntry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	return nil
}
