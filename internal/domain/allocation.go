package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractAllocation assigns part of a contract's bushels to one field.
// Several fields may share a contract; the allocations service rejects
// writes that would push the contract's allocated sum past its total.
type ContractAllocation struct {
	AllocationID     uuid.UUID       `gorm:"column:allocation_id;type:uuid;primaryKey" json:"allocation_id"`
	ContractID       uuid.UUID       `gorm:"column:contract_id;type:uuid;not null;index" json:"contract_id"`
	FieldID          uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	AllocatedBushels decimal.Decimal `gorm:"column:allocated_bushels;type:decimal(18,2);not null;default:0" json:"allocated_bushels"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"column:updatedAt" json:"updatedAt"`

	Contract *GrainContract `gorm:"foreignKey:ContractID;references:ContractID" json:"contract,omitempty"`
}

func (ContractAllocation) TableName() string {
	return "ContractAllocations"
}

func (a *ContractAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.AllocationID == uuid.Nil {
		a.AllocationID = uuid.New()
	}
	return nil
}
