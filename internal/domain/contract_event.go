package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContractEvent is the append-only audit trail for contract state changes
// (knockout triggers, manual ledger entries).
type ContractEvent struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ContractID uuid.UUID      `gorm:"column:contract_id;type:uuid;not null;index" json:"contract_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	ActorEmail *string        `gorm:"column:actor_email;type:varchar(255)" json:"actor_email"`
	EventData  datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt  time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

const (
	EventKnockout    = "KNOCKOUT"
	EventManualEntry = "MANUAL_ENTRY"
)

func (ContractEvent) TableName() string {
	return "ContractEvents"
}

func (e *ContractEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
