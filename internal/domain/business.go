package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the tenancy anchor: every contract and field belongs to one
// grain-marketing business.
type Business struct {
	BusinessID uuid.UUID `gorm:"column:business_id;type:uuid;primaryKey" json:"business_id"`
	Name       string    `gorm:"column:name;type:varchar(120);not null" json:"name"`
	CreatedAt  time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Business) TableName() string {
	return "Businesses"
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.BusinessID == uuid.Nil {
		b.BusinessID = uuid.New()
	}
	return nil
}
