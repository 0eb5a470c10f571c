package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FieldLoan is the interest carried on operating financing for a field-year.
// Many fields have none; a missing row means zero financing cost, not an
// error.
type FieldLoan struct {
	LoanID         uuid.UUID       `gorm:"column:loan_id;type:uuid;primaryKey" json:"loan_id"`
	FieldID        uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index" json:"field_id"`
	CropYear       int             `gorm:"column:crop_year;not null" json:"crop_year"`
	Lender         string          `gorm:"column:lender;type:varchar(120)" json:"lender"`
	InterestAmount decimal.Decimal `gorm:"column:interest_amount;type:decimal(18,2);not null;default:0" json:"interest_amount"`
	CreatedAt      time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (FieldLoan) TableName() string {
	return "FieldLoans"
}

func (l *FieldLoan) BeforeCreate(tx *gorm.DB) error {
	if l.LoanID == uuid.Nil {
		l.LoanID = uuid.New()
	}
	return nil
}
