package loans

import (
	"context"

	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProvider sums recorded loan interest for a field-year. Fields without
// loans on file cost zero.
type GormProvider struct {
	DB *gorm.DB
}

func (p *GormProvider) FieldFinancingCost(ctx context.Context, fieldID uuid.UUID, cropYear int) (decimal.Decimal, error) {
	var loans []domain.FieldLoan
	err := p.DB.WithContext(ctx).
		Where("field_id = ? AND crop_year = ?", fieldID, cropYear).
		Find(&loans).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.InterestAmount)
	}
	return total, nil
}
