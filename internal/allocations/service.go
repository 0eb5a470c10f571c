package allocations

import (
	"context"
	"errors"

	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrContractNotFound = errors.New("Contract not found")
	ErrFieldNotFound    = errors.New("Field not found")
	ErrInvalidBushels   = errors.New("allocated bushels must be positive")
	ErrOverAllocated    = errors.New("Allocation exceeds the contract's total bushels")
)

// Service manages contract-to-field bushel allocations.
type Service struct {
	DB *gorm.DB
}

// CreateInput for a new allocation.
type CreateInput struct {
	ContractID       uuid.UUID
	FieldID          uuid.UUID
	AllocatedBushels decimal.Decimal
}

// Create links a contract to a field. The allocated sum across all of a
// contract's active allocations may not exceed the contract's total bushels;
// the check runs in the same transaction as the insert.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, input CreateInput) (*domain.ContractAllocation, error) {
	if !input.AllocatedBushels.IsPositive() {
		return nil, ErrInvalidBushels
	}

	var alloc *domain.ContractAllocation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract domain.GrainContract
		if err := tx.Where("contract_id = ? AND business_id = ?", input.ContractID, businessID).
			First(&contract).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrContractNotFound
			}
			return err
		}

		var field domain.Field
		if err := tx.Where("field_id = ? AND business_id = ?", input.FieldID, businessID).
			First(&field).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrFieldNotFound
			}
			return err
		}

		var existing []domain.ContractAllocation
		if err := tx.Where("contract_id = ? AND is_active = ?", input.ContractID, true).
			Find(&existing).Error; err != nil {
			return err
		}
		allocated := input.AllocatedBushels
		for _, a := range existing {
			allocated = allocated.Add(a.AllocatedBushels)
		}
		if allocated.GreaterThan(contract.TotalBushels) {
			return ErrOverAllocated
		}

		alloc = &domain.ContractAllocation{
			ContractID:       input.ContractID,
			FieldID:          input.FieldID,
			AllocatedBushels: input.AllocatedBushels,
			IsActive:         true,
		}
		return tx.Create(alloc).Error
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// ActiveAllocations returns the field's active allocations whose contract is
// active and matches the field's crop year and commodity.
func (s *Service) ActiveAllocations(ctx context.Context, fieldID uuid.UUID, cropYear int, commodity domain.Commodity) ([]domain.ContractAllocation, error) {
	var allocs []domain.ContractAllocation
	err := s.DB.WithContext(ctx).
		Preload("Contract").
		Where("field_id = ? AND is_active = ?", fieldID, true).
		Find(&allocs).Error
	if err != nil {
		return nil, err
	}

	matched := allocs[:0]
	for _, a := range allocs {
		c := a.Contract
		if c == nil || !c.IsActive || c.CropYear != cropYear || c.Commodity != commodity {
			continue
		}
		matched = append(matched, a)
	}
	return matched, nil
}
