package accrual

import (
	"context"
	"encoding/json"
	"time"

	"grainbook-backend/internal/domain"
	"grainbook-backend/internal/emails"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the persistence-facing side of the accrual engine: knockout
// detection and the manual daily-entry ledger.
type Service struct {
	DB *gorm.DB

	// Notify, when set, emails the business's users after a knockout.
	Notify emails.Sender

	// Now is the clock used for knockout timestamps; overridable in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CheckKnockout compares the current market price against the contract's
// knockout price and, on first trigger, records the knockout. The write is a
// compare-and-set on knockout_reached so concurrent checks cannot overwrite
// an earlier knockout date. Repeated calls after a trigger return true
// without writing.
func (s *Service) CheckKnockout(ctx context.Context, businessID, contractID uuid.UUID, marketPrice decimal.Decimal) (bool, error) {
	var contract domain.GrainContract
	err := s.DB.WithContext(ctx).
		Preload("Accumulator").
		Where("contract_id = ? AND business_id = ?", contractID, businessID).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrContractNotFound
		}
		return false, err
	}

	details := contract.Accumulator
	if details == nil {
		return false, nil
	}
	if details.KnockoutReached {
		return true, nil
	}
	if marketPrice.LessThan(details.KnockoutPrice) {
		return false, nil
	}

	knockedAt := s.now()
	res := s.DB.WithContext(ctx).Model(&domain.AccumulatorDetails{}).
		Where("details_id = ? AND knockout_reached = ?", details.DetailsID, false).
		Updates(map[string]interface{}{
			"knockout_reached": true,
			"knockout_date":    knockedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		eventData, _ := json.Marshal(map[string]interface{}{
			"market_price":   marketPrice,
			"knockout_price": details.KnockoutPrice,
			"knockout_date":  knockedAt,
		})
		if err := s.DB.WithContext(ctx).Create(&domain.ContractEvent{
			ContractID: contract.ContractID,
			EventType:  domain.EventKnockout,
			EventData:  datatypes.JSON(eventData),
		}).Error; err != nil {
			return false, err
		}
		s.notifyKnockout(ctx, &contract, marketPrice, knockedAt)
	}
	// RowsAffected == 0 means a concurrent check recorded the knockout first;
	// the trigger stands either way.
	return true, nil
}

// notifyKnockout emails the business's users about a knockout. The check
// result does not depend on delivery, so failures only log.
func (s *Service) notifyKnockout(ctx context.Context, contract *domain.GrainContract, marketPrice decimal.Decimal, knockedAt time.Time) {
	if s.Notify == nil {
		return
	}
	var users []domain.User
	if err := s.DB.WithContext(ctx).Where("business_id = ?", contract.BusinessID).Find(&users).Error; err != nil {
		log.Warn().Err(err).Str("contract_id", contract.ContractID.String()).
			Msg("knockout alert recipient lookup failed")
		return
	}
	alert := emails.KnockoutAlert{
		Commodity:     string(contract.Commodity),
		Buyer:         contract.Buyer,
		KnockoutPrice: contract.Accumulator.KnockoutPrice,
		MarketPrice:   marketPrice,
		TriggeredAt:   knockedAt,
	}
	for _, u := range users {
		if err := s.Notify.SendKnockoutAlert(ctx, u.Email, u.Fullname, alert); err != nil {
			log.Warn().Err(err).Str("contract_id", contract.ContractID.String()).
				Msg("knockout alert send failed")
		}
	}
}

// DailyEntryInput is the manual ledger payload.
type DailyEntryInput struct {
	EntryDate       time.Time
	BushelsMarketed decimal.Decimal
	MarketPrice     decimal.Decimal
	WasDoubledUp    bool
	Notes           *string
	ActorEmail      *string
}

// AddDailyEntry appends a manual ledger record and bumps the accumulator's
// running total and the contract's delivered bushels in one transaction.
// The ledger is additive to the time-based accrual and is not reconciled
// against it.
func (s *Service) AddDailyEntry(ctx context.Context, businessID, contractID uuid.UUID, input DailyEntryInput) (*domain.AccumulatorDailyEntry, error) {
	if input.EntryDate.IsZero() || !input.BushelsMarketed.IsPositive() {
		return nil, ErrInvalidEntry
	}

	var entry *domain.AccumulatorDailyEntry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract domain.GrainContract
		if err := tx.Preload("Accumulator").
			Where("contract_id = ? AND business_id = ?", contractID, businessID).
			First(&contract).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrContractNotFound
			}
			return err
		}
		details := contract.Accumulator
		if contract.Kind != domain.ContractAccumulator || details == nil {
			return ErrNotAccumulator
		}

		newTotal := details.TotalBushelsMarketed.Add(input.BushelsMarketed)
		if newTotal.GreaterThan(contract.TotalBushels) {
			return ErrExceedsContractTotal
		}

		entry = &domain.AccumulatorDailyEntry{
			ContractID:      contract.ContractID,
			EntryDate:       input.EntryDate,
			BushelsMarketed: input.BushelsMarketed,
			MarketPrice:     input.MarketPrice,
			WasDoubledUp:    input.WasDoubledUp,
			Notes:           input.Notes,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		details.TotalBushelsMarketed = newTotal
		if err := tx.Save(details).Error; err != nil {
			return err
		}

		contract.DeliveredBushels = contract.DeliveredBushels.Add(input.BushelsMarketed)
		if err := tx.Save(&contract).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"entry_date":       input.EntryDate,
			"bushels_marketed": input.BushelsMarketed,
			"market_price":     input.MarketPrice,
			"was_doubled_up":   input.WasDoubledUp,
		})
		return tx.Create(&domain.ContractEvent{
			ContractID: contract.ContractID,
			EventType:  domain.EventManualEntry,
			ActorEmail: input.ActorEmail,
			EventData:  datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListDailyEntries returns the manual ledger for a contract, newest first.
func (s *Service) ListDailyEntries(ctx context.Context, businessID, contractID uuid.UUID) ([]domain.AccumulatorDailyEntry, error) {
	var contract domain.GrainContract
	err := s.DB.WithContext(ctx).
		Where("contract_id = ? AND business_id = ?", contractID, businessID).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	entries := []domain.AccumulatorDailyEntry{}
	err = s.DB.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("entry_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
