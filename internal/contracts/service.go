package contracts

import (
	"context"
	"time"

	"grainbook-backend/internal/accrual"
	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages grain contracts and their accumulator schedules.
type Service struct {
	DB *gorm.DB

	// Now supplies "as of" for accrual reads; overridable in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// AccumulatorInput carries the accrual schedule for accumulator contracts.
type AccumulatorInput struct {
	KnockoutPrice decimal.Decimal  `json:"knockout_price"`
	DoubleUpPrice *decimal.Decimal `json:"double_up_price"`
	DailyBushels  decimal.Decimal  `json:"daily_bushels"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	BasisLocked   bool             `json:"basis_locked"`
}

// CreateInput for a new contract.
type CreateInput struct {
	Kind         domain.ContractKind `json:"kind"`
	Commodity    domain.Commodity    `json:"commodity"`
	CropYear     int                 `json:"crop_year"`
	Buyer        string              `json:"buyer"`
	TotalBushels decimal.Decimal     `json:"total_bushels"`
	CashPrice    *decimal.Decimal    `json:"cash_price"`
	FuturesPrice *decimal.Decimal    `json:"futures_price"`
	BasisPrice   *decimal.Decimal    `json:"basis_price"`
	Accumulator  *AccumulatorInput   `json:"accumulator"`
}

// Create validates and persists a contract. Accumulator contracts must
// carry knockout price, daily bushels, and a start date; the check runs
// before anything is written.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, input CreateInput) (*domain.GrainContract, error) {
	switch input.Kind {
	case domain.ContractCash, domain.ContractBasis, domain.ContractHTA, domain.ContractAccumulator:
	default:
		return nil, ErrInvalidKind
	}
	switch input.Commodity {
	case domain.CommodityCorn, domain.CommoditySoybeans, domain.CommodityWheat, domain.CommodityOther:
	default:
		return nil, ErrInvalidCommodity
	}
	if !input.TotalBushels.IsPositive() {
		return nil, ErrInvalidBushels
	}
	if input.Kind == domain.ContractAccumulator {
		a := input.Accumulator
		if a == nil || !a.KnockoutPrice.IsPositive() || !a.DailyBushels.IsPositive() || a.StartDate.IsZero() {
			return nil, ErrAccumulatorFields
		}
	}

	contract := &domain.GrainContract{
		BusinessID:   businessID,
		Kind:         input.Kind,
		Commodity:    input.Commodity,
		CropYear:     input.CropYear,
		Buyer:        input.Buyer,
		TotalBushels: input.TotalBushels,
		CashPrice:    input.CashPrice,
		FuturesPrice: input.FuturesPrice,
		BasisPrice:   input.BasisPrice,
		IsActive:     true,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return err
		}
		if input.Kind != domain.ContractAccumulator {
			return nil
		}
		a := input.Accumulator
		details := &domain.AccumulatorDetails{
			ContractID:    contract.ContractID,
			KnockoutPrice: a.KnockoutPrice,
			DoubleUpPrice: a.DoubleUpPrice,
			DailyBushels:  a.DailyBushels,
			StartDate:     a.StartDate,
			EndDate:       a.EndDate,
			BasisLocked:   a.BasisLocked,
		}
		if err := tx.Create(details).Error; err != nil {
			return err
		}
		contract.Accumulator = details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// View is a contract read. For accumulators the delivered figure is derived
// from the accrual schedule at read time, so it tracks the calendar without
// a background job.
type View struct {
	domain.GrainContract
	MarketedToDate *decimal.Decimal `json:"marketed_to_date,omitempty"`
}

// Get returns one contract scoped to the business; cross-tenant lookups are
// a plain not-found.
func (s *Service) Get(ctx context.Context, businessID, contractID uuid.UUID) (*View, error) {
	var contract domain.GrainContract
	err := s.DB.WithContext(ctx).
		Preload("Accumulator").
		Where("contract_id = ? AND business_id = ?", contractID, businessID).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	view := &View{GrainContract: contract}
	if contract.Kind == domain.ContractAccumulator && contract.Accumulator != nil {
		marketed := accrual.MarketedBushels(contract.Accumulator, contract.TotalBushels, s.now())
		view.MarketedToDate = &marketed
		view.DeliveredBushels = marketed
	}
	return view, nil
}

// List returns the business's contracts, accumulator deliveries recomputed.
func (s *Service) List(ctx context.Context, businessID uuid.UUID) ([]View, error) {
	var contractRows []domain.GrainContract
	err := s.DB.WithContext(ctx).
		Preload("Accumulator").
		Where("business_id = ?", businessID).
		Order(`"createdAt" DESC`).
		Find(&contractRows).Error
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	views := make([]View, 0, len(contractRows))
	for _, c := range contractRows {
		v := View{GrainContract: c}
		if c.Kind == domain.ContractAccumulator && c.Accumulator != nil {
			marketed := accrual.MarketedBushels(c.Accumulator, c.TotalBushels, asOf)
			v.MarketedToDate = &marketed
			v.DeliveredBushels = marketed
		}
		views = append(views, v)
	}
	return views, nil
}
