package contracts

import (
	"time"

	"grainbook-backend/internal/accrual"
	"grainbook-backend/internal/middleware"
	"grainbook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles contract handlers.
type Handlers struct {
	Service *Service
	Accrual *accrual.Service
}

// Create POST /api/v1/contracts
func (h *Handlers) Create(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	contract, err := h.Service.Create(c.Context(), businessID, input)
	if err != nil {
		switch err {
		case ErrInvalidKind, ErrInvalidCommodity, ErrInvalidBushels, ErrAccumulatorFields:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.SuccessCreated(c, "Contract created successfully", contract, nil)
}

// Get GET /api/v1/contracts/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid contract ID format (must be a valid UUID)", 400, nil)
	}

	view, err := h.Service.Get(c.Context(), businessID, contractID)
	if err != nil {
		switch err {
		case ErrContractNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Contract fetched successfully", view, nil)
}

// List GET /api/v1/contracts
func (h *Handlers) List(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}

	views, err := h.Service.List(c.Context(), businessID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	return response.Success(c, "Contracts fetched successfully", views, nil)
}

type knockoutCheckRequest struct {
	MarketPrice decimal.Decimal `json:"market_price"`
}

// KnockoutCheck POST /api/v1/contracts/:id/knockout-check
func (h *Handlers) KnockoutCheck(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid contract ID format (must be a valid UUID)", 400, nil)
	}

	var req knockoutCheckRequest
	if err := c.BodyParser(&req); err != nil || !req.MarketPrice.IsPositive() {
		return response.Error(c, "market_price is required and must be positive", 400, nil)
	}

	triggered, err := h.Accrual.CheckKnockout(c.Context(), businessID, contractID, req.MarketPrice)
	if err != nil {
		switch err {
		case accrual.ErrContractNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Knockout check completed", fiber.Map{"triggered": triggered}, nil)
}

type dailyEntryRequest struct {
	Date            time.Time       `json:"date"`
	BushelsMarketed decimal.Decimal `json:"bushels_marketed"`
	MarketPrice     decimal.Decimal `json:"market_price"`
	WasDoubledUp    bool            `json:"was_doubled_up"`
	Notes           *string         `json:"notes"`
}

// AddDailyEntry POST /api/v1/contracts/:id/daily-entries
func (h *Handlers) AddDailyEntry(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid contract ID format (must be a valid UUID)", 400, nil)
	}

	var req dailyEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	var actorEmail *string
	if m, ok := middleware.GetUser(c).(map[string]interface{}); ok {
		if email, _ := m["email"].(string); email != "" {
			actorEmail = &email
		}
	}

	entry, err := h.Accrual.AddDailyEntry(c.Context(), businessID, contractID, accrual.DailyEntryInput{
		EntryDate:       req.Date,
		BushelsMarketed: req.BushelsMarketed,
		MarketPrice:     req.MarketPrice,
		WasDoubledUp:    req.WasDoubledUp,
		Notes:           req.Notes,
		ActorEmail:      actorEmail,
	})
	if err != nil {
		switch err {
		case accrual.ErrContractNotFound:
			return response.Error(c, err.Error(), 404, nil)
		case accrual.ErrNotAccumulator, accrual.ErrInvalidEntry, accrual.ErrExceedsContractTotal:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.SuccessCreated(c, "Daily entry recorded successfully", entry, nil)
}

// ListDailyEntries GET /api/v1/contracts/:id/daily-entries
func (h *Handlers) ListDailyEntries(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid contract ID format (must be a valid UUID)", 400, nil)
	}

	entries, err := h.Accrual.ListDailyEntries(c.Context(), businessID, contractID)
	if err != nil {
		switch err {
		case accrual.ErrContractNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Daily entries fetched successfully", entries, nil)
}
