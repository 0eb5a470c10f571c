package allocations

import (
	"grainbook-backend/internal/middleware"
	"grainbook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles allocation handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	ContractID       string          `json:"contract_id"`
	FieldID          string          `json:"field_id"`
	AllocatedBushels decimal.Decimal `json:"allocated_bushels"`
}

// Create POST /api/v1/allocations
func (h *Handlers) Create(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		return response.Error(c, "Invalid contract ID format (must be a valid UUID)", 400, nil)
	}
	fieldID, err := uuid.Parse(req.FieldID)
	if err != nil {
		return response.Error(c, "Invalid field ID format (must be a valid UUID)", 400, nil)
	}

	alloc, err := h.Service.Create(c.Context(), businessID, CreateInput{
		ContractID:       contractID,
		FieldID:          fieldID,
		AllocatedBushels: req.AllocatedBushels,
	})
	if err != nil {
		switch err {
		case ErrContractNotFound, ErrFieldNotFound:
			return response.Error(c, err.Error(), 404, nil)
		case ErrInvalidBushels, ErrOverAllocated:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.SuccessCreated(c, "Allocation created successfully", alloc, nil)
}
