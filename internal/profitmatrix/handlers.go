package profitmatrix

import (
	"strconv"

	"grainbook-backend/internal/middleware"
	"grainbook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles profit-matrix handlers.
type Handlers struct {
	Service *Service
}

// ProfitMatrix GET /api/v1/fields/:id/profit-matrix
func (h *Handlers) ProfitMatrix(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	fieldID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid field ID format (must be a valid UUID)", 400, nil)
	}

	opts := Options{
		YieldSteps:           queryInt(c, "yield_steps"),
		PriceSteps:           queryInt(c, "price_steps"),
		ExpectedCountyYield:  queryDecimal(c, "expected_county_yield"),
		SimulatedCountyYield: queryDecimal(c, "simulated_county_yield"),
	}

	matrix, err := h.Service.ProfitMatrix(c.Context(), businessID, fieldID, opts)
	if err != nil {
		switch err {
		case ErrFieldNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Profit matrix generated successfully", matrix, nil)
}

// BreakEven GET /api/v1/fields/:id/break-even
func (h *Handlers) BreakEven(c *fiber.Ctx) error {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		return response.Error(c, "Invalid business ID format (must be a valid UUID)", 400, nil)
	}
	fieldID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid field ID format (must be a valid UUID)", 400, nil)
	}

	result, err := h.Service.BreakEven(c.Context(), businessID, fieldID)
	if err != nil {
		switch err {
		case ErrFieldNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Break-even computed successfully", result, nil)
}

func queryInt(c *fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func queryDecimal(c *fiber.Ctx, key string) *decimal.Decimal {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
