package contracts

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"grainbook-backend/internal/accrual"
	"grainbook-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupContractApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Business{}, &domain.GrainContract{}, &domain.AccumulatorDetails{},
		&domain.AccumulatorDailyEntry{}, &domain.ContractEvent{},
	))

	biz := domain.Business{Name: "Test Farms"}
	require.NoError(t, db.Create(&biz).Error)

	h := &Handlers{
		Service: &Service{DB: db},
		Accrual: &accrual.Service{DB: db},
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"business_id": biz.BusinessID.String(),
			"email":       "agronomist@testfarms.example",
		})
		return c.Next()
	})
	app.Post("/api/v1/contracts", h.Create)
	app.Get("/api/v1/contracts/:id", h.Get)
	app.Post("/api/v1/contracts/:id/knockout-check", h.KnockoutCheck)
	app.Post("/api/v1/contracts/:id/daily-entries", h.AddDailyEntry)
	app.Get("/api/v1/contracts/:id/daily-entries", h.ListDailyEntries)

	return app, db, biz.BusinessID
}

func TestCreateContractEndpoint(t *testing.T) {
	app, db, _ := setupContractApp(t)

	body := `{
		"kind": "accumulator",
		"commodity": "corn",
		"crop_year": 2024,
		"buyer": "River Terminal",
		"total_bushels": "50000",
		"accumulator": {
			"knockout_price": "5.25",
			"daily_bushels": "1000",
			"start_date": "2024-06-01T00:00:00Z"
		}
	}`
	req := httptest.NewRequest("POST", "/api/v1/contracts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&domain.AccumulatorDetails{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateContractEndpoint_MissingAccumulatorFields(t *testing.T) {
	app, _, _ := setupContractApp(t)

	body := `{
		"kind": "accumulator",
		"commodity": "corn",
		"crop_year": 2024,
		"total_bushels": "50000"
	}`
	req := httptest.NewRequest("POST", "/api/v1/contracts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Status string `json:"status"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(respBody, &envelope))
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, ErrAccumulatorFields.Error(), envelope.Error.Message)
}

func TestKnockoutCheckEndpoint(t *testing.T) {
	app, _, _ := setupContractApp(t)

	body := `{
		"kind": "accumulator",
		"commodity": "corn",
		"crop_year": 2024,
		"total_bushels": "50000",
		"accumulator": {
			"knockout_price": "5.25",
			"daily_bushels": "1000",
			"start_date": "2024-06-01T00:00:00Z"
		}
	}`
	req := httptest.NewRequest("POST", "/api/v1/contracts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var created struct {
		Data domain.GrainContract `json:"data"`
	}
	require.NoError(t, json.Unmarshal(respBody, &created))

	req = httptest.NewRequest("POST",
		"/api/v1/contracts/"+created.Data.ContractID.String()+"/knockout-check",
		strings.NewReader(`{"market_price": "5.30"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	respBody, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	var check struct {
		Data struct {
			Triggered bool `json:"triggered"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(respBody, &check))
	assert.True(t, check.Data.Triggered)
}

func TestKnockoutCheckEndpoint_MissingPrice(t *testing.T) {
	app, _, _ := setupContractApp(t)

	req := httptest.NewRequest("POST",
		"/api/v1/contracts/"+uuid.NewString()+"/knockout-check",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetContractEndpoint_NotFound(t *testing.T) {
	app, _, _ := setupContractApp(t)

	req := httptest.NewRequest("GET", "/api/v1/contracts/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
