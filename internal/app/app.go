package app

import (
	"grainbook-backend/internal/accrual"
	"grainbook-backend/internal/allocations"
	"grainbook-backend/internal/auth"
	"grainbook-backend/internal/config"
	"grainbook-backend/internal/constants"
	"grainbook-backend/internal/contracts"
	"grainbook-backend/internal/costs"
	"grainbook-backend/internal/emails"
	"grainbook-backend/internal/health"
	"grainbook-backend/internal/infrastructure/database"
	"grainbook-backend/internal/insurance"
	"grainbook-backend/internal/loans"
	"grainbook-backend/internal/middleware"
	"grainbook-backend/internal/profitmatrix"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		// Production schema changes are applied via migrations, not at boot.
		if cfg.Env != "production" {
			if err := database.AutoMigrate(db); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	// Health (no auth)
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/reset", healthHandlers.Reset)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)

	// Auth
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		DB:         db,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/signup", authHandlers.Signup)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Protected modules
	if db != nil {
		accrualService := &accrual.Service{
			DB:     db,
			Notify: &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom},
		}
		contractService := &contracts.Service{DB: db}
		contractHandlers := &contracts.Handlers{Service: contractService, Accrual: accrualService}

		contractGroup := app.Group("/api/v1/contracts", middleware.RequireAuth())
		contractGroup.Post("/", middleware.AuthorizePermission(constants.CreateContract), contractHandlers.Create)
		contractGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), contractHandlers.List)
		contractGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), contractHandlers.Get)
		contractGroup.Post("/:id/knockout-check", middleware.AuthorizePermission(constants.RunKnockoutCheck), contractHandlers.KnockoutCheck)
		contractGroup.Post("/:id/daily-entries", middleware.AuthorizePermission(constants.RecordDailyEntry), contractHandlers.AddDailyEntry)
		contractGroup.Get("/:id/daily-entries", middleware.AuthorizePermission(constants.ViewData), contractHandlers.ListDailyEntries)

		allocationService := &allocations.Service{DB: db}
		allocationHandlers := &allocations.Handlers{Service: allocationService}
		allocationGroup := app.Group("/api/v1/allocations", middleware.RequireAuth())
		allocationGroup.Post("/", middleware.AuthorizePermission(constants.AllocateBushels), allocationHandlers.Create)

		generator := &profitmatrix.Generator{
			Costs:       &costs.Aggregator{Loans: &loans.GormProvider{DB: db}},
			Insurance:   &insurance.GormProvider{DB: db},
			Allocations: allocationService,
		}
		matrixService := &profitmatrix.Service{DB: db, Generator: generator}
		matrixHandlers := &profitmatrix.Handlers{Service: matrixService}
		fieldGroup := app.Group("/api/v1/fields", middleware.RequireAuth())
		fieldGroup.Get("/:id/profit-matrix", middleware.AuthorizePermission(constants.ViewData), matrixHandlers.ProfitMatrix)
		fieldGroup.Get("/:id/break-even", middleware.AuthorizePermission(constants.ViewData), matrixHandlers.BreakEven)
	}

	return app, db, rdb, nil
}
