package database

import (
	"grainbook-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// when running behind a connection pooler (PgBouncer and friends).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Business{},
		&domain.User{},
		&domain.GrainContract{},
		&domain.AccumulatorDetails{},
		&domain.AccumulatorDailyEntry{},
		&domain.ContractEvent{},
		&domain.Field{},
		&domain.FertilizerUsage{},
		&domain.ChemicalUsage{},
		&domain.SeedUsage{},
		&domain.OtherCost{},
		&domain.ContractAllocation{},
		&domain.InsurancePolicy{},
		&domain.FieldLoan{},
	)
}
