package accrual

import (
	"testing"
	"time"

	"grainbook-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ten inclusive days at 1000 bu/day.
func TestMarketedBushels_InclusiveDayCount(t *testing.T) {
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 6, 1),
		DailyBushels: decimal.NewFromInt(1000),
	}
	got := MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 6, 10))
	assert.True(t, got.Equal(decimal.NewFromInt(10000)), "got %s", got)
}

// A contract on its start date has one day accrued.
func TestMarketedBushels_SingleDay(t *testing.T) {
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 6, 1),
		DailyBushels: decimal.NewFromInt(1000),
	}
	got := MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 6, 1))
	assert.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)
}

func TestMarketedBushels_NotYetStarted(t *testing.T) {
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 6, 1),
		DailyBushels: decimal.NewFromInt(1000),
	}
	got := MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 5, 31))
	assert.True(t, got.IsZero())
}

func TestMarketedBushels_CappedAtTotal(t *testing.T) {
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 1, 1),
		DailyBushels: decimal.NewFromInt(1000),
	}
	total := decimal.NewFromInt(5000)
	got := MarketedBushels(details, total, day(2024, 12, 31))
	assert.True(t, got.Equal(total), "got %s", got)
}

func TestMarketedBushels_MonotoneUntilCap(t *testing.T) {
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 6, 1),
		DailyBushels: decimal.NewFromInt(750),
	}
	total := decimal.NewFromInt(10000)

	prev := decimal.Zero
	for i := 0; i < 40; i++ {
		got := MarketedBushels(details, total, day(2024, 6, 1).AddDate(0, 0, i))
		assert.False(t, got.LessThan(prev), "day %d: %s < %s", i, got, prev)
		assert.False(t, got.GreaterThan(total))
		assert.False(t, got.IsNegative())
		prev = got
	}
	assert.True(t, prev.Equal(total))
}

// Knockout freezes accrual at the knockout date.
func TestMarketedBushels_KnockoutFreezes(t *testing.T) {
	ko := day(2024, 6, 5)
	details := &domain.AccumulatorDetails{
		StartDate:       day(2024, 6, 1),
		DailyBushels:    decimal.NewFromInt(1000),
		KnockoutReached: true,
		KnockoutDate:    &ko,
	}
	got := MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 7, 1))
	assert.True(t, got.Equal(decimal.NewFromInt(5000)), "got %s", got)
}

// An end date before asOf caps the accrual window.
func TestMarketedBushels_EndDateCaps(t *testing.T) {
	end := day(2024, 6, 3)
	details := &domain.AccumulatorDetails{
		StartDate:    day(2024, 6, 1),
		DailyBushels: decimal.NewFromInt(1000),
		EndDate:      &end,
	}
	got := MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 6, 10))
	assert.True(t, got.Equal(decimal.NewFromInt(3000)), "got %s", got)

	// asOf before the end date wins.
	got = MarketedBushels(details, decimal.NewFromInt(50000), day(2024, 6, 2))
	assert.True(t, got.Equal(decimal.NewFromInt(2000)), "got %s", got)
}

func TestMarketedBushels_NilDetails(t *testing.T) {
	got := MarketedBushels(nil, decimal.NewFromInt(50000), day(2024, 6, 10))
	assert.True(t, got.IsZero())
}
