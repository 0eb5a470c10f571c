package accrual

import (
	"time"

	"grainbook-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// MarketedBushels derives how many bushels of an accumulator contract are
// considered marketed as of a point in time. Accrual runs one daily
// increment per calendar day from the start date through the effective end,
// inclusive of both endpoints, so a contract on its start date has one day
// accrued. A knockout freezes the effective end at the knockout date; an end
// date caps it; otherwise it is asOf.
//
// Pure and deterministic. Callers recompute on every read instead of storing
// the result, so the displayed figure always tracks the current date.
func MarketedBushels(details *domain.AccumulatorDetails, totalBushels decimal.Decimal, asOf time.Time) decimal.Decimal {
	if details == nil {
		return decimal.Zero
	}

	effectiveEnd := asOf
	if details.KnockoutReached && details.KnockoutDate != nil {
		effectiveEnd = *details.KnockoutDate
	} else if details.EndDate != nil && details.EndDate.Before(asOf) {
		effectiveEnd = *details.EndDate
	}

	if effectiveEnd.Before(details.StartDate) {
		return decimal.Zero
	}

	daysElapsed := int64(effectiveEnd.Sub(details.StartDate)/(24*time.Hour)) + 1

	marketed := details.DailyBushels.Mul(decimal.NewFromInt(daysElapsed))
	if marketed.IsNegative() {
		return decimal.Zero
	}
	if marketed.GreaterThan(totalBushels) {
		return totalBushels
	}
	return marketed
}
