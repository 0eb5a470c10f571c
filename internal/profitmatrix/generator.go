package profitmatrix

import (
	"context"

	"grainbook-backend/internal/costs"
	"grainbook-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// IndemnityCalculator resolves a field's policy and prices indemnity for one
// scenario. A lookup failure is treated the same as having no policy.
type IndemnityCalculator interface {
	GetPolicy(ctx context.Context, fieldID uuid.UUID) (*domain.InsurancePolicy, error)
	CalculateIndemnity(policy *domain.InsurancePolicy, aph, scenarioYield, scenarioPrice decimal.Decimal) (base, sco, eco decimal.Decimal)
}

// AllocationProvider supplies a field's active contract allocations for a
// crop year and commodity.
type AllocationProvider interface {
	ActiveAllocations(ctx context.Context, fieldID uuid.UUID, cropYear int, commodity domain.Commodity) ([]domain.ContractAllocation, error)
}

const (
	defaultSteps = 7
	minSteps     = 2
	maxSteps     = 25
)

// Scenario ladders span 50%-120% of APH for yield and 60%-140% of the base
// price for price.
var (
	yieldPctLow  = decimal.NewFromFloat(0.50)
	yieldPctSpan = decimal.NewFromFloat(0.70)
	pricePctLow  = decimal.NewFromFloat(0.60)
	pricePctSpan = decimal.NewFromFloat(0.80)

	nickel = decimal.NewFromFloat(0.05)
	dime   = decimal.NewFromFloat(0.10)

	// Fallback yield ladder when APH is unset: 100, 120, 140, ... bu/acre.
	fallbackYieldBase = decimal.NewFromInt(100)
	fallbackYieldStep = decimal.NewFromInt(20)
)

// defaultBasePrice anchors the price ladder when the field has no policy
// with a projected price.
func defaultBasePrice(commodity domain.Commodity) decimal.Decimal {
	switch commodity {
	case domain.CommodityCorn:
		return decimal.NewFromFloat(4.66)
	case domain.CommoditySoybeans:
		return decimal.NewFromFloat(11.20)
	case domain.CommodityWheat:
		return decimal.NewFromFloat(5.50)
	}
	return decimal.NewFromFloat(5.00)
}

// priceIncrement is the tick scenario prices round to: dimes for soybeans,
// nickels otherwise.
func priceIncrement(commodity domain.Commodity) decimal.Decimal {
	if commodity == domain.CommoditySoybeans {
		return dime
	}
	return nickel
}

// Options tune scenario generation. ExpectedCountyYield and
// SimulatedCountyYield are accepted for request compatibility but have no
// effect on the grid; county-yield products are not modeled yet.
type Options struct {
	YieldSteps           int
	PriceSteps           int
	ExpectedCountyYield  *decimal.Decimal
	SimulatedCountyYield *decimal.Decimal
}

// Cell is one (yield, price) scenario. All currency figures are $/acre,
// rounded to cents independently per cell.
type Cell struct {
	YieldPerAcre     decimal.Decimal `json:"yield_per_acre"`
	Price            decimal.Decimal `json:"price"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue_per_acre"`
	TotalCost        decimal.Decimal `json:"total_cost_per_acre"`
	BaseIndemnity    decimal.Decimal `json:"base_indemnity"`
	SCOIndemnity     decimal.Decimal `json:"sco_indemnity"`
	ECOIndemnity     decimal.Decimal `json:"eco_indemnity"`
	InsurancePremium decimal.Decimal `json:"insurance_premium"`
	NetProfit        decimal.Decimal `json:"net_profit_per_acre"`
}

// Matrix is the full scenario grid plus the scalars it was seeded from.
// Cells are indexed [yield][price].
type Matrix struct {
	YieldScenarios    []decimal.Decimal `json:"yield_scenarios"`
	PriceScenarios    []decimal.Decimal `json:"price_scenarios"`
	Cells             [][]Cell          `json:"cells"`
	CostBreakdown     costs.Breakdown   `json:"cost_breakdown"`
	BreakEvenPrice    decimal.Decimal   `json:"break_even_price"`
	MarketedBushels   decimal.Decimal   `json:"marketed_bushels"`
	MarketedBuPerAcre decimal.Decimal   `json:"marketed_bu_per_acre"`
	MarketedAvgPrice  decimal.Decimal   `json:"marketed_avg_price"`
}

// Generator builds the yield × price profitability grid for a field-year.
// All collaborators are injected so tests can substitute them.
type Generator struct {
	Costs       *costs.Aggregator
	Insurance   IndemnityCalculator
	Allocations AllocationProvider
}

// Generate reconciles the field's marketed position, production cost, and
// insurance coverage into the scenario grid. The field's usage records must
// be preloaded.
func (g *Generator) Generate(ctx context.Context, field *domain.Field, opts Options) (*Matrix, error) {
	yieldSteps := clampSteps(opts.YieldSteps)
	priceSteps := clampSteps(opts.PriceSteps)

	breakdown := g.Costs.Compute(ctx, field)
	totalCostPerAcre := breakdown.TotalCostPerAcre

	allocs, err := g.Allocations.ActiveAllocations(ctx, field.FieldID, field.CropYear, field.Commodity)
	if err != nil {
		return nil, err
	}

	marketedBushels := decimal.Zero
	marketedValue := decimal.Zero
	for _, a := range allocs {
		marketedBushels = marketedBushels.Add(a.AllocatedBushels)
		marketedValue = marketedValue.Add(a.AllocatedBushels.Mul(a.Contract.EffectivePrice()))
	}

	marketedBuPerAcre := decimal.Zero
	if field.Acres.IsPositive() {
		marketedBuPerAcre = marketedBushels.DivRound(field.Acres, 4)
	}
	marketedAvgPrice := decimal.Zero
	if marketedBushels.IsPositive() {
		marketedAvgPrice = marketedValue.DivRound(marketedBushels, 4)
	}

	policy, err := g.Insurance.GetPolicy(ctx, field.FieldID)
	if err != nil {
		// Indistinguishable from "no policy" for the grid; keep a trace of
		// the gap.
		log.Warn().Err(err).Str("field_id", field.FieldID.String()).
			Msg("insurance policy lookup failed, generating matrix without coverage")
		policy = nil
	}

	basePrice := defaultBasePrice(field.Commodity)
	if policy != nil && policy.ProjectedPrice.IsPositive() {
		basePrice = policy.ProjectedPrice
	}

	premiumPerAcre := decimal.Zero
	if policy != nil {
		premiumPerAcre = policy.PremiumPerAcre
		if policy.HasSCO && policy.SCOPremiumAcre != nil {
			premiumPerAcre = premiumPerAcre.Add(*policy.SCOPremiumAcre)
		}
		if policy.HasECO && policy.ECOPremiumAcre != nil {
			premiumPerAcre = premiumPerAcre.Add(*policy.ECOPremiumAcre)
		}
	}

	yields := YieldScenarios(field.APHYield, yieldSteps)
	prices := PriceScenarios(basePrice, priceSteps, field.Commodity)

	cells := make([][]Cell, len(yields))
	for i, y := range yields {
		row := make([]Cell, len(prices))
		for j, p := range prices {
			// Contracted bushels are an obligation, not a revenue guarantee:
			// a yield below the marketed commitment caps realizable marketed
			// revenue at that yield.
			actualMarketed := marketedBuPerAcre
			if actualMarketed.GreaterThan(y) {
				actualMarketed = y
			}
			actualUnmarketed := y.Sub(marketedBuPerAcre)
			if actualUnmarketed.IsNegative() {
				actualUnmarketed = decimal.Zero
			}

			gross := actualMarketed.Mul(marketedAvgPrice).Add(actualUnmarketed.Mul(p))

			base, sco, eco := decimal.Zero, decimal.Zero, decimal.Zero
			if policy != nil {
				base, sco, eco = g.Insurance.CalculateIndemnity(policy, field.APHYield, y, p)
			}

			net := gross.Sub(totalCostPerAcre).Sub(premiumPerAcre).Add(base).Add(sco).Add(eco)

			row[j] = Cell{
				YieldPerAcre:     y,
				Price:            p,
				GrossRevenue:     gross.Round(2),
				TotalCost:        totalCostPerAcre.Round(2),
				BaseIndemnity:    base.Round(2),
				SCOIndemnity:     sco.Round(2),
				ECOIndemnity:     eco.Round(2),
				InsurancePremium: premiumPerAcre.Round(2),
				NetProfit:        net.Round(2),
			}
		}
		cells[i] = row
	}

	breakEven := decimal.Zero
	if field.ProjectedYield.IsPositive() {
		breakEven = totalCostPerAcre.DivRound(field.ProjectedYield, 2)
	}

	return &Matrix{
		YieldScenarios:    yields,
		PriceScenarios:    prices,
		Cells:             cells,
		CostBreakdown:     breakdown,
		BreakEvenPrice:    breakEven,
		MarketedBushels:   marketedBushels,
		MarketedBuPerAcre: marketedBuPerAcre,
		MarketedAvgPrice:  marketedAvgPrice,
	}, nil
}

func clampSteps(steps int) int {
	if steps == 0 {
		return defaultSteps
	}
	if steps < minSteps {
		return minSteps
	}
	if steps > maxSteps {
		return maxSteps
	}
	return steps
}

// YieldScenarios spaces steps points linearly over 50%-120% of APH, rounded
// to whole bushels. Without an APH it falls back to a fixed ladder starting
// at 100 bu/acre.
func YieldScenarios(aph decimal.Decimal, steps int) []decimal.Decimal {
	out := make([]decimal.Decimal, steps)
	if !aph.IsPositive() {
		for i := range out {
			out[i] = fallbackYieldBase.Add(fallbackYieldStep.Mul(decimal.NewFromInt(int64(i))))
		}
		return out
	}

	stepSize := yieldPctSpan.Div(decimal.NewFromInt(int64(steps - 1)))
	for i := range out {
		pct := yieldPctLow.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		out[i] = aph.Mul(pct).Round(0)
	}
	return out
}

// PriceScenarios spaces steps points linearly over 60%-140% of the base
// price, snapped to the commodity's tick.
func PriceScenarios(basePrice decimal.Decimal, steps int, commodity domain.Commodity) []decimal.Decimal {
	inc := priceIncrement(commodity)
	stepSize := pricePctSpan.Div(decimal.NewFromInt(int64(steps - 1)))

	out := make([]decimal.Decimal, steps)
	for i := range out {
		pct := pricePctLow.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		raw := basePrice.Mul(pct)
		out[i] = raw.DivRound(inc, 0).Mul(inc)
	}
	return out
}
