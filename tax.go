package rsutax

import (
	"fmt"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// Holding period thresholds, in days. Years are counted as 365 days.
const (
	shortHolding = 365 * 2
	longHolding  = 365 * 8
)

var (
	noRebate   = decimal.NewFromInt(1)
	halfRebate = decimal.RequireFromString("0.5")
	longRebate = decimal.RequireFromString("0.35")
)

// RebateRate returns the share of the acquisition gain subject to income tax, after the
// holding period rebate: 1 under two years, 0.5 under eight years, 0.35 beyond.
func RebateRate(sale, vesting date.Date) decimal.Decimal {
	held := sale.Sub(vesting)
	switch {
	case held < shortHolding:
		return noRebate
	case held < longHolding:
		return halfRebate
	default:
		return longRebate
	}
}

// Regime identifies the legal framework a lot was granted under.
type Regime int

// StandardRegime is the only regime whose rules are implemented.
//
// The extra rules applying above 300k€ of acquisition gains are not modeled.
const StandardRegime Regime = 0

// TaxBreakdown holds the per-share figures of a sale matched against a lot.
type TaxBreakdown struct {
	VestingPrice Money           // share price on the vesting date
	BasePrice    Money           // acquisition gain taxed as income: the lesser of vesting and selling prices
	Gain         Money           // capital gain, zero on a loss
	SellingPrice Money           // share price on the sale date
	RebateRate   decimal.Decimal // see RebateRate
	Tax          Money           // upper bound of the tax due
}

// Calculator computes taxes from a PriceOracle and tax parameters.
type Calculator struct {
	Oracle PriceOracle
	Params TaxParameters
}

// NewCalculator returns a calculator using oracle for prices.
func NewCalculator(oracle PriceOracle, params TaxParameters) *Calculator {
	return &Calculator{Oracle: oracle, Params: params}
}

// WithParams returns a copy of the calculator using other tax parameters.
func (c *Calculator) WithParams(params TaxParameters) *Calculator {
	return &Calculator{Oracle: c.Oracle, Params: params}
}

// Compute returns the per-share tax breakdown of selling on 'sale' a share vested on 'vesting'.
//
// The acquisition gain is taxed as income (after rebate) plus social contributions, and the
// capital gain at the flat rate. The interaction between the rebate and the deductible part
// of social contributions is not modeled, so the tax is an upper bound.
func (c *Calculator) Compute(sale, vesting date.Date, regime Regime) (TaxBreakdown, error) {
	vestingPrice, err := c.Oracle.StockPrice(vesting)
	if err != nil {
		return TaxBreakdown{}, err
	}
	sellingPrice, err := c.Oracle.StockPrice(sale)
	if err != nil {
		return TaxBreakdown{}, err
	}
	if regime != StandardRegime {
		return TaxBreakdown{}, fmt.Errorf("regime %d: %w", regime, ErrUnsupportedRegime)
	}

	var gain, base Money
	if sellingPrice.GreaterThanOrEqual(vestingPrice) {
		gain = sellingPrice.Sub(vestingPrice)
		base = vestingPrice
	} else {
		// capital loss: the income part is capped at the selling price.
		gain = M(0, sellingPrice.Currency())
		base = sellingPrice
	}

	rebate := RebateRate(sale, vesting)
	p := c.Params
	incomeRate := rebate.Mul(p.IncomeTaxRate).Add(p.SocialContributionRate)
	tax := base.Scale(incomeRate).Add(gain.Scale(p.FlatTaxRate))

	return TaxBreakdown{
		VestingPrice: vestingPrice,
		BasePrice:    base,
		Gain:         gain,
		SellingPrice: sellingPrice,
		RebateRate:   rebate,
		Tax:          tax,
	}, nil
}
