package rsutax

import (
	"fmt"

	"github.com/etnz/rsutax/date"
)

// LookupTolerance is the number of days a price lookup may roll forward when the requested
// date has no data (week-ends, bank holidays).
const LookupTolerance = 10

// PriceOracle provides the share price in the tax currency on a given date.
type PriceOracle interface {
	StockPrice(on date.Date) (Money, error)
}

// Table identifies one of the reference series held by PriceTables.
type Table int

const (
	// AssetPrice is the share price in the quotation currency.
	AssetPrice Table = iota
	// ExchangeRate is the number of quotation currency units for one unit of the tax currency.
	ExchangeRate
)

func (t Table) String() string {
	switch t {
	case AssetPrice:
		return "asset price"
	case ExchangeRate:
		return "exchange rate"
	default:
		return "unknown"
	}
}

// PriceTables is a PriceOracle backed by two in-memory series loaded once at startup.
//
// It is read-only after construction and can be shared.
type PriceTables struct {
	currency string
	asset    date.History[float64]
	fx       date.History[float64]
}

// NewPriceTables returns price tables converting asset prices into currency.
//
// asset maps dates to share prices in the quotation currency, fx maps dates to the
// quotation currency amount worth one unit of currency (e.g. USD per EUR).
func NewPriceTables(currency string, asset, fx map[date.Date]float64) (*PriceTables, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid tax currency: %w", err)
	}
	p := &PriceTables{currency: currency}
	for on, v := range asset {
		p.asset.Append(on, v)
	}
	for on, v := range fx {
		p.fx.Append(on, v)
	}
	return p, nil
}

// Currency returns the currency StockPrice values are expressed in.
func (p *PriceTables) Currency() string { return p.currency }

func (p *PriceTables) table(t Table) *date.History[float64] {
	if t == ExchangeRate {
		return &p.fx
	}
	return &p.asset
}

// PriceOn returns the value of table on a given day, or on the first day with data within
// LookupTolerance days after it.
func (p *PriceTables) PriceOn(on date.Date, t Table) (float64, error) {
	_, v, ok := p.table(t).ValueWithin(on, LookupTolerance)
	if !ok {
		return 0, fmt.Errorf("no %s on %s nor in the %d following days: %w", t, on, LookupTolerance, ErrDataUnavailable)
	}
	return v, nil
}

// StockPrice returns the share price on a given day converted into the tax currency.
func (p *PriceTables) StockPrice(on date.Date) (Money, error) {
	price, err := p.PriceOn(on, AssetPrice)
	if err != nil {
		return Money{}, err
	}
	rate, err := p.PriceOn(on, ExchangeRate)
	if err != nil {
		return Money{}, err
	}
	if rate == 0 {
		return Money{}, fmt.Errorf("zero %s on %s: %w", ExchangeRate, on, ErrDataUnavailable)
	}
	return M(newDecimal(price).Div(newDecimal(rate)), p.currency), nil
}
