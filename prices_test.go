package rsutax

import (
	"testing"
	"time"

	"github.com/etnz/rsutax/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// usdTables quotes a USD stock from Monday 2021-05-03 to Friday 2021-05-14, week days only.
func usdTables(t *testing.T) *PriceTables {
	t.Helper()
	asset := make(map[date.Date]float64)
	fx := make(map[date.Date]float64)
	for d := date.New(2021, time.May, 3); !d.After(date.New(2021, time.May, 14)); d = d.Add(1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		asset[d] = 150 + float64(d.Day())
		fx[d] = 1.2
	}
	p, err := NewPriceTables("EUR", asset, fx)
	require.NoError(t, err)
	return p
}

func TestNewPriceTables_InvalidCurrency(t *testing.T) {
	_, err := NewPriceTables("ZZZ", nil, nil)
	assert.Error(t, err)
}

func TestPriceTables_PriceOn(t *testing.T) {
	p := usdTables(t)
	last := date.New(2021, time.May, 14)

	testCases := []struct {
		name    string
		on      date.Date
		table   Table
		want    float64
		wantErr bool
	}{
		{name: "exact", on: date.New(2021, time.May, 4), table: AssetPrice, want: 154},
		{name: "week-end rolls to monday", on: date.New(2021, time.May, 8), table: AssetPrice, want: 160},
		{name: "ten days before the first quote", on: date.New(2021, time.April, 23), table: AssetPrice, want: 153},
		{name: "eleven days before the first quote", on: date.New(2021, time.April, 22), table: AssetPrice, wantErr: true},
		{name: "exchange rate", on: date.New(2021, time.May, 9), table: ExchangeRate, want: 1.2},
		{name: "after the last quote", on: last.Add(1), table: ExchangeRate, wantErr: true},
		{name: "eleven days after the last quote", on: last.Add(11), table: AssetPrice, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.PriceOn(tc.on, tc.table)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrDataUnavailable)
				assert.Contains(t, err.Error(), tc.on.String())
				assert.Contains(t, err.Error(), "10 following days")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriceTables_StockPrice(t *testing.T) {
	p := usdTables(t)

	got, err := p.StockPrice(date.New(2021, time.May, 14)) // 164 USD at 1.2 USD per EUR
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency())
	assert.True(t, got.Decimal().Round(6).Equal(EUR(136.666667).Decimal()), "StockPrice = %s", got.Decimal())
	assert.Equal(t, "EUR", p.Currency())

	_, err = p.StockPrice(date.New(2021, time.June, 30))
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestPriceTables_StockPrice_ZeroRate(t *testing.T) {
	on := date.New(2021, time.May, 3)
	p, err := NewPriceTables("EUR", map[date.Date]float64{on: 100}, map[date.Date]float64{on: 0})
	require.NoError(t, err)

	_, err = p.StockPrice(on)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestPriceTables_AsOracle(t *testing.T) {
	p := usdTables(t)
	c := NewCalculator(p, DefaultTaxParameters())

	b, err := c.Compute(date.New(2021, time.May, 14), date.New(2021, time.May, 3), StandardRegime)
	require.NoError(t, err)
	assert.True(t, b.Gain.IsPositive())
	assert.Equal(t, "1", b.RebateRate.String())
}
