package rsutax

import (
	"testing"

	"github.com/etnz/rsutax/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSale_FIFOHalfLot(t *testing.T) {
	today := date.Today()
	c := NewCalculator(constantOracle(100), DefaultTaxParameters())
	lot := NewLot(today.Add(-3*365), Q(100), StandardRegime)
	p := Portfolio{lot}

	plan, err := c.Match(FIFO, SellEvent{Date: today, Amount: Q(50)}, p)
	require.NoError(t, err)
	assert.Equal(t, AllocationPlan{{Position: 0, Quantity: Q(50)}}, plan)

	remaining, records, err := c.ProcessSale(SellEvent{Date: today, Amount: Q(50)}, p, FIFO)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, lot.ID, remaining[0].ID)
	assert.Equal(t, lot.VestingDate, remaining[0].VestingDate)
	assert.Equal(t, "50", remaining[0].Amount.String())
	require.Len(t, records, 1)
	assert.Equal(t, lot.ID, records[0].LotID)

	// the portfolio passed in is left untouched.
	assert.Equal(t, "100", p[0].Amount.String())
}

func TestProcessSale_Record(t *testing.T) {
	c, p := scenario()

	_, records, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: Q(40)}, p, Optionality)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// records follow the allocation order.
	var got []int
	for _, r := range records {
		got = append(got, r.Position)
	}
	assert.Equal(t, []int{0, 1, 2, 4}, got)

	// 20 shares vested at 100€, sold at 150€ with a 50% rebate.
	r := records[1]
	assert.Equal(t, saleDay, r.Date)
	assert.Equal(t, p[1].ID, r.LotID)
	assert.Equal(t, p[1].VestingDate, r.VestingDate)
	assert.Equal(t, "20", r.Quantity.String())
	assert.True(t, r.SellingPrice.Equal(EUR(150)))
	assert.True(t, r.Proceeds.Equal(EUR(3000)))
	assert.True(t, r.AcquisitionPrice.Equal(EUR(100)))
	assert.True(t, r.AcquisitionCost.Equal(EUR(2000)))
	assert.True(t, r.Result.Equal(EUR(1000)))
	assert.True(t, r.TaxableBase.Equal(EUR(2000)))
	assert.True(t, r.TaxableBaseAfterRebate.Equal(EUR(1000)))
	assert.True(t, r.Gain.Equal(EUR(1000)))
	assert.Equal(t, "0.5", r.RebateRate.String())
	assert.True(t, r.Tax.Equal(EUR(944)), "Tax = %s", r.Tax.Decimal()) // 20 * 47.2

	// 5 shares vested at 10€ without rebate.
	r = records[3]
	assert.True(t, r.TaxableBaseAfterRebate.Equal(EUR(50)))
	assert.True(t, r.Gain.Equal(EUR(700)))
	assert.True(t, r.Tax.Equal(EUR(233.6)), "Tax = %s", r.Tax.Decimal()) // 5 * 46.72
}

func TestProcessSale_Conservation(t *testing.T) {
	for _, method := range MatchingMethods {
		for _, amount := range []Quantity{Q(1), Q(12.5), Q(40), Q(105)} {
			t.Run(method.String()+"/"+amount.String(), func(t *testing.T) {
				c, p := scenario()
				total := p.Total()

				remaining, records, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: amount}, p, method)
				require.NoError(t, err)

				sold := Totals(records).Quantity
				assert.True(t, sold.Equal(amount), "sold %s, want %s", sold, amount)
				assert.True(t, remaining.Total().Add(sold).Equal(total), "remaining %s + sold %s != %s", remaining.Total(), sold, total)
				for _, l := range remaining {
					assert.True(t, l.Amount.IsPositive(), "empty lot %s kept", l.ID)
				}
				assert.True(t, p.Total().Equal(total), "input portfolio modified")
			})
		}
	}
}

func TestProcessSale_RemovesEmptiedLots(t *testing.T) {
	c, p := scenario()

	remaining, _, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: Q(40)}, p, Optionality)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, p[3].ID, remaining[0].ID)
	assert.Equal(t, "30", remaining[0].Amount.String())
	assert.Equal(t, p[4].ID, remaining[1].ID)
	assert.Equal(t, "35", remaining[1].Amount.String())
}

func TestProcessSale_Failures(t *testing.T) {
	t.Run("insufficient shares", func(t *testing.T) {
		c, p := scenario()
		before := p.Clone()
		remaining, records, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: Q(200)}, p, FIFO)
		assert.ErrorIs(t, err, ErrInsufficientShares)
		assert.Nil(t, remaining)
		assert.Nil(t, records)
		assert.Equal(t, before, p)
	})

	t.Run("unsupported regime sold with FIFO", func(t *testing.T) {
		c, p := scenario()
		p[0].Regime = Regime(2)
		before := p.Clone()
		_, _, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: Q(5)}, p, FIFO)
		assert.ErrorIs(t, err, ErrUnsupportedRegime)
		assert.Equal(t, before, p)
	})
}

func TestTotals(t *testing.T) {
	c, p := scenario()
	_, records, err := c.ProcessSale(SellEvent{Date: saleDay, Amount: Q(40)}, p, Greedy)
	require.NoError(t, err)

	s := Totals(records)
	assert.Equal(t, "40", s.Quantity.String())
	assert.True(t, s.Proceeds.Equal(EUR(6000)))
	assert.True(t, s.AcquisitionCost.Equal(EUR(700))) // 10*40 + 30*10
	assert.True(t, s.Result.Equal(EUR(5300)))
	assert.True(t, s.Tax.Equal(EUR(1842.4)), "Tax = %s", s.Tax.Decimal()) // 10*44.08 + 30*46.72

	assert.True(t, Totals(nil).Tax.IsZero())
}
