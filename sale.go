package rsutax

import (
	"fmt"

	"github.com/etnz/rsutax/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SaleRecord details the part of a sale matched against a single lot.
//
// Numbers in comments are the boxes of the French capital gains form 2074 each field feeds.
type SaleRecord struct {
	Date                   date.Date       // 513
	SellingPrice           Money           // 514, per share
	Quantity               Quantity        // 515
	Proceeds               Money           // 516 and 518
	AcquisitionPrice       Money           // 520, per share
	AcquisitionCost        Money           // 521 and 523
	Result                 Money           // proceeds minus acquisition cost
	TaxableBase            Money           // acquisition gain taxed as income
	TaxableBaseAfterRebate Money           // same, after the holding period rebate
	Gain                   Money           // capital gain
	RebateRate             decimal.Decimal // holding period rebate rate
	Tax                    Money

	LotID       string
	VestingDate date.Date
	Position    int // of the lot in the portfolio before the sale
}

// newSaleRecord scales a per-share breakdown to the quantity sold.
func newSaleRecord(sell SellEvent, l Lot, a Allocation, b TaxBreakdown) SaleRecord {
	q := a.Quantity
	proceeds := b.SellingPrice.Mul(q)
	cost := b.VestingPrice.Mul(q)
	base := b.BasePrice.Mul(q)
	return SaleRecord{
		Date:                   sell.Date,
		SellingPrice:           b.SellingPrice,
		Quantity:               q,
		Proceeds:               proceeds,
		AcquisitionPrice:       b.VestingPrice,
		AcquisitionCost:        cost,
		Result:                 proceeds.Sub(cost),
		TaxableBase:            base,
		TaxableBaseAfterRebate: base.Scale(b.RebateRate),
		Gain:                   b.Gain.Mul(q),
		RebateRate:             b.RebateRate,
		Tax:                    b.Tax.Mul(q),
		LotID:                  l.ID,
		VestingDate:            l.VestingDate,
		Position:               a.Position,
	}
}

// ProcessSale sells shares from the portfolio using the given matching method.
//
// It returns the portfolio after the sale, without the emptied lots, and one record per lot
// sold in the order the lots were chosen. The portfolio passed in is never modified, on
// error nothing is sold.
func (c *Calculator) ProcessSale(sell SellEvent, p Portfolio, method MatchingMethod) (Portfolio, []SaleRecord, error) {
	plan, err := c.Match(method, sell, p)
	if err != nil {
		return nil, nil, err
	}

	records := make([]SaleRecord, 0, len(plan))
	for _, a := range plan {
		l := p[a.Position]
		b, err := c.Compute(sell.Date, l.VestingDate, l.Regime)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot compute tax of lot vested on %s: %w", l.VestingDate, err)
		}
		records = append(records, newSaleRecord(sell, l, a, b))
	}

	remaining := p.apply(plan)
	log.Debug().
		Stringer("sale", sell.Date).
		Stringer("quantity", sell.Amount).
		Int("lots", len(records)).
		Stringer("remaining", remaining.Total()).
		Msg("processed sale")
	return remaining, records, nil
}

// Summary sums a list of sale records.
type Summary struct {
	Quantity               Quantity
	Proceeds               Money
	AcquisitionCost        Money
	Result                 Money
	TaxableBase            Money
	TaxableBaseAfterRebate Money
	Gain                   Money
	Tax                    Money
}

// Totals returns the sums over records.
func Totals(records []SaleRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Quantity = s.Quantity.Add(r.Quantity)
		s.Proceeds = s.Proceeds.Add(r.Proceeds)
		s.AcquisitionCost = s.AcquisitionCost.Add(r.AcquisitionCost)
		s.Result = s.Result.Add(r.Result)
		s.TaxableBase = s.TaxableBase.Add(r.TaxableBase)
		s.TaxableBaseAfterRebate = s.TaxableBaseAfterRebate.Add(r.TaxableBaseAfterRebate)
		s.Gain = s.Gain.Add(r.Gain)
		s.Tax = s.Tax.Add(r.Tax)
	}
	return s
}
