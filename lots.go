package rsutax

import (
	"github.com/etnz/rsutax/date"
	"github.com/google/uuid"
)

// Lot is a batch of shares that vested on the same day under the same regime.
type Lot struct {
	ID          string
	VestingDate date.Date
	Amount      Quantity // shares still held
	Regime      Regime
}

// NewLot returns a lot with a fresh identifier.
func NewLot(vesting date.Date, amount Quantity, regime Regime) Lot {
	return Lot{
		ID:          uuid.NewString(),
		VestingDate: vesting,
		Amount:      amount,
		Regime:      regime,
	}
}

// Portfolio is the ordered list of lots available for sale, oldest vesting first.
type Portfolio []Lot

// Total returns the number of shares held across all lots.
func (p Portfolio) Total() Quantity {
	var total Quantity
	for _, l := range p {
		total = total.Add(l.Amount)
	}
	return total
}

// Clone returns a copy of the portfolio that can be modified independently.
func (p Portfolio) Clone() Portfolio {
	if p == nil {
		return nil
	}
	return append(Portfolio(nil), p...)
}

// apply returns a copy of the portfolio with plan quantities removed and emptied lots dropped.
func (p Portfolio) apply(plan AllocationPlan) Portfolio {
	lots := p.Clone()
	for _, a := range plan {
		lots[a.Position].Amount = lots[a.Position].Amount.Sub(a.Quantity)
	}

	var remaining Portfolio
	for _, l := range lots {
		if l.Amount.IsPositive() {
			remaining = append(remaining, l)
		}
	}
	return remaining
}
