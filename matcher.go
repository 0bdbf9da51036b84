package rsutax

import (
	"fmt"
	"math"
	"slices"

	"github.com/etnz/rsutax/date"
	"github.com/rs/zerolog/log"
)

// SellEvent is a request to sell Amount shares on Date.
type SellEvent struct {
	Date   date.Date
	Amount Quantity
}

func (s SellEvent) validate() error {
	if !s.Amount.IsPositive() {
		return fmt.Errorf("cannot sell %s shares on %s: %w", s.Amount, s.Date, ErrInvalidSell)
	}
	return nil
}

// Allocation is the quantity sold from the lot at Position in the portfolio.
type Allocation struct {
	Position int
	Quantity Quantity
}

// AllocationPlan lists the lots consumed by a sale, in the order they were chosen.
type AllocationPlan []Allocation

// Total returns the quantity sold by the plan.
func (p AllocationPlan) Total() Quantity {
	var total Quantity
	for _, a := range p {
		total = total.Add(a.Quantity)
	}
	return total
}

// ranked is a lot position with its sort key.
type ranked struct {
	position int
	key      float64
}

// consume fills the sell amount walking the portfolio in the given order of positions.
func consume(sell SellEvent, p Portfolio, order []int) (AllocationPlan, error) {
	remaining := sell.Amount
	var plan AllocationPlan
	for _, i := range order {
		if remaining.IsZero() {
			break
		}
		sold := MinQ(p[i].Amount, remaining)
		if !sold.IsPositive() {
			continue
		}
		plan = append(plan, Allocation{Position: i, Quantity: sold})
		remaining = remaining.Sub(sold)
	}
	if remaining.IsPositive() {
		return nil, fmt.Errorf("cannot sell %s shares on %s, only %s available: %w", sell.Amount, sell.Date, p.Total(), ErrInsufficientShares)
	}
	return plan, nil
}

// sortedPositions returns the positions ordered by ascending key, ties keep portfolio order.
func sortedPositions(ranks []ranked) []int {
	slices.SortStableFunc(ranks, func(a, b ranked) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		default:
			return 0
		}
	})
	order := make([]int, len(ranks))
	for i, r := range ranks {
		order[i] = r.position
	}
	return order
}

// MatchFIFO sells the lots in portfolio order.
func MatchFIFO(sell SellEvent, p Portfolio) (AllocationPlan, error) {
	if err := sell.validate(); err != nil {
		return nil, err
	}
	order := make([]int, len(p))
	for i := range p {
		order[i] = i
	}
	return consume(sell, p, order)
}

// MatchGreedy sells first the lots with the lowest tax per share.
func (c *Calculator) MatchGreedy(sell SellEvent, p Portfolio) (AllocationPlan, error) {
	if err := sell.validate(); err != nil {
		return nil, err
	}
	ranks := make([]ranked, 0, len(p))
	for i, l := range p {
		b, err := c.Compute(sell.Date, l.VestingDate, l.Regime)
		if err != nil {
			return nil, fmt.Errorf("cannot rank lot %d vested on %s: %w", i, l.VestingDate, err)
		}
		ranks = append(ranks, ranked{position: i, key: b.Tax.AsFloat()})
	}
	return consume(sell, p, sortedPositions(ranks))
}

// MatchOptionality sells first the lots that already benefit from a rebate, then the lots
// whose taxable base is the farthest from the selling price.
//
// A share is a forward on the stock plus a call option struck at its vesting price, because
// the tax rate changes at that price. The option is worth the least when the price is far
// from the strike, so those lots are sold first. This is a heuristic, not an optimum.
func (c *Calculator) MatchOptionality(sell SellEvent, p Portfolio) (AllocationPlan, error) {
	if err := sell.validate(); err != nil {
		return nil, err
	}
	selling, err := c.Oracle.StockPrice(sell.Date)
	if err != nil {
		return nil, err
	}
	ranks := make([]ranked, 0, len(p))
	for i, l := range p {
		b, err := c.Compute(sell.Date, l.VestingDate, l.Regime)
		if err != nil {
			return nil, fmt.Errorf("cannot rank lot %d vested on %s: %w", i, l.VestingDate, err)
		}
		ranks = append(ranks, ranked{position: i, key: optionalityScore(selling, b)})
	}
	return consume(sell, p, sortedPositions(ranks))
}

// optionalityScore is lower for lots to be sold first.
func optionalityScore(selling Money, b TaxBreakdown) float64 {
	score := -math.Abs(math.Log(selling.AsFloat() / b.BasePrice.AsFloat()))
	if b.RebateRate.LessThan(noRebate) {
		score -= 100
	}
	return score
}

// Match computes the allocation plan of a sale with the given method.
func (c *Calculator) Match(method MatchingMethod, sell SellEvent, p Portfolio) (plan AllocationPlan, err error) {
	switch method {
	case Optionality:
		plan, err = c.MatchOptionality(sell, p)
	case Greedy:
		plan, err = c.MatchGreedy(sell, p)
	case FIFO:
		plan, err = MatchFIFO(sell, p)
	default:
		return nil, fmt.Errorf("unsupported matching method %d", method)
	}
	if err != nil {
		return nil, err
	}
	for _, a := range plan {
		log.Debug().
			Str("method", method.String()).
			Stringer("sale", sell.Date).
			Int("position", a.Position).
			Stringer("vesting", p[a.Position].VestingDate).
			Stringer("quantity", a.Quantity).
			Msg("matched lot")
	}
	return plan, nil
}
