package rsutax

import (
	"fmt"
	"slices"
)

// ProcessSchedule applies a series of sales, in chronological order, to the portfolio.
//
// It returns the portfolio after the last sale and the records of all the sales. If any sale
// fails, no sale is applied and the original portfolio is returned with the error.
func (c *Calculator) ProcessSchedule(events []SellEvent, p Portfolio, method MatchingMethod) (Portfolio, []SaleRecord, error) {
	events = slices.Clone(events)
	slices.SortStableFunc(events, func(a, b SellEvent) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})

	current := p
	var all []SaleRecord
	for i, sell := range events {
		next, records, err := c.ProcessSale(sell, current, method)
		if err != nil {
			return p, nil, fmt.Errorf("sale #%d of %s shares on %s: %w", i+1, sell.Amount, sell.Date, err)
		}
		current = next
		all = append(all, records...)
	}
	return current, all, nil
}

// MethodResult is the outcome of a schedule for one matching method.
type MethodResult struct {
	Method    MatchingMethod
	Remaining Portfolio
	Records   []SaleRecord
	Summary   Summary
}

// CompareMethods runs the same schedule with every matching method.
//
// Results are in MatchingMethods order.
func (c *Calculator) CompareMethods(events []SellEvent, p Portfolio) ([]MethodResult, error) {
	results := make([]MethodResult, 0, len(MatchingMethods))
	for _, m := range MatchingMethods {
		remaining, records, err := c.ProcessSchedule(events, p, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		results = append(results, MethodResult{
			Method:    m,
			Remaining: remaining,
			Records:   records,
			Summary:   Totals(records),
		})
	}
	return results, nil
}
