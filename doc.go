// Package rsutax computes the French income tax due when selling vested restricted stock
// units (RSU) and chooses which vested lots each sale consumes.
//
// The core functionalities include:
//   - Price lookup: share prices and exchange rates are read from in-memory tables, rolling
//     forward up to 10 days when a date has no quote (see PriceTables).
//   - Tax computation: the acquisition gain is taxed as income after a holding period rebate,
//     plus social contributions, and the capital gain at the flat tax rate (see Calculator).
//   - Lot matching: three methods choose the lots sold, Optionality (recommended), Greedy
//     and FIFO (see MatchingMethod).
//   - Sale processing: a sale produces one record per lot, ready for the form 2074, and the
//     portfolio left after the sale (see Calculator.ProcessSale).
//
// The rules above 300k€ of acquisition gains are not handled.
package rsutax
