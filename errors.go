package rsutax

import "errors"

var (
	// ErrDataUnavailable is returned when no price or exchange rate exists within the lookup
	// tolerance of a requested date.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInsufficientShares is returned when a sale asks for more shares than the portfolio holds.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrUnsupportedRegime is returned for lots under a regime whose tax rules are not implemented.
	ErrUnsupportedRegime = errors.New("unsupported regime")

	// ErrInvalidSell is returned for sell events that do not request a positive amount.
	ErrInvalidSell = errors.New("invalid sell event")
)
