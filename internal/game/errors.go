package game

import (
	"errors"

	"github.com/vraelian/experimental-sub000/internal/finance"
)

// Typed command failures. Every command either fully applies or returns one
// of these with state untouched; none is a fault. The funds and loan
// sentinels are the ledger's own, so errors.Is matches across packages.
var (
	ErrInsufficientFunds    = finance.ErrInsufficientFunds
	ErrLoanUnavailable      = finance.ErrLoanUnavailable
	ErrInsufficientFuel     = errors.New("not enough fuel for the journey")
	ErrFuelCapacityExceeded = errors.New("journey exceeds the ship's fuel capacity")
	ErrCargoHoldFull        = errors.New("cargo hold cannot fit that much")
	ErrMarketSoldOut        = errors.New("the market has none in stock")
	ErrLimitedStock         = errors.New("the market cannot cover that quantity")
	ErrShipSaleBlocked      = errors.New("ship cannot be sold")
	ErrInvalidCommand       = errors.New("command not valid in the current state")
)
