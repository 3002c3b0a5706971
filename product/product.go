// Package product defines the trade representation shared by calibration instruments.
package product

import (
	"fmt"
	"time"
)

// BuySell is the direction of a trade from the holder's point of view.
type BuySell string

const (
	// Buy pays the fixed rate of a swap, or places the deposit.
	Buy BuySell = "BUY"
	// Sell receives the fixed rate of a swap, or takes the deposit.
	Sell BuySell = "SELL"
)

// Sign returns +1 for Buy and -1 for Sell.
func (b BuySell) Sign() float64 {
	if b == Sell {
		return -1
	}
	return 1
}

// ParseBuySell validates a direction string.
func ParseBuySell(s string) (BuySell, error) {
	switch BuySell(s) {
	case Buy, Sell:
		return BuySell(s), nil
	default:
		return "", fmt.Errorf("ParseBuySell: unknown direction %q", s)
	}
}

// Trade is a calibration instrument produced from a template and a quote.
type Trade interface {
	TradeDate() time.Time
	StartDate() time.Time
	EndDate() time.Time
	BuySell() BuySell
}
