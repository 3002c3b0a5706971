package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/mocurve/utils"
)

// Tenor is a period such as 1W, 3M or 10Y.
type Tenor struct {
	Amount int
	Unit   byte // 'D', 'W', 'M' or 'Y'
}

// ParseTenor converts strings like "1W", "3M", "10Y" to a Tenor.
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("ParseTenor: invalid tenor %q", s)
	}
	unit := s[len(s)-1]
	switch unit {
	case 'D', 'W', 'M', 'Y':
	default:
		return Tenor{}, fmt.Errorf("ParseTenor: invalid unit in %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return Tenor{}, fmt.Errorf("ParseTenor: invalid amount in %q", s)
	}
	return Tenor{Amount: n, Unit: unit}, nil
}

// MustParseTenor is ParseTenor for literals. It panics on error.
func MustParseTenor(s string) Tenor {
	t, err := ParseTenor(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tenor) String() string {
	if t.Unit == 0 {
		return ""
	}
	return strconv.Itoa(t.Amount) + string(t.Unit)
}

// IsZero reports whether the tenor was never set.
func (t Tenor) IsZero() bool { return t.Unit == 0 }

// Months returns the tenor in months for M and Y units, and 0 otherwise.
func (t Tenor) Months() int {
	switch t.Unit {
	case 'M':
		return t.Amount
	case 'Y':
		return 12 * t.Amount
	default:
		return 0
	}
}

// Years approximates the tenor as a year fraction.
func (t Tenor) Years() float64 {
	switch t.Unit {
	case 'D':
		return float64(t.Amount) / 365.0
	case 'W':
		return float64(t.Amount) * 7.0 / 365.0
	case 'M':
		return float64(t.Amount) / 12.0
	default:
		return float64(t.Amount)
	}
}

// AddTo shifts d by the tenor without business day adjustment. Month and year tenors
// clip to month end.
func (t Tenor) AddTo(d time.Time) time.Time {
	switch t.Unit {
	case 'D':
		return d.AddDate(0, 0, t.Amount)
	case 'W':
		return d.AddDate(0, 0, 7*t.Amount)
	default:
		return utils.AddMonth(d, t.Months())
	}
}
