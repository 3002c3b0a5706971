// Package option holds the strike representations used to query volatilities.
package option

import (
	"fmt"
	"math"
	"strconv"

	"github.com/meenmo/mocurve/check"
)

// StrikeType tags the representation of a Strike.
type StrikeType string

const (
	StrikeTypeStrike       StrikeType = "Strike"
	StrikeTypeLogMoneyness StrikeType = "LogMoneyness"
	StrikeTypeMoneyness    StrikeType = "Moneyness"
	StrikeTypeDelta        StrikeType = "Delta"
)

// Strike is one scalar exercise level with a fixed type tag. The implementations are
// SimpleStrike, LogMoneynessStrike, MoneynessStrike and DeltaStrike.
type Strike interface {
	Type() StrikeType
	Value() float64

	// WithValue returns a strike of the same type holding v.
	WithValue(v float64) Strike

	// Label is "<type>=<value>".
	Label() string

	strike()
}

func label(t StrikeType, v float64) string {
	return string(t) + "=" + strconv.FormatFloat(v, 'g', -1, 64)
}

// SimpleStrike is an absolute strike.
type SimpleStrike float64

func (s SimpleStrike) Type() StrikeType           { return StrikeTypeStrike }
func (s SimpleStrike) Value() float64             { return float64(s) }
func (s SimpleStrike) WithValue(v float64) Strike { return SimpleStrike(v) }
func (s SimpleStrike) Label() string              { return label(s.Type(), s.Value()) }
func (SimpleStrike) strike()                      {}

// LogMoneynessStrike is ln(strike/forward).
type LogMoneynessStrike float64

func (s LogMoneynessStrike) Type() StrikeType           { return StrikeTypeLogMoneyness }
func (s LogMoneynessStrike) Value() float64             { return float64(s) }
func (s LogMoneynessStrike) WithValue(v float64) Strike { return LogMoneynessStrike(v) }
func (s LogMoneynessStrike) Label() string              { return label(s.Type(), s.Value()) }
func (LogMoneynessStrike) strike()                      {}

// MoneynessStrike is strike/forward.
type MoneynessStrike float64

func (s MoneynessStrike) Type() StrikeType           { return StrikeTypeMoneyness }
func (s MoneynessStrike) Value() float64             { return float64(s) }
func (s MoneynessStrike) WithValue(v float64) Strike { return MoneynessStrike(v) }
func (s MoneynessStrike) Label() string              { return label(s.Type(), s.Value()) }
func (MoneynessStrike) strike()                      {}

// DeltaStrike is an option delta. It cannot be converted to a price level without a
// volatility, so ToLogMoneyness rejects it.
type DeltaStrike float64

func (s DeltaStrike) Type() StrikeType           { return StrikeTypeDelta }
func (s DeltaStrike) Value() float64             { return float64(s) }
func (s DeltaStrike) WithValue(v float64) Strike { return DeltaStrike(v) }
func (s DeltaStrike) Label() string              { return label(s.Type(), s.Value()) }
func (DeltaStrike) strike()                      {}

func checkStrikeAndForward(op string, strike, forward float64) error {
	if err := check.NotNegative(strike, op+": strike"); err != nil {
		return err
	}
	return check.NotNegative(forward, op+": forward")
}

// LogMoneynessStrikeOfStrikeAndForward returns ln(strike/forward). Neither strike nor
// forward may be negative. A zero strike gives -Inf, a zero forward +Inf, and a zero
// strike on a zero forward is 0/0, which gives NaN.
func LogMoneynessStrikeOfStrikeAndForward(strike, forward float64) (LogMoneynessStrike, error) {
	if err := checkStrikeAndForward("LogMoneynessStrikeOfStrikeAndForward", strike, forward); err != nil {
		return 0, err
	}
	return LogMoneynessStrike(math.Log(strike / forward)), nil
}

// MoneynessStrikeOfStrikeAndForward returns strike/forward under the same checks. A zero
// forward gives +Inf, or NaN when the strike is zero as well.
func MoneynessStrikeOfStrikeAndForward(strike, forward float64) (MoneynessStrike, error) {
	if err := checkStrikeAndForward("MoneynessStrikeOfStrikeAndForward", strike, forward); err != nil {
		return 0, err
	}
	return MoneynessStrike(strike / forward), nil
}

// ToLogMoneyness expresses s as log-moneyness against forward.
func ToLogMoneyness(s Strike, forward float64) (LogMoneynessStrike, error) {
	switch s.Type() {
	case StrikeTypeLogMoneyness:
		return LogMoneynessStrike(s.Value()), nil
	case StrikeTypeStrike:
		return LogMoneynessStrikeOfStrikeAndForward(s.Value(), forward)
	case StrikeTypeMoneyness:
		if err := check.NotNegative(s.Value(), "ToLogMoneyness: moneyness"); err != nil {
			return 0, err
		}
		return LogMoneynessStrike(math.Log(s.Value())), nil
	default:
		return 0, check.Errorf("ToLogMoneyness: %s strike cannot be converted", s.Type())
	}
}

// ToSimple expresses s as an absolute strike against forward.
func ToSimple(s Strike, forward float64) (SimpleStrike, error) {
	if err := check.Positive(forward, "ToSimple: forward"); err != nil {
		return 0, err
	}
	switch s.Type() {
	case StrikeTypeStrike:
		return SimpleStrike(s.Value()), nil
	case StrikeTypeLogMoneyness:
		return SimpleStrike(forward * math.Exp(s.Value())), nil
	case StrikeTypeMoneyness:
		return SimpleStrike(forward * s.Value()), nil
	default:
		return 0, check.Errorf("ToSimple: %s strike cannot be converted", s.Type())
	}
}

// ParseStrikeType validates a strike type name.
func ParseStrikeType(s string) (StrikeType, error) {
	switch t := StrikeType(s); t {
	case StrikeTypeStrike, StrikeTypeLogMoneyness, StrikeTypeMoneyness, StrikeTypeDelta:
		return t, nil
	}
	return "", check.Errorf("ParseStrikeType: unknown strike type %q", s)
}

// NewStrike builds the strike of type t holding v.
func NewStrike(t StrikeType, v float64) (Strike, error) {
	switch t {
	case StrikeTypeStrike:
		return SimpleStrike(v), nil
	case StrikeTypeLogMoneyness:
		return LogMoneynessStrike(v), nil
	case StrikeTypeMoneyness:
		return MoneynessStrike(v), nil
	case StrikeTypeDelta:
		return DeltaStrike(v), nil
	}
	return nil, fmt.Errorf("NewStrike: %w", check.Errorf("unknown strike type %q", t))
}
