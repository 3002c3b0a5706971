// Package deposit models term deposits used to calibrate the short end of a curve.
package deposit

import (
	"time"

	"github.com/meenmo/mocurve/calendar"
	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

// TermDeposit is a single fixed-rate deposit from StartDate to EndDate.
type TermDeposit struct {
	tradeDate time.Time
	startDate time.Time
	endDate   time.Time
	buySell   product.BuySell
	Currency  string
	Notional  float64
	Rate      float64
	DayCount  market.DayCount
}

var _ product.Trade = TermDeposit{}

func (t TermDeposit) TradeDate() time.Time     { return t.tradeDate }
func (t TermDeposit) StartDate() time.Time     { return t.startDate }
func (t TermDeposit) EndDate() time.Time       { return t.endDate }
func (t TermDeposit) BuySell() product.BuySell { return t.buySell }

// YearFraction is the accrual of the deposit.
func (t TermDeposit) YearFraction() float64 {
	return utils.YearFraction(t.startDate, t.endDate, string(t.DayCount))
}

// ImpliedDiscountFactor is the end-date discount factor relative to the start date
// that prices the deposit at par.
func (t TermDeposit) ImpliedDiscountFactor() float64 {
	return 1 / (1 + t.Rate*t.YearFraction())
}

// Convention is a deposit market convention.
type Convention struct {
	Name        string
	Currency    string
	SpotLagDays int
	Calendar    calendar.CalendarID
	DayCount    market.DayCount
}

var conventions = map[string]Convention{
	"EUR-DEPOSIT-T2": {Currency: "EUR", SpotLagDays: 2, Calendar: calendar.TARGET, DayCount: market.Act360},
	"USD-DEPOSIT-T2": {Currency: "USD", SpotLagDays: 2, Calendar: calendar.USD, DayCount: market.Act360},
	"JPY-DEPOSIT-T2": {Currency: "JPY", SpotLagDays: 2, Calendar: calendar.JPN, DayCount: market.Act365F},
	"KRW-DEPOSIT-T1": {Currency: "KRW", SpotLagDays: 1, Calendar: calendar.KRW, DayCount: market.Act365F},
}

// ConventionByName looks up a deposit convention.
func ConventionByName(name string) (Convention, error) {
	c, ok := conventions[name]
	if !ok {
		return Convention{}, check.Errorf("unknown deposit convention %q", name)
	}
	c.Name = name
	return c, nil
}

// TermDepositTemplate is a convention applied to a tenor.
type TermDepositTemplate struct {
	Tenor      market.Tenor
	Convention Convention
}

// Validate checks that the template can produce trades.
func (t TermDepositTemplate) Validate() error {
	if t.Tenor.IsZero() || t.Tenor.Amount == 0 {
		return check.Errorf("TermDepositTemplate: tenor is required")
	}
	return check.NotEmpty(t.Convention.Name, "TermDepositTemplate: convention")
}

// Label is the tenor.
func (t TermDepositTemplate) Label() string { return t.Tenor.String() }

// ToTrade builds a deposit starting at spot. Buy places the deposit.
func (t TermDepositTemplate) ToTrade(valuationDate time.Time, side product.BuySell, notional, rate float64) (TermDeposit, error) {
	if err := t.Validate(); err != nil {
		return TermDeposit{}, err
	}
	c := t.Convention
	start := calendar.AddBusinessDays(c.Calendar, valuationDate, c.SpotLagDays)
	end := calendar.Adjust(c.Calendar, t.Tenor.AddTo(start))
	return TermDeposit{
		tradeDate: valuationDate,
		startDate: start,
		endDate:   end,
		buySell:   side,
		Currency:  c.Currency,
		Notional:  notional,
		Rate:      rate,
		DayCount:  c.DayCount,
	}, nil
}
