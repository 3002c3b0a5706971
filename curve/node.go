package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/deposit"
	"github.com/meenmo/mocurve/marketdata"
	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/swap"
)

// Node describes how one market instrument and its quote become a calibration target.
//
// Implementations are immutable and safe for concurrent use.
type Node interface {
	// Label identifies the node within its curve.
	Label() string
	// Requirements returns every identifier Trade reads, sorted.
	Requirements() []marketdata.ObservableID
	// Metadata builds the instrument with a neutral quote and reads its end date.
	Metadata(valuationDate time.Time) (TenorNodeMetadata, error)
	// Trade builds the instrument at the observed quote plus the node spread.
	Trade(valuationDate time.Time, md marketdata.Values) (product.Trade, error)
	// InitialGuess is 1 for discount factors and 0 otherwise.
	InitialGuess(valuationDate time.Time, md marketdata.Values, vt ValueType) float64
}

// FixedFloatSwapCurveNodeParams configures a FixedFloatSwapCurveNode.
type FixedFloatSwapCurveNodeParams struct {
	Template swap.FixedFloatSwapTemplate

	// RateID identifies the par rate quote.
	RateID marketdata.ObservableID

	// Spread is added to the observed rate. Zero by default.
	Spread float64

	// Label defaults to the template label.
	Label string
}

// FixedFloatSwapCurveNode calibrates to a fixed vs IBOR or overnight swap.
type FixedFloatSwapCurveNode struct {
	template swap.FixedFloatSwapTemplate
	rateID   marketdata.ObservableID
	spread   float64
	label    string
}

var _ Node = FixedFloatSwapCurveNode{}

// NewFixedFloatSwapCurveNode validates p and builds the node.
func NewFixedFloatSwapCurveNode(p FixedFloatSwapCurveNodeParams) (FixedFloatSwapCurveNode, error) {
	if err := p.Template.Validate(); err != nil {
		return FixedFloatSwapCurveNode{}, fmt.Errorf("NewFixedFloatSwapCurveNode: %w", err)
	}
	if p.RateID == "" {
		return FixedFloatSwapCurveNode{}, check.Errorf("NewFixedFloatSwapCurveNode: rate id is required")
	}
	if err := check.Finite(p.Spread, "NewFixedFloatSwapCurveNode: spread"); err != nil {
		return FixedFloatSwapCurveNode{}, err
	}
	label := p.Label
	if label == "" {
		label = p.Template.Label()
	}
	return FixedFloatSwapCurveNode{template: p.Template, rateID: p.RateID, spread: p.Spread, label: label}, nil
}

func (n FixedFloatSwapCurveNode) Template() swap.FixedFloatSwapTemplate { return n.template }
func (n FixedFloatSwapCurveNode) RateID() marketdata.ObservableID       { return n.rateID }
func (n FixedFloatSwapCurveNode) Spread() float64                       { return n.spread }
func (n FixedFloatSwapCurveNode) Label() string                         { return n.label }

func (n FixedFloatSwapCurveNode) Requirements() []marketdata.ObservableID {
	return []marketdata.ObservableID{n.rateID}
}

func (n FixedFloatSwapCurveNode) Metadata(valuationDate time.Time) (TenorNodeMetadata, error) {
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, 0)
	if err != nil {
		return TenorNodeMetadata{}, fmt.Errorf("FixedFloatSwapCurveNode.Metadata: %s: %w", n.label, err)
	}
	return NewTenorNodeMetadata(trade.EndDate(), n.template.Tenor, n.label), nil
}

func (n FixedFloatSwapCurveNode) Trade(valuationDate time.Time, md marketdata.Values) (product.Trade, error) {
	rate, err := md.Value(n.rateID)
	if err != nil {
		return nil, fmt.Errorf("FixedFloatSwapCurveNode.Trade: %s: %w", n.label, err)
	}
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, rate+n.spread)
	if err != nil {
		return nil, fmt.Errorf("FixedFloatSwapCurveNode.Trade: %s: %w", n.label, err)
	}
	return trade, nil
}

func (n FixedFloatSwapCurveNode) InitialGuess(_ time.Time, _ marketdata.Values, vt ValueType) float64 {
	return initialGuess(vt)
}

// XCcyIborIborSwapCurveNodeParams configures an XCcyIborIborSwapCurveNode.
type XCcyIborIborSwapCurveNodeParams struct {
	Template swap.XCcyIborIborSwapTemplate

	// SpreadID identifies the basis spread quote.
	SpreadID marketdata.ObservableID

	// FXID identifies the spot FX rate used to size the second leg.
	FXID marketdata.ObservableID

	// Spread is added to the observed basis spread. Zero by default.
	Spread float64
	Label  string
}

// XCcyIborIborSwapCurveNode calibrates to a cross-currency basis swap.
type XCcyIborIborSwapCurveNode struct {
	template swap.XCcyIborIborSwapTemplate
	spreadID marketdata.ObservableID
	fxID     marketdata.ObservableID
	spread   float64
	label    string
}

var _ Node = XCcyIborIborSwapCurveNode{}

// NewXCcyIborIborSwapCurveNode validates p and builds the node.
func NewXCcyIborIborSwapCurveNode(p XCcyIborIborSwapCurveNodeParams) (XCcyIborIborSwapCurveNode, error) {
	if err := p.Template.Validate(); err != nil {
		return XCcyIborIborSwapCurveNode{}, fmt.Errorf("NewXCcyIborIborSwapCurveNode: %w", err)
	}
	if p.SpreadID == "" || p.FXID == "" {
		return XCcyIborIborSwapCurveNode{}, check.Errorf("NewXCcyIborIborSwapCurveNode: spread id and fx id are required")
	}
	if err := check.Finite(p.Spread, "NewXCcyIborIborSwapCurveNode: spread"); err != nil {
		return XCcyIborIborSwapCurveNode{}, err
	}
	label := p.Label
	if label == "" {
		label = p.Template.Label()
	}
	return XCcyIborIborSwapCurveNode{template: p.Template, spreadID: p.SpreadID, fxID: p.FXID, spread: p.Spread, label: label}, nil
}

func (n XCcyIborIborSwapCurveNode) Template() swap.XCcyIborIborSwapTemplate { return n.template }
func (n XCcyIborIborSwapCurveNode) SpreadID() marketdata.ObservableID       { return n.spreadID }
func (n XCcyIborIborSwapCurveNode) FXID() marketdata.ObservableID           { return n.fxID }
func (n XCcyIborIborSwapCurveNode) Spread() float64                         { return n.spread }
func (n XCcyIborIborSwapCurveNode) Label() string                           { return n.label }

func (n XCcyIborIborSwapCurveNode) Requirements() []marketdata.ObservableID {
	return marketdata.SortIDs([]marketdata.ObservableID{n.spreadID, n.fxID})
}

func (n XCcyIborIborSwapCurveNode) Metadata(valuationDate time.Time) (TenorNodeMetadata, error) {
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, 1, 0)
	if err != nil {
		return TenorNodeMetadata{}, fmt.Errorf("XCcyIborIborSwapCurveNode.Metadata: %s: %w", n.label, err)
	}
	return NewTenorNodeMetadata(trade.EndDate(), n.template.Tenor, n.label), nil
}

func (n XCcyIborIborSwapCurveNode) Trade(valuationDate time.Time, md marketdata.Values) (product.Trade, error) {
	quote, err := md.Value(n.spreadID)
	if err != nil {
		return nil, fmt.Errorf("XCcyIborIborSwapCurveNode.Trade: %s: %w", n.label, err)
	}
	fx, err := md.Value(n.fxID)
	if err != nil {
		return nil, fmt.Errorf("XCcyIborIborSwapCurveNode.Trade: %s: %w", n.label, err)
	}
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, fx, quote+n.spread)
	if err != nil {
		return nil, fmt.Errorf("XCcyIborIborSwapCurveNode.Trade: %s: %w", n.label, err)
	}
	return trade, nil
}

func (n XCcyIborIborSwapCurveNode) InitialGuess(_ time.Time, _ marketdata.Values, vt ValueType) float64 {
	return initialGuess(vt)
}

// TermDepositCurveNodeParams configures a TermDepositCurveNode.
type TermDepositCurveNodeParams struct {
	Template deposit.TermDepositTemplate
	RateID   marketdata.ObservableID
	Spread   float64
	Label    string
}

// TermDepositCurveNode calibrates to a term deposit.
type TermDepositCurveNode struct {
	template deposit.TermDepositTemplate
	rateID   marketdata.ObservableID
	spread   float64
	label    string
}

var _ Node = TermDepositCurveNode{}

// NewTermDepositCurveNode validates p and builds the node.
func NewTermDepositCurveNode(p TermDepositCurveNodeParams) (TermDepositCurveNode, error) {
	if err := p.Template.Validate(); err != nil {
		return TermDepositCurveNode{}, fmt.Errorf("NewTermDepositCurveNode: %w", err)
	}
	if p.RateID == "" {
		return TermDepositCurveNode{}, check.Errorf("NewTermDepositCurveNode: rate id is required")
	}
	if err := check.Finite(p.Spread, "NewTermDepositCurveNode: spread"); err != nil {
		return TermDepositCurveNode{}, err
	}
	label := p.Label
	if label == "" {
		label = p.Template.Label()
	}
	return TermDepositCurveNode{template: p.Template, rateID: p.RateID, spread: p.Spread, label: label}, nil
}

func (n TermDepositCurveNode) Template() deposit.TermDepositTemplate { return n.template }
func (n TermDepositCurveNode) RateID() marketdata.ObservableID       { return n.rateID }
func (n TermDepositCurveNode) Spread() float64                       { return n.spread }
func (n TermDepositCurveNode) Label() string                         { return n.label }

func (n TermDepositCurveNode) Requirements() []marketdata.ObservableID {
	return []marketdata.ObservableID{n.rateID}
}

func (n TermDepositCurveNode) Metadata(valuationDate time.Time) (TenorNodeMetadata, error) {
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, 0)
	if err != nil {
		return TenorNodeMetadata{}, fmt.Errorf("TermDepositCurveNode.Metadata: %s: %w", n.label, err)
	}
	return NewTenorNodeMetadata(trade.EndDate(), n.template.Tenor, n.label), nil
}

func (n TermDepositCurveNode) Trade(valuationDate time.Time, md marketdata.Values) (product.Trade, error) {
	rate, err := md.Value(n.rateID)
	if err != nil {
		return nil, fmt.Errorf("TermDepositCurveNode.Trade: %s: %w", n.label, err)
	}
	trade, err := n.template.ToTrade(valuationDate, product.Buy, 1, rate+n.spread)
	if err != nil {
		return nil, fmt.Errorf("TermDepositCurveNode.Trade: %s: %w", n.label, err)
	}
	return trade, nil
}

func (n TermDepositCurveNode) InitialGuess(_ time.Time, _ marketdata.Values, vt ValueType) float64 {
	return initialGuess(vt)
}
