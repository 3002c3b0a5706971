package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/internal/cli"
	"github.com/meenmo/mocurve/logging"
	"github.com/meenmo/mocurve/marketdata"
	"github.com/meenmo/mocurve/utils"
)

// NodeOutput describes one calibration node resolved against market data.
type NodeOutput struct {
	Label        string   `json:"label"`
	PillarDate   string   `json:"pillar_date"`
	Requirements []string `json:"requirements"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	InitialGuess float64  `json:"initial_guess"`
	Error        string   `json:"error,omitempty"`
}

// Output is the command result.
type Output struct {
	Curve        string       `json:"curve"`
	Requirements []string     `json:"requirements"`
	Nodes        []NodeOutput `json:"nodes"`
}

func main() {
	definition := pflag.StringP("definition", "d", "", "curve definition file (YAML)")
	quotes := pflag.StringP("quotes", "q", "", "market quotes file (YAML); without it only metadata is printed")
	date := pflag.String("date", "", "valuation date YYYY-MM-DD")
	logLevel := pflag.String("log-level", "info", "error, info, debug or trace")
	help := pflag.BoolP("help", "h", false, "show help")
	pflag.Parse()

	if *help || *definition == "" || *date == "" {
		usage()
		if *help {
			return
		}
		os.Exit(2)
	}

	log, err := logging.NewLogger(*logLevel)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	valDate, err := utils.ParseDate(*date)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("invalid date: %v", err))
	}
	def, err := curve.LoadDefinition(*definition)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to load definition: %v", err))
	}
	nodes, err := def.BuildNodes()
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to build nodes: %v", err))
	}
	log.V(logging.DEBUG).Info("loaded curve definition", "curve", def.Name, "nodes", len(nodes))

	var md marketdata.Values
	if *quotes != "" {
		values, err := marketdata.LoadValues(*quotes)
		if err != nil {
			cli.Fail(os.Stdout, fmt.Sprintf("failed to load quotes: %v", err))
		}
		log.V(logging.DEBUG).Info("loaded quotes", "count", values.Len())
		md = values
	}

	vt, err := curve.ParseValueType(def.ValueType)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	out := Output{Curve: def.Name, Requirements: ids(nodes.Requirements())}
	hadError := false
	for _, n := range nodes {
		no := describe(n, valDate, md, vt)
		if no.Error != "" {
			hadError = true
			log.Error(nil, "node failed", "label", n.Label(), "error", no.Error)
		}
		out.Nodes = append(out.Nodes, no)
	}

	if err := cli.WriteOutputs(os.Stdout, []Output{out}, false); err != nil {
		cli.Fail(os.Stdout, err.Error())
	}
	if hadError {
		os.Exit(1)
	}
}

func describe(n curve.Node, valDate time.Time, md marketdata.Values, vt curve.ValueType) NodeOutput {
	out := NodeOutput{Label: n.Label(), Requirements: ids(n.Requirements())}
	meta, err := n.Metadata(valDate)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.PillarDate = meta.Date().Format(utils.DateLayout)
	if md == nil {
		return out
	}
	trade, err := n.Trade(valDate, md)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.StartDate = trade.StartDate().Format(utils.DateLayout)
	out.EndDate = trade.EndDate().Format(utils.DateLayout)
	out.InitialGuess = n.InitialGuess(valDate, md, vt)
	return out
}

func ids(in []marketdata.ObservableID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = id.String()
	}
	return out
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  curvenodes --definition eur.yaml --date 2025-03-03 [--quotes quotes.yaml]")
	fmt.Println()
	fmt.Println("Resolve the calibration nodes of a curve definition and print them as JSON.")
	fmt.Println()
	pflag.PrintDefaults()
}
