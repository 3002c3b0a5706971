package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/meenmo/mocurve/config"
	"github.com/meenmo/mocurve/curve"
	"github.com/meenmo/mocurve/internal/cli"
	"github.com/meenmo/mocurve/logging"
	"github.com/meenmo/mocurve/product"
	"github.com/meenmo/mocurve/risk"
	"github.com/meenmo/mocurve/swap"
	"github.com/meenmo/mocurve/swap/market"
	"github.com/meenmo/mocurve/utils"
)

const oneBasisPoint = 1e-4

// SwapInput is one fixed/float swap to value on the curve.
type SwapInput struct {
	Convention   string  `json:"convention"`
	ForwardStart string  `json:"forward_start,omitempty"`
	Tenor        string  `json:"tenor"`
	Notional     float64 `json:"notional"`
	FixedRate    float64 `json:"fixed_rate"`
	Side         string  `json:"side,omitempty"`
}

// PricingInput defines the JSON input schema.
type PricingInput struct {
	TaskID        string             `json:"task_id,omitempty"`
	ValuationDate string             `json:"valuation_date"`
	ZeroRates     map[string]float64 `json:"zero_rates"`
	Swaps         []SwapInput        `json:"swaps"`
}

// SwapOutput holds the valuation of one swap.
type SwapOutput struct {
	EffectiveDate string             `json:"effective_date"`
	MaturityDate  string             `json:"maturity_date"`
	ParRatePct    float64            `json:"par_rate_pct"`
	NPV           float64            `json:"npv"`
	PV01          float64            `json:"pv01"`
	BucketPV01    map[string]float64 `json:"bucket_pv01"`
}

// PricingOutput defines the JSON output schema.
type PricingOutput struct {
	TaskID string             `json:"task_id,omitempty"`
	Curve  map[string]float64 `json:"discount_factors,omitempty"`
	Swaps  []SwapOutput       `json:"swaps,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func main() {
	definition := pflag.StringP("definition", "d", "", "curve definition file (YAML)")
	inputPath := pflag.StringP("input", "i", "", "JSON input path (optional; if set, ignores stdin)")
	configPath := pflag.StringP("config", "c", "", "runtime configuration file")
	help := pflag.BoolP("help", "h", false, "show help")
	pflag.Parse()

	if *help {
		usage()
		return
	}
	if *definition == "" || (*inputPath == "" && cli.StdinIsTerminal()) {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to load config: %v", err))
	}
	config.SetConfig(cfg)
	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	def, err := curve.LoadDefinition(*definition)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to load definition: %v", err))
	}
	nodes, err := def.BuildNodes()
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to build nodes: %v", err))
	}

	raw, err := cli.ReadInput(*inputPath, os.Stdin)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to read input: %v", err))
	}
	inputs, isArray, err := cli.ParseInputs[PricingInput](raw)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	runner, err := risk.NewRunner[curve.ZeroRateDiscountCurve](cfg, log)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	hadError := false
	outputs := make([]PricingOutput, 0, len(inputs))
	for i, in := range inputs {
		out, err := price(context.Background(), log, runner, def, nodes, i, in)
		if err != nil {
			hadError = true
			log.Error(err, "pricing failed", "task", in.TaskID)
			outputs = append(outputs, PricingOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, out)
	}

	if err := cli.WriteOutputs(os.Stdout, outputs, isArray); err != nil {
		cli.Fail(os.Stdout, err.Error())
	}
	if hadError {
		os.Exit(1)
	}
}

func buildCurve(def curve.Definition, nodes curve.Nodes, valDate time.Time, zeros map[string]float64) (curve.ZeroRateDiscountCurve, error) {
	values := make([]float64, len(nodes))
	for i, n := range nodes {
		z, ok := zeros[n.Label()]
		if !ok {
			return curve.ZeroRateDiscountCurve{}, fmt.Errorf("zero_rates: missing node %s", n.Label())
		}
		values[i] = z
	}
	c, err := def.BuildCurve(valDate, nodes, values)
	if err != nil {
		return curve.ZeroRateDiscountCurve{}, err
	}
	return curve.NewZeroRateDiscountCurve(valDate, def.DayCount, c)
}

func buildSwap(valDate time.Time, in SwapInput) (swap.SwapTrade, error) {
	conv, err := swap.FixedFloatConvention(in.Convention)
	if err != nil {
		return swap.SwapTrade{}, err
	}
	tenor, err := market.ParseTenor(in.Tenor)
	if err != nil {
		return swap.SwapTrade{}, err
	}
	var start market.Tenor
	if in.ForwardStart != "" {
		if start, err = market.ParseTenor(in.ForwardStart); err != nil {
			return swap.SwapTrade{}, err
		}
	}
	side := product.Buy
	if in.Side != "" {
		if side, err = product.ParseBuySell(in.Side); err != nil {
			return swap.SwapTrade{}, err
		}
	}
	tmpl := swap.FixedFloatSwapTemplate{PeriodToStart: start, Tenor: tenor, Convention: conv}
	return tmpl.ToTrade(valDate, side, in.Notional, in.FixedRate)
}

func price(ctx context.Context, log logr.Logger, runner *risk.Runner[curve.ZeroRateDiscountCurve], def curve.Definition, nodes curve.Nodes, idx int, in PricingInput) (PricingOutput, error) {
	valDate, err := utils.ParseDate(in.ValuationDate)
	if err != nil {
		return PricingOutput{}, fmt.Errorf("invalid valuation_date: %v", err)
	}
	disc, err := buildCurve(def, nodes, valDate, in.ZeroRates)
	if err != nil {
		return PricingOutput{}, err
	}
	pillars, err := nodes.Metadata(valDate)
	if err != nil {
		return PricingOutput{}, err
	}

	out := PricingOutput{TaskID: in.TaskID, Curve: make(map[string]float64, len(pillars))}
	for _, p := range pillars {
		df, err := disc.DF(p.Date())
		if err != nil {
			return PricingOutput{}, err
		}
		out.Curve[p.Label()] = df
	}

	for i, s := range in.Swaps {
		trade, err := buildSwap(valDate, s)
		if err != nil {
			return PricingOutput{}, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		pv := func(_ context.Context, d curve.ZeroRateDiscountCurve) (float64, error) {
			return swap.PresentValue(trade, valDate, d, d)
		}
		val := runner.Valuation(fmt.Sprintf("%d/%s/swap-%d", idx, in.TaskID, i), pv)

		npv, err := val.Base(ctx, disc)
		if err != nil {
			return PricingOutput{}, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		par, err := swap.ParRate(trade, valDate, disc, disc)
		if err != nil {
			return PricingOutput{}, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		parallel, err := val.Parallel(ctx, disc)
		if err != nil {
			return PricingOutput{}, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		buckets, err := val.Bucketed(ctx, disc)
		if err != nil {
			return PricingOutput{}, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		bucketPV01 := make(map[string]float64, len(buckets))
		for _, b := range buckets {
			bucketPV01[b.Label] = b.Value * oneBasisPoint
		}
		log.V(logging.DEBUG).Info("priced swap", "task", in.TaskID, "index", i, "npv", npv, "par", par)

		out.Swaps = append(out.Swaps, SwapOutput{
			EffectiveDate: trade.StartDate().Format(utils.DateLayout),
			MaturityDate:  trade.EndDate().Format(utils.DateLayout),
			ParRatePct:    par * 100,
			NPV:           npv,
			PV01:          parallel * oneBasisPoint,
			BucketPV01:    bucketPV01,
		})
	}
	return out, nil
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  curvetool --definition eur.yaml < input.json")
	fmt.Println("  curvetool --definition eur.yaml --input /path/to/input.json")
	fmt.Println()
	fmt.Println("Build a zero curve from node values, then value fixed/float swaps with PV01.")
	fmt.Println()
	fmt.Println("Example input:")
	fmt.Println(`  {`)
	fmt.Println(`    "valuation_date": "2025-03-03",`)
	fmt.Println(`    "zero_rates": {"3M": 0.021, "5Y": 0.025, "1Yx5Y": 0.026, "2Y": 0.023},`)
	fmt.Println(`    "swaps": [{"convention": "EUR-FIXED-1Y-EURIBOR-6M", "tenor": "5Y", "notional": 1000000, "fixed_rate": 0.025}]`)
	fmt.Println(`  }`)
	fmt.Println()
	pflag.PrintDefaults()
}
