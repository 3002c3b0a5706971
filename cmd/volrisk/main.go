package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/meenmo/mocurve/config"
	"github.com/meenmo/mocurve/internal/cli"
	"github.com/meenmo/mocurve/logging"
	"github.com/meenmo/mocurve/option"
	"github.com/meenmo/mocurve/pricer"
	"github.com/meenmo/mocurve/risk"
	"github.com/meenmo/mocurve/utils"
	"github.com/meenmo/mocurve/volatility"
)

// OptionInput defines the JSON input schema for one European option.
type OptionInput struct {
	TaskID         string  `json:"task_id,omitempty"`
	Expiry         string  `json:"expiry"`
	Strike         float64 `json:"strike"`
	Forward        float64 `json:"forward"`
	IsCall         bool    `json:"is_call"`
	Notional       float64 `json:"notional"`
	DiscountFactor float64 `json:"discount_factor"`
}

// OptionOutput defines the JSON output schema.
type OptionOutput struct {
	TaskID       string             `json:"task_id,omitempty"`
	Volatility   float64            `json:"volatility"`
	PV           float64            `json:"pv"`
	Vega         float64            `json:"vega"`
	BumpedVega   float64            `json:"bumped_vega"`
	BucketedVega map[string]float64 `json:"bucketed_vega"`
	Error        string             `json:"error,omitempty"`
}

func main() {
	gridPath := pflag.StringP("grid", "g", "", "volatility grid file (YAML)")
	inputPath := pflag.StringP("input", "i", "", "JSON input path (optional; if set, ignores stdin)")
	configPath := pflag.StringP("config", "c", "", "runtime configuration file")
	help := pflag.BoolP("help", "h", false, "show help")
	pflag.Parse()

	if *help {
		usage()
		return
	}
	if *gridPath == "" || (*inputPath == "" && cli.StdinIsTerminal()) {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to load config: %v", err))
	}
	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	def, err := volatility.LoadGrid(*gridPath)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to load grid: %v", err))
	}
	grid, err := def.Build()
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to build grid: %v", err))
	}
	log.V(logging.DEBUG).Info("loaded volatility grid", "name", grid.Name(), "parameters", grid.ParameterCount())

	raw, err := cli.ReadInput(*inputPath, os.Stdin)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to read input: %v", err))
	}
	inputs, isArray, err := cli.ParseInputs[OptionInput](raw)
	if err != nil {
		cli.Fail(os.Stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	runner, err := risk.NewRunner[volatility.Volatilities](cfg, log)
	if err != nil {
		cli.Fail(os.Stdout, err.Error())
	}

	hadError := false
	outputs := make([]OptionOutput, 0, len(inputs))
	for i, in := range inputs {
		out, err := value(context.Background(), runner, grid, i, in)
		if err != nil {
			hadError = true
			log.Error(err, "valuation failed", "task", in.TaskID)
			outputs = append(outputs, OptionOutput{TaskID: in.TaskID, Error: err.Error()})
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

func value(ctx context.Context, runner *risk.Runner[volatility.Volatilities], grid volatility.GridVolatilities, idx int, in OptionInput) (OptionOutput, error) {
	expiry, err := utils.ParseDate(in.Expiry)
	if err != nil {
		return OptionOutput{}, fmt.Errorf("invalid expiry: %v", err)
	}
	df := in.DiscountFactor
	if df == 0 {
		df = 1
	}
	opt := pricer.BlackOption{Expiry: expiry, Strike: in.Strike, Forward: in.Forward, IsCall: in.IsCall, Notional: in.Notional}
	pv := func(_ context.Context, v volatility.Volatilities) (float64, error) {
		return opt.PresentValue(v, df)
	}
	val := runner.Valuation(fmt.Sprintf("option/%d/%s", idx, in.TaskID), pv)

	base, err := val.Base(ctx, grid)
	if err != nil {
		return OptionOutput{}, err
	}
	vega, err := opt.Vega(grid, df)
	if err != nil {
		return OptionOutput{}, err
	}
	vol, err := grid.Volatility(grid.RelativeTime(expiry), option.SimpleStrike(in.Strike), in.Forward)
	if err != nil {
		return OptionOutput{}, err
	}
	bumped, err := val.Parallel(ctx, grid)
	if err != nil {
		return OptionOutput{}, err
	}
	buckets, err := val.Bucketed(ctx, grid)
	if err != nil {
		return OptionOutput{}, err
	}
	bucketed := make(map[string]float64)
	for _, b := range buckets {
		if b.Value != 0 {
			bucketed[b.Label] = b.Value
		}
	}
	return OptionOutput{
		TaskID:       in.TaskID,
		Volatility:   vol,
		PV:           base,
		Vega:         vega,
		BumpedVega:   bumped,
		BucketedVega: bucketed,
	}, nil
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  volrisk --grid vols.yaml < input.json")
	fmt.Println("  volrisk --grid vols.yaml --input /path/to/input.json")
	fmt.Println()
	fmt.Println("Price European options on a volatility grid and report analytic and bumped vega.")
	fmt.Println()
	fmt.Println("Example input:")
	fmt.Println(`  {"expiry": "2026-03-03", "strike": 105, "forward": 100, "is_call": true, "notional": 1000000, "discount_factor": 0.97}`)
	fmt.Println()
	pflag.PrintDefaults()
}
