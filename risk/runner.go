// Package risk computes bump-and-reval sensitivities of any parameterized market object.
package risk

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/config"
	"github.com/meenmo/mocurve/logging"
	"github.com/meenmo/mocurve/param"
)

// Parameterized is an immutable object whose parameters can be replaced one at a time or
// shifted together. Curves, discount curves and volatility surfaces all satisfy it.
type Parameterized[T any] interface {
	ParameterCount() int
	ParameterValue(i int) (float64, error)
	ParameterMetadata(i int) (param.ParameterMetadata, error)
	WithParameter(i int, v float64) (T, error)
	WithPerturbation(p param.ParameterPerturbation) (T, error)
	Fingerprint() uint64
}

// ValueFunc revalues a scenario.
type ValueFunc[T any] func(ctx context.Context, scenario T) (float64, error)

// Sensitivity is the central-difference derivative of a value to one parameter.
type Sensitivity struct {
	Index int
	Label string
	Value float64
}

// Runner revalues bumped copies of a base object. Scenario values are memoized per
// valuation and fingerprint, so repeated requests for the same scenario are not recomputed.
type Runner[T Parameterized[T]] struct {
	bump    float64
	workers int
	memo    *cache.Cache
	seq     atomic.Uint64
	log     logr.Logger
}

// NewRunner builds a runner from c.
func NewRunner[T Parameterized[T]](c config.Config, log logr.Logger) (*Runner[T], error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("NewRunner: %w", err)
	}
	return &Runner[T]{
		bump:    c.BumpSize,
		workers: c.Workers,
		memo:    cache.New(c.CacheTTL, 2*c.CacheTTL),
		log:     log.WithName("risk"),
	}, nil
}

// Valuation binds fn to r under name. Every call returns a valuation with its own memo
// scope, so two valuations never share cached values even when their names match.
func (r *Runner[T]) Valuation(name string, fn ValueFunc[T]) *Valuation[T] {
	return &Valuation[T]{
		runner: r,
		name:   name,
		scope:  fmt.Sprintf("%d/%s", r.seq.Add(1), name),
		fn:     fn,
	}
}

// Valuation computes sensitivities of one value function.
type Valuation[T Parameterized[T]] struct {
	runner *Runner[T]
	name   string
	scope  string
	fn     ValueFunc[T]
}

// value evaluates the valuation on scenario, consulting the memo first.
func (v *Valuation[T]) value(ctx context.Context, scenario T) (float64, error) {
	key := fmt.Sprintf("%s/%016x", v.scope, scenario.Fingerprint())
	if x, ok := v.runner.memo.Get(key); ok {
		v.runner.log.V(logging.TRACE).Info("scenario cache hit", "key", key)
		return x.(float64), nil
	}
	x, err := v.fn(ctx, scenario)
	if err != nil {
		return 0, err
	}
	v.runner.memo.SetDefault(key, x)
	return x, nil
}

// Base returns the unbumped value.
func (v *Valuation[T]) Base(ctx context.Context, base T) (float64, error) {
	x, err := v.value(ctx, base)
	if err != nil {
		return 0, fmt.Errorf("Valuation.Base: %s: %w", v.name, err)
	}
	return x, nil
}

// Bucketed bumps each parameter up and down by the configured size and returns
// (V(p+h) - V(p-h)) / 2h per parameter. Parameters are revalued concurrently.
func (v *Valuation[T]) Bucketed(ctx context.Context, base T) ([]Sensitivity, error) {
	r := v.runner
	n := base.ParameterCount()
	if n == 0 {
		return nil, check.Errorf("Valuation.Bucketed: %s: no parameters", v.name)
	}
	r.log.V(logging.DEBUG).Info("bucketed sensitivities", "name", v.name, "parameters", n, "bump", r.bump, "workers", r.workers)

	out := make([]Sensitivity, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			s, err := v.bucket(ctx, base, i)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Valuation.Bucketed: %s: %w", v.name, err)
	}
	return out, nil
}

func (v *Valuation[T]) bucket(ctx context.Context, base T, i int) (Sensitivity, error) {
	if err := ctx.Err(); err != nil {
		return Sensitivity{}, err
	}
	h := v.runner.bump
	p, err := base.ParameterValue(i)
	if err != nil {
		return Sensitivity{}, err
	}
	meta, err := base.ParameterMetadata(i)
	if err != nil {
		return Sensitivity{}, err
	}
	up, err := base.WithParameter(i, p+h)
	if err != nil {
		return Sensitivity{}, fmt.Errorf("parameter %d: %w", i, err)
	}
	down, err := base.WithParameter(i, p-h)
	if err != nil {
		return Sensitivity{}, fmt.Errorf("parameter %d: %w", i, err)
	}
	vUp, err := v.value(ctx, up)
	if err != nil {
		return Sensitivity{}, fmt.Errorf("parameter %d up: %w", i, err)
	}
	vDown, err := v.value(ctx, down)
	if err != nil {
		return Sensitivity{}, fmt.Errorf("parameter %d down: %w", i, err)
	}
	s := Sensitivity{Index: i, Label: meta.Label(), Value: (vUp - vDown) / (2 * h)}
	v.runner.log.V(logging.TRACE).Info("bucket", "name", v.name, "label", s.Label, "sensitivity", s.Value)
	return s, nil
}

// Parallel shifts every parameter together and returns the central difference.
func (v *Valuation[T]) Parallel(ctx context.Context, base T) (float64, error) {
	h := v.runner.bump
	up, err := base.WithPerturbation(param.ParallelShift(h))
	if err != nil {
		return 0, fmt.Errorf("Valuation.Parallel: %s: %w", v.name, err)
	}
	down, err := base.WithPerturbation(param.ParallelShift(-h))
	if err != nil {
		return 0, fmt.Errorf("Valuation.Parallel: %s: %w", v.name, err)
	}

	var vUp, vDown float64
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vUp, err = v.value(ctx, up)
		return err
	})
	g.Go(func() (err error) {
		vDown, err = v.value(ctx, down)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("Valuation.Parallel: %s: %w", v.name, err)
	}
	sens := (vUp - vDown) / (2 * h)
	v.runner.log.V(logging.DEBUG).Info("parallel sensitivity", "name", v.name, "sensitivity", sens)
	return sens, nil
}

// Scenario revalues base under an arbitrary perturbation and returns the value change.
func (v *Valuation[T]) Scenario(ctx context.Context, base T, p param.ParameterPerturbation) (float64, error) {
	v0, err := v.value(ctx, base)
	if err != nil {
		return 0, fmt.Errorf("Valuation.Scenario: %s: %w", v.name, err)
	}
	shifted, err := base.WithPerturbation(p)
	if err != nil {
		return 0, fmt.Errorf("Valuation.Scenario: %s: %w", v.name, err)
	}
	v1, err := v.value(ctx, shifted)
	if err != nil {
		return 0, fmt.Errorf("Valuation.Scenario: %s: %w", v.name, err)
	}
	return v1 - v0, nil
}
