// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package idf implements the identification of material properties: normalisation of free
// variables, constraints, best-solution tracking and the optimizers driving the cost
package idf

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/vfm"
)

// ErrUndefinedBounds is returned when an algorithm needs bounds that are not defined
var ErrUndefinedBounds = errors.New("lower and upper bounds must be defined")

// Result holds the outcome of an identification
type Result struct {
	Props   []float64     // best properties (constraints applied)
	X       []float64     // best free variables
	Cost    float64       // best cost
	Costs   []float64     // best cost of each test
	Nit     int           // number of iterations
	Nfev    int           // number of evaluations
	Elapsed time.Duration // elapsed time
	Message string        // termination message
	Success bool          // the optimizer terminated by a convergence criterion
}

// Identifier identifies the free properties of a problem
type Identifier struct {
	Problem     *vfm.Problem // tests and settings
	Props       []float64    // [nprops] initial properties
	Free        []bool       // [nprops] free properties
	Bounds      [][2]float64 // [nprops] lower and upper bounds; NaN if undefined
	Constraints *Constraints // constraints; may be nil
	Algorithm   Algorithm    // optimizer
	Session     *Session     // best solution and counters; allocated by Identify if nil
	Log         *slog.Logger // logger; may be nil
}

// Nvars returns the number of free variables
func (o *Identifier) Nvars() (n int) {
	for _, free := range o.Free {
		if free {
			n++
		}
	}
	return
}

// Identify runs the identification
//  Note: invalid trial points (failed reconstructions) never abort the run; only configuration
//        errors and context cancellation are returned as errors
func (o *Identifier) Identify(ctx context.Context) (res *Result, err error) {

	// check
	if err = o.check(); err != nil {
		return
	}
	if o.Session == nil {
		o.Session = NewSession()
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	o.Algorithm.defaults()

	// initial free variables
	var x0 []float64
	var bounds [][2]float64
	for i, free := range o.Free {
		if free {
			x0 = append(x0, o.Props[i])
			bounds = append(bounds, o.bounds(i))
		}
	}

	// run
	obj := &objective{id: o}
	var msg string
	var success bool
	switch alg := o.Algorithm.(type) {
	case *LevenbergMarquardt:
		msg, success, err = o.levenbergMarquardt(ctx, obj, alg, x0, bounds)
	case *DifferentialEvolution:
		msg, success, err = o.differentialEvolution(ctx, obj, alg, bounds)
	case *NelderMead:
		msg, success, err = o.nelderMead(ctx, obj, alg, x0, bounds)
	default:
		return nil, chk.Err("algorithm %T is not available", alg)
	}
	if err == nil {
		err = obj.error()
	}
	if err != nil {
		return
	}

	// results
	snap := o.Session.Snapshot()
	res = &Result{Nit: snap.Nit, Nfev: snap.Nfev, Elapsed: o.Session.Elapsed(), Message: msg, Success: success}
	var ok bool
	res.X, res.Props, res.Cost, res.Costs, ok = o.Session.Best()
	if !ok {
		res.Props = append([]float64{}, o.Props...)
		res.Message = msg + "; no valid point was found"
		res.Success = false
	}
	o.Log.Info("identification finished", "message", res.Message, "nit", res.Nit, "nfev", res.Nfev, "cost", res.Cost, "elapsed", res.Elapsed)
	return
}

// Simulate evaluates the initial properties (constraints applied), keeping stresses and
// sensitivities for reporting
func (o *Identifier) Simulate(ctx context.Context) (props []float64, ev *vfm.Evaluation, err error) {
	props = append([]float64{}, o.Props...)
	if err = o.Constraints.Apply(props); err != nil {
		return
	}
	ev, err = o.Problem.PostProcess(ctx, props)
	return
}

// check checks the settings
func (o *Identifier) check() (err error) {
	if o.Problem == nil || o.Algorithm == nil {
		return chk.Err("identification needs a problem and an algorithm")
	}
	if len(o.Free) != len(o.Props) {
		return chk.Err("number of free flags (%d) must be equal to the number of properties (%d)", len(o.Free), len(o.Props))
	}
	if o.Nvars() == 0 {
		return chk.Err("at least one property must be free")
	}
	for _, idx := range o.Constraints.Indices() {
		if o.Free[idx] {
			return chk.Err("property %d cannot be both free and constrained", idx)
		}
	}
	for i := range o.Props {
		lo, hi := o.bounds(i)[0], o.bounds(i)[1]
		if finite(lo) && finite(hi) && !(hi > lo) {
			return chk.Err("property %d: lower bound %v must be smaller than upper bound %v", i, lo, hi)
		}
	}
	props := append([]float64{}, o.Props...)
	return o.Constraints.Apply(props)
}

// bounds returns the bounds of property i
func (o *Identifier) bounds(i int) [2]float64 {
	if i < len(o.Bounds) {
		return o.Bounds[i]
	}
	return [2]float64{math.NaN(), math.NaN()}
}

// objective evaluates free variables and records the results in the session
type objective struct {
	id  *Identifier
	mu  sync.Mutex
	err error // first error; stops further evaluations
}

// eval evaluates physical free variables x
func (o *objective) eval(ctx context.Context, x []float64) (ev *vfm.Evaluation) {
	if o.error() != nil {
		return nil
	}
	id := o.id
	props := append([]float64{}, id.Props...)
	k := 0
	for i, free := range id.Free {
		if free {
			props[i] = x[k]
			k++
		}
	}
	err := id.Constraints.Apply(props)
	if err == nil {
		ev, err = id.Problem.Evaluate(ctx, props)
	}
	if err != nil {
		o.fail(err)
		return nil
	}
	id.Session.Record(x, props, ev.Cost, ev.Costs())
	id.Log.Debug("evaluation", "x", x, "cost", ev.Cost, "success", ev.Success)
	return
}

// cost returns the cost of x; +Inf if invalid
func (o *objective) cost(ctx context.Context, x []float64) float64 {
	ev := o.eval(ctx, x)
	if ev == nil || !finite(ev.Cost) {
		return math.Inf(1)
	}
	return ev.Cost
}

func (o *objective) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		o.err = err
	}
}

func (o *objective) error() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
