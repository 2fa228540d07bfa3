// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"context"
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// nelderMead minimises the cost with the simplex method of gonum/optimize
//  The simplex lives in the space of variables normalised by their reference values; trial
//  points are clipped to the bounds before being evaluated.
func (o *Identifier) nelderMead(ctx context.Context, obj *objective, alg *NelderMead, x0 []float64, bounds [][2]float64) (msg string, success bool, err error) {

	// normalisation
	nrm, err := NewNormalizer(ByReference, x0, bounds)
	if err != nil {
		return
	}
	n := len(x0)
	x := make([]float64, n)
	cost := func(xn []float64) float64 {
		nrm.Denormalize(x, xn)
		clip(x, bounds)
		return obj.cost(ctx, x)
	}

	// initial point
	xn := make([]float64, n)
	nrm.Normalize(xn, x0)
	f0 := cost(xn)
	if err = obj.error(); err != nil {
		return
	}
	if math.IsInf(f0, 1) {
		return "initial point is invalid", false, nil
	}

	// restarts from the best vertex
	nfev := 1
	for run := 0; run <= alg.Restarts; run++ {
		method := &optimize.NelderMead{SimplexSize: 0.05}
		if !alg.Adaptive {
			method.Reflection, method.Expansion, method.Contraction, method.Shrink = 1, 2, 0.5, 0.5
		}
		settings := &optimize.Settings{
			InitValues:      &optimize.Location{F: f0},
			MajorIterations: alg.MaxIter,
			FuncEvaluations: alg.MaxFev - nfev,
			Converger:       &simplexConverger{xatol: alg.Xatol, fatol: alg.Fatol},
			Recorder:        &sessionRecorder{s: o.Session},
		}
		if settings.FuncEvaluations <= 0 {
			return "maximum number of evaluations reached", false, nil
		}
		problem := optimize.Problem{
			Func: cost,
			Status: func() (optimize.Status, error) {
				if e := obj.error(); e != nil {
					return optimize.Failure, e
				}
				if e := ctx.Err(); e != nil {
					return optimize.Failure, e
				}
				return optimize.NotTerminated, nil
			},
		}
		var res *optimize.Result
		res, err = optimize.Minimize(problem, xn, settings, method)
		if err != nil {
			if e := obj.error(); e != nil {
				err = e
			}
			return
		}
		nfev += res.Stats.FuncEvaluations
		improved := res.Location.F < f0
		if improved {
			copy(xn, res.Location.X)
			f0 = res.Location.F
		}
		msg, success = res.Status.String(), res.Status == optimize.FunctionConvergence
		if !success || (run > 0 && !improved) {
			break
		}
	}
	if alg.Restarts > 0 {
		msg = io.Sf("%s after restarts", msg)
	}
	return
}

// clip clips x to the bounds, where defined
func clip(x []float64, bounds [][2]float64) {
	for i := range x {
		if lo := bounds[i][0]; finite(lo) && x[i] < lo {
			x[i] = lo
		}
		if hi := bounds[i][1]; finite(hi) && x[i] > hi {
			x[i] = hi
		}
	}
}

// simplexConverger stops when the best vertex has stalled both in value and location during
// as many major iterations as there are vertices
type simplexConverger struct {
	xatol, fatol float64
	dim          int
	last         []float64
	flast        float64
	stall        int
}

func (o *simplexConverger) Init(dim int) {
	o.dim = dim
	o.last = nil
	o.flast = math.Inf(1)
	o.stall = 0
}

func (o *simplexConverger) Converged(loc *optimize.Location) optimize.Status {
	if o.last != nil && math.Abs(o.flast-loc.F) <= o.fatol && floats.Distance(o.last, loc.X, math.Inf(1)) <= o.xatol {
		o.stall++
	} else {
		o.stall = 0
	}
	o.last = append(o.last[:0], loc.X...)
	o.flast = loc.F
	if o.stall >= o.dim+1 {
		return optimize.FunctionConvergence
	}
	return optimize.NotTerminated
}

// sessionRecorder counts the major iterations of gonum/optimize in the session
type sessionRecorder struct {
	s *Session
}

func (o *sessionRecorder) Init() error { return nil }

func (o *sessionRecorder) Record(_ *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op == optimize.MajorIteration {
		o.s.Iterate()
	}
	return nil
}
