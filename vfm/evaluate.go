// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/vfs"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Problem holds the tests and settings of the virtual work evaluation
type Problem struct {
	Tests     []*Test        // tests
	Free      []bool         // [nprops] free properties; used by sensitivity-based fields
	Names     []string       // [nprops] names of properties; may be nil
	Large     bool           // large deformation framework
	Normalize bool           // divide the cost of each test by nf·nvfs
	Factory   msolid.Factory // constitutive model; nil means msolid.New
	Nworkers  int            // number of goroutines of element loops; ≤ 0 means GOMAXPROCS
}

// Result holds the virtual work evaluation of one test
type Result struct {
	Test    string         // name of test
	Success bool           // stress reconstruction succeeded
	Err     error          // cause of failure
	Ivw     [][]float64    // [nvfs][nf] internal virtual work
	Evw     [][]float64    // [nvfs][nf] external virtual work
	Alpha   []float64      // [nvfs] scaling factors
	Res     []float64      // [nf·nvfs] residuals; index = inc·nvfs + field
	Cost    float64        // Σ res²
	Fields  []*vfs.Field   // virtual fields
	Stress  *Stress        // reconstructed stresses; only kept by PostProcess
	P       [][]*mat.Dense // [nf][ne] first Piola-Kirchhoff stresses; only kept by PostProcess
	Sens    []*Sensitivity // stress sensitivities; only kept by PostProcess
}

// Evaluation holds the virtual work evaluation of all tests
type Evaluation struct {
	Results []*Result // [ntests]
	Res     []float64 // residuals of all tests, concatenated
	Cost    float64   // Σ costs
	Success bool      // all reconstructions succeeded
}

// Costs returns the cost of each test
func (o *Evaluation) Costs() (costs []float64) {
	costs = make([]float64, len(o.Results))
	for i, r := range o.Results {
		costs[i] = r.Cost
	}
	return
}

// Init initialises all tests
func (o *Problem) Init(ctx context.Context) (err error) {
	if len(o.Tests) == 0 {
		return chk.Err("at least one test is required")
	}
	if o.Factory == nil {
		o.Factory = msolid.New
	}
	for _, t := range o.Tests {
		if err = t.Init(ctx, o.Large, o.Nworkers); err != nil {
			return
		}
	}
	return
}

// Nres returns the total number of residuals
func (o *Problem) Nres() (n int) {
	for _, t := range o.Tests {
		n += t.Nf() * o.Nvfs(t)
	}
	return
}

// Nvfs returns the number of virtual fields of a test
func (o *Problem) Nvfs(t *Test) int {
	if _, ok := t.Strategy.(vfs.SensitivityBased); ok {
		n := 0
		for _, free := range o.Free {
			if free {
				n++
			}
		}
		return n
	}
	return len(t.Fields)
}

// Evaluate computes residuals and cost of all tests for given properties
//  Tests are evaluated concurrently. A failed stress reconstruction is not an error: the
//  corresponding residuals and cost are NaN and Success is false.
//  Only context cancellation and model-independent failures are returned as errors
func (o *Problem) Evaluate(ctx context.Context, props []float64) (res *Evaluation, err error) {
	return o.evaluate(ctx, props, false)
}

// PostProcess evaluates all tests and keeps stresses and sensitivities for reporting
func (o *Problem) PostProcess(ctx context.Context, props []float64) (res *Evaluation, err error) {
	return o.evaluate(ctx, props, true)
}

func (o *Problem) evaluate(ctx context.Context, props []float64, keep bool) (res *Evaluation, err error) {
	if o.Factory == nil {
		o.Factory = msolid.New
	}
	res = &Evaluation{Results: make([]*Result, len(o.Tests)), Success: true}
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range o.Tests {
		g.Go(func() (err error) {
			res.Results[i], err = o.evalTest(ctx, t, props, keep)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	for _, r := range res.Results {
		res.Res = append(res.Res, r.Res...)
		res.Cost += r.Cost
		res.Success = res.Success && r.Success
	}
	return
}

// evalTest evaluates one test
func (o *Problem) evalTest(ctx context.Context, t *Test, props []float64, keep bool) (r *Result, err error) {

	// results
	nf, nvfs := t.Nf(), o.Nvfs(t)
	r = &Result{Test: t.Name, Success: true}
	fail := func(cause error) (*Result, error) {
		if !errors.Is(cause, ErrReconstruction) {
			return nil, cause
		}
		r.Success, r.Err = false, cause
		r.Res = make([]float64, nf*nvfs)
		for i := range r.Res {
			r.Res[i] = math.NaN()
		}
		r.Cost = math.NaN()
		return r, nil
	}

	// reference stresses
	s, err := Reconstruct(ctx, t, props, o.Factory, o.Nworkers)
	if err != nil {
		return fail(err)
	}
	var P [][]*mat.Dense
	if o.Large {
		P = PiolaKirchhoffField(t.Kin, s)
	}

	// virtual fields
	r.Fields = t.Fields
	sb, issb := t.Strategy.(vfs.SensitivityBased)
	if issb {
		fields, sens, err := SensitivityFields(ctx, t, props, o.Free, o.Names, s, P, o.Large, o.Factory, o.Nworkers)
		if err != nil {
			return fail(err)
		}
		r.Fields = fields
		if keep {
			r.Sens = sens
		}
	}

	// virtual work
	r.Ivw = InternalWork(t, s, P, r.Fields, o.Large)
	r.Evw = ExternalWork(t, r.Fields)
	r.Alpha = make([]float64, nvfs)
	for v := range r.Alpha {
		r.Alpha[v] = 1
		if issb {
			r.Alpha[v] = vfs.Scaling(r.Ivw[v], sb.Scale)
		}
	}

	// residuals and cost
	r.Res = make([]float64, nf*nvfs)
	c := 1.0
	if o.Normalize {
		c = 1.0 / math.Sqrt(float64(nf*nvfs))
	}
	for inc := 0; inc < nf; inc++ {
		for v := 0; v < nvfs; v++ {
			res := c * r.Alpha[v] * (r.Ivw[v][inc] - r.Evw[v][inc])
			r.Res[inc*nvfs+v] = res
			r.Cost += res * res
		}
	}
	if keep {
		r.Stress, r.P = s, P
	}
	return
}
