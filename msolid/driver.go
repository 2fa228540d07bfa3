// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Driver runs simulations with constitutive models along homogeneous strain paths with mixed
// control: some strain components are prescribed and the others are found such that the
// corresponding stress components vanish
type Driver struct {

	// input
	Mdl   Model // constitutive model
	Ntens int   // number of stress/strain components

	// settings
	Silent bool    // do not show error messages
	Tol    float64 // tolerance on the stress of the free components
	MaxIt  int     // max number of Newton iterations per increment

	// results
	Res []*State    // results
	Eps [][]float64 // total strains (engineering Voigt) including the computed free components
}

// Init initialises driver
func (o *Driver) Init(mdl Model, ntens int) (err error) {
	if mdl.Nstatev() != ntens+1 {
		return chk.Err("driver: model has %d state variables but ntens+1 = %d", mdl.Nstatev(), ntens+1)
	}
	o.Mdl = mdl
	o.Ntens = ntens
	o.Tol = 1e-9
	o.MaxIt = 50
	return
}

// Run runs simulation
//  eps  -- [np][ntens] prescribed strains; entries at free positions are ignored
//  free -- indices of the stress-free components
func (o *Driver) Run(eps [][]float64, free []int) (err error) {

	// allocate results arrays
	np := len(eps)
	o.Res = make([]*State, np)
	o.Eps = make([][]float64, np)
	o.Res[0] = NewState(o.Ntens)
	o.Eps[0] = append([]float64{}, eps[0]...)
	for _, k := range free {
		o.Eps[0][k] = 0
	}

	// update states
	nfree := len(free)
	sv := make([]float64, o.Ntens+1)
	σ := make([]float64, o.Ntens)
	x := make([]float64, nfree)
	cur := NewState(o.Ntens)
	J := mat.NewDense(max(nfree, 1), max(nfree, 1), nil)
	for i := 1; i < np; i++ {

		// trial update from the previous committed state
		prev := o.Res[i-1]
		εnew := append([]float64{}, eps[i]...)
		var ferr error
		update := func(y, x []float64) {
			for j, k := range free {
				εnew[k] = x[j]
			}
			Δε := make([]float64, o.Ntens)
			floats.SubTo(Δε, εnew, o.Eps[i-1])
			prev.Store(σ, sv)
			if e := o.Mdl.Update(σ, sv, εnew, Δε, 0, i); e != nil {
				ferr = e
				for j := range y {
					y[j] = math.NaN()
				}
				return
			}
			for j, k := range free {
				y[j] = σ[k]
			}
		}

		// Newton iterations on the free components
		for j, k := range free {
			x[j] = o.Eps[i-1][k]
		}
		y := make([]float64, nfree)
		converged := nfree == 0
		for it := 0; it < o.MaxIt && !converged; it++ {
			update(y, x)
			if ferr != nil {
				return o.fail(ferr)
			}
			if floats.Norm(y, math.Inf(1)) <= o.Tol {
				converged = true
				break
			}
			fd.Jacobian(J, update, x, &fd.JacobianSettings{
				Formula:     fd.Central,
				Step:        1e-9,
				OriginValue: y,
			})
			if ferr != nil {
				return o.fail(ferr)
			}
			var δ mat.VecDense
			if e := δ.SolveVec(J, mat.NewVecDense(nfree, append([]float64{}, y...))); e != nil {
				if _, ok := e.(mat.Condition); !ok {
					return o.fail(chk.Err("driver: increment %d: singular tangent: %v", i, e))
				}
			}
			for j := range x {
				x[j] -= δ.AtVec(j)
			}
		}
		if !converged {
			return o.fail(chk.Err("driver: increment %d: mixed control did not converge. residual = %v", i, y))
		}

		// commit
		update(y, x)
		cur.Load(σ, sv)
		o.Res[i] = cur.GetCopy()
		o.Eps[i] = append([]float64{}, εnew...)
	}
	return
}

// fail prints a message unless silent and returns the error
func (o *Driver) fail(err error) error {
	if !o.Silent {
		io.PfRed("%v\n", err)
	}
	return err
}
