// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// ElastoPlastic implements rate-independent elasto-plasticity with a quadratic yield function,
// associative flow and isotropic hardening integrated by backward-Euler (elastic predictor and
// plastic corrector)
type ElastoPlastic struct {

	// components
	Elast Elasticity // elastic law
	Yield YieldFunc  // yield function
	Hard  Hardening  // isotropic hardening law

	// settings
	Debug  bool    // print messages of failed updates
	Rtol   float64 // relative tolerance on the consistency condition
	MaxIt  int     // max number of iterations of the return mapping
	Ndim   int     // space dimension; 2 means plane stress
	Ntens  int     // number of stress components
	C      *mat.Dense
	P      *mat.Dense
	CP     *mat.Dense // C·P
	nstate int
}

// Init initialises model
func (o *ElastoPlastic) Init(ndim int) (err error) {
	if ndim != 2 && ndim != 3 {
		return chk.Err("space dimension must be 2 or 3. ndim = %d is invalid", ndim)
	}
	o.Ndim = ndim
	o.Ntens = 3
	if ndim == 3 {
		o.Ntens = 6
	}
	o.nstate = 1 + o.Ntens
	o.Rtol = 1e-13
	o.MaxIt = 200
	o.C = toDense(o.Elast.Stiffness(ndim))
	o.P = toDense(o.Yield.P(ndim))
	o.CP = new(mat.Dense)
	o.CP.Mul(o.C, o.P)
	return
}

// Nstatev returns the number of state variables: [ε̄p, εp...]
func (o *ElastoPlastic) Nstatev() int { return o.nstate }

// Poisson returns Poisson's coefficient
func (o *ElastoPlastic) Poisson() float64 { return o.Elast.Poisson() }

// Update updates stresses for given strains
func (o *ElastoPlastic) Update(σ, sv, ε, Δε []float64, eid, inc int) (err error) {

	// check
	if len(σ) != o.Ntens || len(Δε) != o.Ntens || len(sv) != o.nstate {
		return chk.Err("element %d increment %d: wrong sizes: len(σ)=%d len(Δε)=%d len(sv)=%d", eid, inc, len(σ), len(Δε), len(sv))
	}
	if !allFinite(σ) || !allFinite(sv) || !allFinite(Δε) {
		return o.fail(chk.Err("element %d increment %d: non-finite input", eid, inc))
	}

	// state
	s := NewState(o.Ntens)
	s.Load(σ, sv)

	// trial stress
	σtr := mat.NewVecDense(o.Ntens, nil)
	σtr.MulVec(o.C, mat.NewVecDense(o.Ntens, append([]float64{}, Δε...)))
	σtr.AddVec(σtr, mat.NewVecDense(o.Ntens, s.Sig))

	// trial yield function
	k0 := o.Hard.Sy(s.Eqps)
	if !(k0 > 0) {
		return o.fail(chk.Err("element %d increment %d: flow stress must be positive. σy = %v", eid, inc, k0))
	}
	φtr := o.phi(σtr)

	// elastic update
	if φtr <= k0 {
		copy(s.Sig, σtr.RawVector().Data)
		s.Store(σ, sv)
		return
	}

	// elastoplastic update
	Δλ, σnew, err := o.returnMap(σtr, s.Eqps, φtr-k0)
	if err != nil {
		return o.fail(chk.Err("element %d increment %d: return mapping failed: %v", eid, inc, err))
	}
	var r mat.VecDense
	r.MulVec(o.P, σnew)
	φ := o.phi(σnew)
	s.Dgam = Δλ
	s.Loading = true
	s.Eqps += Δλ
	for i := 0; i < o.Ntens; i++ {
		s.EpsP[i] += Δλ * r.AtVec(i) / φ
		s.Sig[i] = σnew.AtVec(i)
	}
	s.Store(σ, sv)
	return
}

// returnMap solves the consistency condition for the plastic multiplier
//  σ(Δλ) = (I + (Δλ/k)·C·P)⁻¹·σtr  with  k = σy(ε̄n + Δλ)
//  r(Δλ) = φ(σ(Δλ)) - k = 0
func (o *ElastoPlastic) returnMap(σtr *mat.VecDense, εbarn, ftr float64) (Δλ float64, σ *mat.VecDense, err error) {

	// residual
	eval := func(x float64) (r float64, σx *mat.VecDense, e error) {
		k := o.Hard.Sy(εbarn + x)
		if !(k > 0) {
			return 0, nil, chk.Err("flow stress must be positive. σy(%v) = %v", εbarn+x, k)
		}
		A := mat.NewDense(o.Ntens, o.Ntens, nil)
		A.Scale(x/k, o.CP)
		for i := 0; i < o.Ntens; i++ {
			A.Set(i, i, A.At(i, i)+1.0)
		}
		σx = mat.NewVecDense(o.Ntens, nil)
		if e = σx.SolveVec(A, σtr); e != nil {
			if _, ok := e.(mat.Condition); !ok {
				return 0, nil, e
			}
			e = nil
		}
		return o.phi(σx) - k, σx, nil
	}

	// bracket: r(0) > 0 and r decreases with Δλ
	lo, rlo := 0.0, ftr
	hi := ftr / o.C.At(0, 0)
	rhi, σhi, err := eval(hi)
	if err != nil {
		return
	}
	for it := 0; rhi > 0; it++ {
		if it == o.MaxIt {
			return 0, nil, chk.Err("cannot bracket plastic multiplier. Δλ = %v r = %v", hi, rhi)
		}
		lo, rlo = hi, rhi
		hi *= 2.0
		if rhi, σhi, err = eval(hi); err != nil {
			return
		}
	}
	if rhi == 0 {
		return hi, σhi, nil
	}

	// Illinois false position with bisection safeguard
	tol := o.Rtol * o.Hard.Sy(εbarn)
	side := 0
	for it := 0; it < o.MaxIt; it++ {
		x := (lo*rhi - hi*rlo) / (rhi - rlo)
		if !(x > lo && x < hi) {
			x = (lo + hi) / 2.0
		}
		var rx float64
		rx, σ, err = eval(x)
		if err != nil {
			return
		}
		if math.Abs(rx) <= tol || (hi-lo) <= 1e-16*hi {
			return x, σ, nil
		}
		if rx > 0 {
			lo, rlo = x, rx
			if side == +1 {
				rhi /= 2.0
			}
			side = +1
		} else {
			hi, rhi = x, rx
			if side == -1 {
				rlo /= 2.0
			}
			side = -1
		}
	}
	return 0, nil, chk.Err("return mapping did not converge after %d iterations. Δλ ∈ [%v, %v]", o.MaxIt, lo, hi)
}

// phi computes φ = sqrt(σᵀ·P·σ)
func (o *ElastoPlastic) phi(σ mat.Vector) float64 {
	return math.Sqrt(math.Max(mat.Inner(σ, o.P, σ), 0))
}

// fail prints a message in debug mode and returns the error
func (o *ElastoPlastic) fail(err error) error {
	if o.Debug {
		io.PfRed("msolid: %v\n", err)
	}
	return err
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func toDense(a [][]float64) *mat.Dense {
	m := mat.NewDense(len(a), len(a[0]), nil)
	for i := range a {
		m.SetRow(i, a[i])
	}
	return m
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
