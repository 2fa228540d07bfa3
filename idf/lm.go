// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"context"
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// levenbergMarquardt minimises the sum of squared residuals
//  The working variables are the normalised (and optionally transformed) free variables.
//  Steps solve (JᵀJ + λ·diag(JᵀJ))·δ = -Jᵀr; λ is updated from the gain ratio.
func (o *Identifier) levenbergMarquardt(ctx context.Context, obj *objective, alg *LevenbergMarquardt, x0 []float64, bounds [][2]float64) (msg string, success bool, err error) {

	// normalisation and transform
	nrm, err := NewNormalizer(ByReference, x0, bounds)
	if err != nil {
		return
	}
	var trf *Transform
	if alg.Transform {
		if trf, err = NewTransform(nrm); err != nil {
			return
		}
	}
	n := len(x0)
	toPhysical := func(x, w []float64) {
		xn := append([]float64{}, w...)
		if trf != nil {
			trf.Forward(xn, w)
		}
		nrm.Denormalize(x, xn)
	}

	// residuals
	m := o.Problem.Nres()
	nfev := 0
	x := make([]float64, n)
	residuals := func(r, w []float64) {
		nfev++
		toPhysical(x, w)
		ev := obj.eval(ctx, x)
		if ev == nil || len(ev.Res) != m {
			for i := range r {
				r[i] = math.NaN()
			}
			return
		}
		copy(r, ev.Res)
	}
	sumsq := func(r []float64) float64 { return floats.Dot(r, r) }

	// initial point
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	r := make([]float64, m)
	residuals(r, w)
	if e := obj.error(); e != nil {
		return "", false, e
	}
	c := sumsq(r)
	if !finite(c) {
		return "initial point is invalid", false, nil
	}
	o.Session.Iterate()

	// iterations
	J := mat.NewDense(m, n, nil)
	var JtJ mat.Dense
	var g mat.VecDense
	λ, ν := -1.0, 2.0
	wn := make([]float64, n)
	rn := make([]float64, m)
	for nfev < alg.MaxFev {

		// Jacobian and gradient
		fd.Jacobian(J, residuals, w, &fd.JacobianSettings{
			Formula:     fd.Forward,
			OriginValue: r,
			Step:        alg.DiffStep,
		})
		if e := obj.error(); e != nil {
			return "", false, e
		}
		if !finiteMatrix(J) {
			return "Jacobian is not finite", false, nil
		}
		JtJ.Mul(J.T(), J)
		g.MulVec(J.T(), mat.NewVecDense(m, r))
		if mat.Norm(&g, math.Inf(1)) <= alg.Gtol {
			return "gradient tolerance reached", true, nil
		}
		if λ < 0 {
			λ = 1e-3 * maxDiag(&JtJ)
		}

		// damped steps
		for {
			if nfev >= alg.MaxFev {
				return "maximum number of evaluations reached", false, nil
			}
			A := mat.NewDense(n, n, nil)
			A.Copy(&JtJ)
			for i := 0; i < n; i++ {
				A.Set(i, i, JtJ.At(i, i)+λ*math.Max(JtJ.At(i, i), 1e-12))
			}
			var δ mat.VecDense
			if e := δ.SolveVec(A, &g); e != nil {
				if _, ok := e.(mat.Condition); !ok {
					return io.Sf("linear system failed: %v", e), false, nil
				}
			}
			δ.ScaleVec(-1, &δ)
			if mat.Norm(&δ, 2) <= alg.Xtol*(floats.Norm(w, 2)+alg.Xtol) {
				return "step tolerance reached", true, nil
			}
			floats.AddTo(wn, w, δ.RawVector().Data)
			residuals(rn, wn)
			if e := obj.error(); e != nil {
				return "", false, e
			}
			cn := sumsq(rn)
			if finite(cn) && cn < c {

				// gain ratio: actual over predicted reduction
				var Jδ mat.VecDense
				Jδ.MulVec(J, &δ)
				rp := make([]float64, m)
				floats.AddTo(rp, r, Jδ.RawVector().Data)
				pred := c - sumsq(rp)
				ρ := (c - cn) / pred
				reduction := c - cn
				copy(w, wn)
				copy(r, rn)
				c = cn
				o.Session.Iterate()
				λ *= math.Max(1.0/3.0, 1-math.Pow(2*ρ-1, 3))
				ν = 2
				if reduction <= alg.Ftol*(c+reduction) {
					return "cost tolerance reached", true, nil
				}
				break
			}
			λ *= ν
			ν *= 2
		}
	}
	return "maximum number of evaluations reached", false, nil
}

func maxDiag(A mat.Matrix) (res float64) {
	n, _ := A.Dims()
	for i := 0; i < n; i++ {
		res = math.Max(res, A.At(i, i))
	}
	if res == 0 {
		res = 1
	}
	return
}

func finiteMatrix(A mat.Matrix) bool {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !finite(A.At(i, j)) {
				return false
			}
		}
	}
	return true
}
