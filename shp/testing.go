// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)
	dSdR := make([][]float64, shape.Nverts)
	for n := range dSdR {
		dSdR[n] = append([]float64{}, shape.DSdR[n]...)
	}

	// numerical
	S := make([]float64, shape.Nverts)
	rtmp := make([]float64, len(r))
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dnum := fd.Derivative(func(x float64) float64 {
				copy(rtmp, r)
				rtmp[i] = x
				shape.Func(S, nil, rtmp, false)
				return S[n]
			}, r[i], &fd.Settings{Formula: fd.Central})
			if verbose {
				io.Pf("dS%d/dR%d @ %v = %v (num: %v)\n", n, i, r, dSdR[n][i], dnum)
			}
			if math.Abs(dnum-dSdR[n][i]) > tol {
				tst.Errorf("%s: dS%d/dR%d failed: %v != %v\n", shape.Type, n, i, dSdR[n][i], dnum)
			}
		}
	}
}
