// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/msolid"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// properties: [debug, isotropic, E, ν, von Mises, hardening...]
var (
	propsElast = []float64{0, 0, 200000, 0.3, 0, 0, 1e9, 0, 0}
	propsLin   = []float64{0, 0, 200000, 0.3, 0, 1, 250, 1000, 0, 0}
)

// grid returns a structured qua4 mesh of [x0,x0+lx]×[y0,y0+ly] with nx×ny elements
func grid(x0, y0, lx, ly float64, nx, ny int) (X [][]float64, conn [][]int) {
	dx, dy := lx/float64(nx), ly/float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			X = append(X, []float64{x0 + dx*float64(i), y0 + dy*float64(j)})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i
			conn = append(conn, []int{n0, n0 + 1, n0 + nx + 2, n0 + nx + 1})
		}
	}
	return
}

// stretch returns the nodal displacements of homogeneous stretches with logarithmic strains
// εyy and εxx = -ν·εyy
func stretch(X [][]float64, εyy []float64, ν float64) (U [][][]float64) {
	U = make([][][]float64, len(εyy))
	for inc, ε := range εyy {
		λx, λy := math.Exp(-ν*ε), math.Exp(ε)
		U[inc] = make([][]float64, len(X))
		for n, x := range X {
			U[inc][n] = []float64{(λx - 1) * x[0], (λy - 1) * x[1]}
		}
	}
	return
}

// series returns 0, d, 2d, ...
func series(n int, d float64) (v []float64) {
	v = make([]float64, n)
	for i := range v {
		v[i] = d * float64(i)
	}
	return
}

// failingModel fails at a chosen increment
type failingModel struct {
	msolid.Model
	inc int
}

func (o *failingModel) Update(σ, sv, ε, Δε []float64, eid, inc int) error {
	if inc == o.inc {
		return chk.Err("model failed at increment %d", inc)
	}
	return o.Model.Update(σ, sv, ε, Δε, eid, inc)
}

// failingFactory allocates the built-in model, which fails at increment inc if fails(props) is true
func failingFactory(inc int, fails func(props []float64) bool) msolid.Factory {
	return func(props []float64, ndim int) (msolid.Model, error) {
		mdl, err := msolid.New(props, ndim)
		if err != nil || !fails(props) {
			return mdl, err
		}
		return &failingModel{Model: mdl, inc: inc}, nil
	}
}
