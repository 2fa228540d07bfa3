// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// YieldFunc defines quadratic yield functions φ(σ) = sqrt(σᵀ·P·σ)
type YieldFunc interface {
	component
	P(ndim int) [][]float64 // P returns the quadratic form matrix; ndim == 2 means plane stress
}

// yieldAllocators holds all available yield functions
var yieldAllocators = map[int]func() YieldFunc{}

// add models to factory
func init() {
	yieldAllocators[0] = func() YieldFunc { return new(VonMises) }
	yieldAllocators[1] = func() YieldFunc { return new(Hill48) }
}

// VonMises implements the von Mises yield function
type VonMises struct{}

// Init initialises model
func (o *VonMises) Init(p []float64) (err error) { return }

// Names returns the names of the parameters
func (o VonMises) Names() []string { return nil }

// P returns the quadratic form matrix
func (o VonMises) P(ndim int) [][]float64 {
	return hillP(ndim, 0.5, 0.5, 0.5, 1.5, 1.5, 1.5)
}

// Hill48 implements Hill's 1948 orthotropic yield function
//  φ² = F(σyy-σzz)² + G(σzz-σxx)² + H(σxx-σyy)² + 2Lσyz² + 2Mσxz² + 2Nσxy²
type Hill48 struct {
	F, G, H, L, M, N float64
}

// Init initialises model
func (o *Hill48) Init(p []float64) (err error) {
	o.F, o.G, o.H, o.L, o.M, o.N = p[0], p[1], p[2], p[3], p[4], p[5]
	if o.G+o.H <= 0 || o.F+o.H <= 0 || o.N <= 0 {
		return chk.Err("Hill48 coefficients give a non positive definite yield function: %+v", *o)
	}
	return
}

// Names returns the names of the parameters
func (o Hill48) Names() []string { return []string{"F", "G", "H", "L", "M", "N"} }

// P returns the quadratic form matrix
func (o Hill48) P(ndim int) [][]float64 {
	return hillP(ndim, o.F, o.G, o.H, o.L, o.M, o.N)
}

// hillP assembles the quadratic form of Hill48 for stresses in Voigt notation (true shear)
func hillP(ndim int, F, G, H, L, M, N float64) (P [][]float64) {
	if ndim == 2 {
		return [][]float64{
			{G + H, -H, 0},
			{-H, F + H, 0},
			{0, 0, 2.0 * N},
		}
	}
	P = utl.Alloc(6, 6)
	P[0][0], P[0][1], P[0][2] = G+H, -H, -G
	P[1][0], P[1][1], P[1][2] = -H, F+H, -F
	P[2][0], P[2][1], P[2][2] = -G, -F, F+G
	P[3][3] = 2.0 * N
	P[4][4] = 2.0 * M
	P[5][5] = 2.0 * L
	return
}
