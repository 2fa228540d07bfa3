// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Elasticity defines linear elastic laws
type Elasticity interface {
	component
	Poisson() float64
	Stiffness(ndim int) [][]float64 // Stiffness returns C for engineering strains; ndim == 2 means plane stress
}

// elastAllocators holds all available elastic laws
var elastAllocators = map[int]func() Elasticity{}

// add models to factory
func init() {
	elastAllocators[0] = func() Elasticity { return new(Isotropic) }
}

// Isotropic implements isotropic linear elasticity
type Isotropic struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
}

// Init initialises model
func (o *Isotropic) Init(p []float64) (err error) {
	o.E, o.Nu = p[0], p[1]
	if o.E <= 0 {
		return chk.Err("Young's modulus must be positive. E = %v is invalid", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("Poisson's coefficient must be in (-1, 0.5). nu = %v is invalid", o.Nu)
	}
	return
}

// Names returns the names of the parameters
func (o Isotropic) Names() []string { return []string{"E", "nu"} }

// Poisson returns Poisson's coefficient
func (o Isotropic) Poisson() float64 { return o.Nu }

// Stiffness returns the elastic stiffness
//  2D: plane stress (xx, yy, xy)
//  3D: (xx, yy, zz, xy, xz, yz)
func (o Isotropic) Stiffness(ndim int) (C [][]float64) {
	if ndim == 2 {
		c := o.E / (1.0 - o.Nu*o.Nu)
		C = [][]float64{
			{c, c * o.Nu, 0},
			{c * o.Nu, c, 0},
			{0, 0, c * (1.0 - o.Nu) / 2.0},
		}
		return
	}
	G := o.E / (2.0 * (1.0 + o.Nu))
	l := o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	C = utl.Alloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = l
		}
		C[i][i] = l + 2.0*G
		C[3+i][3+i] = G
	}
	return
}
