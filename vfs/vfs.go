// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vfs implements virtual fields: user-defined closed-form fields and the machinery of
// sensitivity-based fields (boundary conditions, strain-displacement operator, pseudo-inverse)
package vfs

import (
	"gonum.org/v1/gonum/mat"
)

// Strategy selects how the virtual fields of a test are built
//  Note: the set of strategies is closed: UserDefined or SensitivityBased
type Strategy interface {
	strategy()
}

// UserDefined selects closed-form virtual fields from the library by type id
type UserDefined struct {
	Types []int // type ids; see library
}

// SensitivityBased selects virtual fields built from stress sensitivities; one field per free property
type SensitivityBased struct {
	Dx    float64        // relative perturbation of properties
	Scale float64        // fraction of the largest internal virtual work values used by the scaling
	Edges [NEDGES][]Code // [edge][dof] boundary condition codes; edges are Top, Right, Bottom, Left
}

func (UserDefined) strategy()      {}
func (SensitivityBased) strategy() {}

// Field holds a virtual field evaluated on a mesh
//  Note: user-defined fields hold one entry, independent of the increment;
//        sensitivity-based fields hold one entry per increment
type Field struct {
	Name string         // name; e.g. "ud1" or "sb:sy0"
	E    [][]*mat.Dense // [1 or nf][ne] virtual displacement gradient ∂δu_i/∂X_j
	U    [][]float64    // [1 or nf][dof] virtual displacement at the loaded boundary
	Un   [][][]float64  // [1 or nf][nn][dof] nodal virtual displacements; may be nil
}

// Grad returns the virtual displacement gradient of element e at increment inc
func (o *Field) Grad(inc, e int) *mat.Dense {
	if len(o.E) == 1 {
		return o.E[0][e]
	}
	return o.E[inc][e]
}

// Boundary returns the boundary virtual displacement at increment inc
func (o *Field) Boundary(inc int) []float64 {
	if len(o.U) == 1 {
		return o.U[0]
	}
	return o.U[inc]
}

// Nodal returns the nodal virtual displacements at increment inc or nil
func (o *Field) Nodal(inc int) [][]float64 {
	switch len(o.Un) {
	case 0:
		return nil
	case 1:
		return o.Un[0]
	}
	return o.Un[inc]
}
