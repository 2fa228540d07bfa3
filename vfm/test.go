// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vfm implements the principle of virtual work evaluation of mechanical tests:
// stress reconstruction, virtual fields, internal and external virtual work and cost
package vfm

import (
	"context"
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/kin"
	"github.com/cpmech/govfm/ten"
	"github.com/cpmech/govfm/vfs"
	"gonum.org/v1/gonum/mat"
)

// Test holds the data of one mechanical test
type Test struct {

	// input
	Name        string        // name of test
	X           [][]float64   // [nn][dof] reference coordinates
	Conn        [][]int       // [ne][npe] connectivity
	U           [][][]float64 // [nf][nn][dof] nodal displacements
	Time        []float64     // [nf] time of increments
	Force       [][]float64   // [nf][dof] global loading force
	Thickness   float64       // thickness of 2D specimens
	Orientation float64       // material orientation in degrees
	Symmetry    []string      // symmetry conditions; e.g. ["x"]
	Strategy    vfs.Strategy  // virtual fields

	// derived
	Kin    *kin.Kinematics // deformation data
	Rotm   *mat.Dense      // material rotation
	Fields []*vfs.Field    // user-defined virtual fields
	Bcs    *vfs.BCs        // boundary conditions of sensitivity-based fields
	Op     *vfs.Operator   // strain-displacement operator of sensitivity-based fields
}

// Init computes the deformation data and the geometry-only parts of virtual fields
//  large    -- large deformation framework
//  nworkers -- number of goroutines of element loops; ≤ 0 means GOMAXPROCS
func (o *Test) Init(ctx context.Context, large bool, nworkers int) (err error) {

	// check
	nf := len(o.U)
	if nf < 2 {
		return chk.Err("test %q: at least two increments are required. nf = %d", o.Name, nf)
	}
	if len(o.Time) != nf || len(o.Force) != nf {
		return chk.Err("test %q: number of increments is inconsistent: len(U)=%d len(Time)=%d len(Force)=%d", o.Name, nf, len(o.Time), len(o.Force))
	}
	for i := 1; i < nf; i++ {
		if !(o.Time[i] > o.Time[i-1]) {
			return chk.Err("test %q: time must be strictly increasing. t[%d]=%v t[%d]=%v", o.Name, i-1, o.Time[i-1], i, o.Time[i])
		}
	}
	if o.Strategy == nil {
		return chk.Err("test %q: virtual fields strategy is missing", o.Name)
	}
	if err = CheckSymmetry(o.Symmetry); err != nil {
		return chk.Err("test %q: %v", o.Name, err)
	}

	// kinematics
	dof := len(o.X[0])
	if dof == 2 && !(o.Thickness > 0) {
		return chk.Err("test %q: thickness must be positive. thickness = %v", o.Name, o.Thickness)
	}
	o.Rotm = ten.MatRotation(o.Orientation, dof)
	o.Kin, err = kin.Compute(ctx, o.X, o.Conn, o.U, o.Rotm, o.Thickness, nworkers)
	if err != nil {
		return chk.Err("test %q: %v", o.Name, err)
	}

	// virtual fields
	switch s := o.Strategy.(type) {
	case vfs.UserDefined:
		o.Fields, err = vfs.UserDefinedFields(s.Types, o.X, o.Kin.Centroids)
		if err != nil {
			return chk.Err("test %q: %v", o.Name, err)
		}
	case vfs.SensitivityBased:
		if !(s.Dx > 0) || !(s.Scale > 0) || s.Scale > 1 {
			return chk.Err("test %q: sensitivity-based fields need 0 < dx and 0 < scale ≤ 1. dx=%v scale=%v", o.Name, s.Dx, s.Scale)
		}
		o.Bcs, err = vfs.NewBCs(o.X, s.Edges)
		if err != nil {
			return fmt.Errorf("test %q: %w", o.Name, err)
		}
		o.Op, err = vfs.NewOperator(o.Conn, o.Kin.G, o.Bcs, large)
		if err != nil {
			return chk.Err("test %q: %v", o.Name, err)
		}
	default:
		return chk.Err("test %q: virtual fields strategy %T is not available", o.Name, s)
	}
	return
}

// Nf returns the number of increments
func (o *Test) Nf() int { return len(o.U) }

// Dof returns the space dimension
func (o *Test) Dof() int { return len(o.X[0]) }

// SymmetryFactor returns the multiplier of internal virtual work due to symmetry conditions
func (o *Test) SymmetryFactor() float64 {
	return math.Pow(2, float64(len(o.Symmetry)))
}

// CheckSymmetry checks that symmetry conditions are distinct planes among "x" and "y"
func CheckSymmetry(symmetry []string) error {
	seen := map[string]bool{}
	for _, s := range symmetry {
		if s != "x" && s != "y" {
			return chk.Err("symmetry condition %q is invalid; use \"x\" or \"y\"", s)
		}
		if seen[s] {
			return chk.Err("symmetry condition %q is repeated", s)
		}
		seen[s] = true
	}
	return nil
}
