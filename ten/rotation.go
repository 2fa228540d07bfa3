// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ten

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// rotation directions
const (
	ToMaterial = -1 // global => corotational material frame
	ToGlobal   = +1 // corotational material frame => global
)

// MatRotation returns the material rotation tensor for an in-plane orientation angle
//  ori -- angle in degrees around the z-axis
//  Note: entries with magnitude below 1e-16 are set to zero
func MatRotation(ori float64, dof int) (rotm *mat.Dense) {
	θ := ori * math.Pi / 180.0
	c, s := math.Cos(θ), math.Sin(θ)
	Q := [][]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
	rotm = mat.NewDense(dof, dof, nil)
	for i := 0; i < dof; i++ {
		for j := 0; j < dof; j++ {
			if math.Abs(Q[i][j]) >= 1e-16 {
				rotm.Set(i, j, Q[i][j])
			}
		}
	}
	return
}

// Rotate rotates a tensor between the global and corotational material frames
//  R    -- rigid body rotation of the current increment
//  rotm -- material rotation
//  dir  -- ToMaterial: Qᵀ · A · Q
//          ToGlobal:   Q · A · Qᵀ
//  with Q = R·rotm, i.e. the material axes carried by the rigid rotation.
//  Note: in 2D R and rotm commute and Q = rotm·R as well
func Rotate(A, R, rotm mat.Matrix, dir int) (B *mat.Dense) {
	var Q mat.Dense
	Q.Mul(R, rotm)
	var tmp mat.Dense
	B = new(mat.Dense)
	switch dir {
	case ToMaterial:
		tmp.Mul(Q.T(), A)
		B.Mul(&tmp, &Q)
	case ToGlobal:
		tmp.Mul(&Q, A)
		B.Mul(&tmp, Q.T())
	default:
		chk.Panic("rotation direction must be -1 or +1. dir = %d is invalid", dir)
	}
	return
}

// RotateVoigt rotates a Voigt vector between the global and corotational material frames
//  eng -- engineering shear convention of input and output
func RotateVoigt(v []float64, R, rotm mat.Matrix, dir int, eng bool) []float64 {
	return ToVoigt(Rotate(ToTensor(v, eng), R, rotm, dir), eng)
}
