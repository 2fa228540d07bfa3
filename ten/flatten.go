// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ten

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var nan = math.NaN()

// GradOrder holds the (i,j) pairs of flattened unsymmetric tensors
//  2D: 00, 11, 01, 10
//  3D: 00, 11, 22, 01, 10, 02, 20, 12, 21
var GradOrder = [][][2]int{
	2: {{0, 0}, {1, 1}, {0, 1}, {1, 0}},
	3: {{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 0}, {0, 2}, {2, 0}, {1, 2}, {2, 1}},
}

// Flatten converts an unsymmetric tensor into a vector ordered as GradOrder
func Flatten(A mat.Matrix) (v []float64) {
	dof, _ := A.Dims()
	v = make([]float64, dof*dof)
	for k, ij := range GradOrder[dof] {
		v[k] = A.At(ij[0], ij[1])
	}
	return
}

// Unflatten converts a vector ordered as GradOrder into an unsymmetric tensor
func Unflatten(v []float64) (A *mat.Dense) {
	dof := 2
	if len(v) == 9 {
		dof = 3
	}
	A = mat.NewDense(dof, dof, nil)
	for k, ij := range GradOrder[dof] {
		A.Set(ij[0], ij[1], v[k])
	}
	return
}
