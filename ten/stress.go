// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ten

import (
	"gonum.org/v1/gonum/mat"
)

// PiolaKirchhoff computes the first Piola-Kirchhoff stress
//  P = det(F)·(1 + e33)·σ·F⁻ᵀ
//  e33 -- thickness strain increment ratio of plane stress problems; zero otherwise
//  Note: a singular F yields Inf/NaN entries
func PiolaKirchhoff(σ, F mat.Matrix, e33 float64) (P *mat.Dense) {
	dof, _ := F.Dims()
	var Fi mat.Dense
	if err := Fi.Inverse(F); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			P = mat.NewDense(dof, dof, nil)
			for i := 0; i < dof; i++ {
				for j := 0; j < dof; j++ {
					P.Set(i, j, nan)
				}
			}
			return
		}
	}
	P = new(mat.Dense)
	P.Mul(σ, Fi.T())
	P.Scale(mat.Det(F)*(1.0+e33), P)
	return
}

// Hydrostatic returns the hydrostatic (mean) stress tr(σ)/3
func Hydrostatic(σ mat.Matrix) float64 {
	return mat.Trace(σ) / 3.0
}

// Deviatoric returns the deviatoric stress σ - p·I
func Deviatoric(σ mat.Matrix) (s *mat.Dense) {
	dof, _ := σ.Dims()
	p := Hydrostatic(σ)
	s = mat.DenseCopyOf(σ)
	for i := 0; i < dof; i++ {
		s.Set(i, i, s.At(i, i)-p)
	}
	return
}
