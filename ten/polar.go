// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ten

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Polar computes the left polar decomposition F = V·R
//  F = WΣVhᵀ  =>  V = WΣWᵀ  and  R = V⁻¹·F
//  Note: the identity is returned exactly for F = I
func Polar(F mat.Matrix) (R, V *mat.Dense, err error) {
	dof, _ := F.Dims()
	if mat.Equal(F, Identity(dof)) {
		return Identity(dof), Identity(dof), nil
	}
	var svd mat.SVD
	if !svd.Factorize(F, mat.SVDFull) {
		return nil, nil, chk.Err("singular value decomposition of F failed. F =\n%v", mat.Formatted(F))
	}
	var W mat.Dense
	svd.UTo(&W)
	σ := svd.Values(nil)
	WΣ := mat.NewDense(dof, dof, nil)
	for j := 0; j < dof; j++ {
		for i := 0; i < dof; i++ {
			WΣ.Set(i, j, W.At(i, j)*σ[j])
		}
	}
	V = new(mat.Dense)
	V.Mul(WΣ, W.T())
	var Vi mat.Dense
	if err = Vi.Inverse(V); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, nil, chk.Err("cannot invert stretch tensor: %v", err)
		}
		err = nil
	}
	R = new(mat.Dense)
	R.Mul(&Vi, F)
	return
}

// LogSym computes the logarithm of a symmetric positive definite tensor
//  log(V) = Q · diag(log λ) · Qᵀ
//  Note: the zero tensor is returned exactly for V = I
func LogSym(V mat.Matrix) (E *mat.Dense, err error) {
	dof, _ := V.Dims()
	if mat.Equal(V, Identity(dof)) {
		return mat.NewDense(dof, dof, nil), nil
	}
	S := mat.NewSymDense(dof, nil)
	for i := 0; i < dof; i++ {
		for j := i; j < dof; j++ {
			S.SetSym(i, j, (V.At(i, j)+V.At(j, i))/2)
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(S, true) {
		return nil, chk.Err("eigen decomposition of stretch tensor failed. V =\n%v", mat.Formatted(V))
	}
	λ := eig.Values(nil)
	var Q mat.Dense
	eig.VectorsTo(&Q)
	var QL mat.Dense
	QL.CloneFrom(&Q)
	for j := 0; j < dof; j++ {
		l := math.Log(λ[j])
		for i := 0; i < dof; i++ {
			QL.Set(i, j, Q.At(i, j)*l)
		}
	}
	E = new(mat.Dense)
	E.Mul(&QL, Q.T())
	return
}

// Det returns the determinant of a 2x2 or 3x3 tensor
func Det(A mat.Matrix) float64 {
	return mat.Det(A)
}
