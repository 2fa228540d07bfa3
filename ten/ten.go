// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ten implements second order tensor routines: Voigt conversions, frame rotations,
// polar decomposition, logarithmic strain and stress measures
package ten

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Voigt component indices
//  2D: xx, yy, xy
//  3D: xx, yy, zz, xy, xz, yz
var (
	voigtI = [][]int{2: {0, 1, 0}, 3: {0, 1, 2, 0, 0, 1}}
	voigtJ = [][]int{2: {0, 1, 1}, 3: {0, 1, 2, 1, 2, 2}}
)

// Ntens returns the number of Voigt components for a given space dimension
func Ntens(dof int) int {
	if dof == 2 {
		return 3
	}
	return 6
}

// Ndi returns the number of normal (direct) Voigt components for a given space dimension
func Ndi(dof int) int {
	return dof
}

// DofFromNtens returns the space dimension corresponding to a Voigt vector length
func DofFromNtens(ntens int) int {
	switch ntens {
	case 3:
		return 2
	case 6:
		return 3
	}
	chk.Panic("cannot find space dimension for ntens = %d", ntens)
	return 0
}

// Identity returns the dof×dof identity matrix
func Identity(dof int) *mat.Dense {
	I := mat.NewDense(dof, dof, nil)
	for i := 0; i < dof; i++ {
		I.Set(i, i, 1)
	}
	return I
}

// ToVoigt converts a symmetric tensor to Voigt notation
//  eng -- engineering shear: off-diagonal terms are doubled
//  Note: the off-diagonal terms are taken from the upper triangle
func ToVoigt(A mat.Matrix, eng bool) (v []float64) {
	dof, _ := A.Dims()
	ntens := Ntens(dof)
	v = make([]float64, ntens)
	for k := 0; k < ntens; k++ {
		v[k] = A.At(voigtI[dof][k], voigtJ[dof][k])
		if eng && k >= dof {
			v[k] *= 2
		}
	}
	return
}

// ToTensor converts a Voigt vector to a symmetric tensor
//  eng -- engineering shear: off-diagonal terms are halved
func ToTensor(v []float64, eng bool) (A *mat.Dense) {
	dof := DofFromNtens(len(v))
	A = mat.NewDense(dof, dof, nil)
	for k, val := range v {
		if eng && k >= dof {
			val /= 2
		}
		i, j := voigtI[dof][k], voigtJ[dof][k]
		A.Set(i, j, val)
		A.Set(j, i, val)
	}
	return
}

// SymVoigt converts the symmetric part of a (possibly unsymmetric) tensor to Voigt notation
//  eng -- engineering shear: off-diagonal terms are A_ij + A_ji; otherwise (A_ij + A_ji)/2
func SymVoigt(A mat.Matrix, eng bool) (v []float64) {
	dof, _ := A.Dims()
	ntens := Ntens(dof)
	v = make([]float64, ntens)
	for k := 0; k < ntens; k++ {
		i, j := voigtI[dof][k], voigtJ[dof][k]
		if k < dof {
			v[k] = A.At(i, i)
			continue
		}
		v[k] = A.At(i, j) + A.At(j, i)
		if !eng {
			v[k] /= 2
		}
	}
	return
}

// Dot returns the Frobenius product A:B
func Dot(A, B mat.Matrix) (res float64) {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			res += A.At(i, j) * B.At(i, j)
		}
	}
	return
}

// VoigtPairs returns the (i,j) tensor indices of each Voigt component
func VoigtPairs(dof int) (pairs [][2]int) {
	pairs = make([][2]int, Ntens(dof))
	for k := range pairs {
		pairs[k] = [2]int{voigtI[dof][k], voigtJ[dof][k]}
	}
	return
}
