// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements synthetic specimens: structured meshes, homogeneous deformation paths
// and the reference data of tests with known material properties
package ana

import (
	"github.com/cpmech/gosl/chk"
)

// Rectangle generates a structured qua4 mesh of a w×h rectangle centred at the origin
//  Vertices of each element are ordered counter-clockwise starting at the bottom-left corner
func Rectangle(w, h float64, nx, ny int) (X [][]float64, conn [][]int) {
	if nx < 1 || ny < 1 {
		chk.Panic("number of divisions must be positive. nx=%d ny=%d", nx, ny)
	}
	dx, dy := w/float64(nx), h/float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			X = append(X, []float64{-w/2 + dx*float64(i), -h/2 + dy*float64(j)})
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

// Box generates a structured hex8 mesh of a w×h×d box centred at the origin
//  Vertices of each element follow the natural coordinates of hex8r: 0..3 on the y- face and
//  4..7 on the y+ face, each face ordered as (x-,z+), (x+,z+), (x+,z-), (x-,z-)
func Box(w, h, d float64, nx, ny, nz int) (X [][]float64, conn [][]int) {
	if nx < 1 || ny < 1 || nz < 1 {
		chk.Panic("number of divisions must be positive. nx=%d ny=%d nz=%d", nx, ny, nz)
	}
	dx, dy, dz := w/float64(nx), h/float64(ny), d/float64(nz)
	id := func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				X = append(X, []float64{-w/2 + dx*float64(i), -h/2 + dy*float64(j), -d/2 + dz*float64(k)})
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				conn = append(conn, []int{
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j, k), id(i, j, k),
					id(i, j+1, k+1), id(i+1, j+1, k+1), id(i+1, j+1, k), id(i, j+1, k),
				})
			}
		}
	}
	return
}

// Stretch returns the nodal displacements of homogeneous deformations
//  u = (F - I)·X
//  F -- [nf][dof][dof] deformation gradients
func Stretch(X [][]float64, F [][][]float64) (U [][][]float64) {
	U = make([][][]float64, len(F))
	for inc, f := range F {
		U[inc] = make([][]float64, len(X))
		for n, x := range X {
			U[inc][n] = make([]float64, len(x))
			for i := range x {
				for j := range x {
					U[inc][n][i] += f[i][j] * x[j]
				}
				U[inc][n][i] -= x[i]
			}
		}
	}
	return
}
