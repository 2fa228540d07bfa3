// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// grid returns a structured qua4 mesh of [0,lx]×[0,ly] with nx×ny elements
func grid(lx, ly float64, nx, ny int) (X [][]float64, conn [][]int) {
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			X = append(X, []float64{lx * float64(i) / float64(nx), ly * float64(j) / float64(ny)})
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

// homogeneous returns the displacements of u = (F - I)·X
func homogeneous(X [][]float64, F [][]float64) (u [][]float64) {
	u = make([][]float64, len(X))
	for n, x := range X {
		u[n] = make([]float64, len(x))
		for i := range x {
			for j := range x {
				u[n][i] += F[i][j] * x[j]
			}
			u[n][i] -= x[i]
		}
	}
	return
}

// rows converts a matrix to a slice of rows
func rows(A interface {
	Dims() (int, int)
	At(i, j int) float64
}) (res [][]float64) {
	r, c := A.Dims()
	res = make([][]float64, r)
	for i := 0; i < r; i++ {
		res[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			res[i][j] = A.At(i, j)
		}
	}
	return
}
