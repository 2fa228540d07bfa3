// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// grid returns a structured qua4 mesh of [x0,x0+lx]×[y0,y0+ly] with nx×ny elements, the element
// centroids and the cartesian derivatives of shape functions of each element
func grid(x0, y0, lx, ly float64, nx, ny int) (X [][]float64, conn [][]int, centroids [][]float64, G [][][]float64) {
	dx, dy := lx/float64(nx), ly/float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			X = append(X, []float64{x0 + dx*float64(i), y0 + dy*float64(j)})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i
			conn = append(conn, []int{n0, n0 + 1, n0 + nx + 2, n0 + nx + 1})
			centroids = append(centroids, []float64{x0 + dx*(float64(i)+0.5), y0 + dy*(float64(j)+0.5)})
			G = append(G, [][]float64{
				{-0.5 / dx, -0.5 / dy},
				{+0.5 / dx, -0.5 / dy},
				{+0.5 / dx, +0.5 / dy},
				{-0.5 / dx, +0.5 / dy},
			})
		}
	}
	return
}

func rows(A mat.Matrix) (res [][]float64) {
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
