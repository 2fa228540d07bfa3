// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_userdef01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("userdef01. admissibility")

	// centred specimen
	X, _, centroids, _ := grid(-2, -5, 4, 10, 4, 10)
	g := NewGeometry(X)
	chk.Float64(tst, "w", 1e-15, g.W, 2)
	chk.Float64(tst, "h", 1e-15, g.H, 5)
	chk.Float64(tst, "xb", 1e-15, g.Xb, 2)
	chk.Float64(tst, "yb", 1e-15, g.Yb, 5)

	types := []int{1, 2, 3, 4, 5}
	fields, err := UserDefinedFields(types, X, centroids)
	if err != nil {
		tst.Errorf("UserDefinedFields failed: %v\n", err)
		return
	}
	for k, f := range fields {
		typ := Get(types[k])
		io.Pforan("%s: u = %v\n", f.Name, f.Boundary(7))

		// boundary displacement is the closed form at the boundary coordinate
		ux, uy := typ.Displacement(g, g.Xb, g.Yb)
		chk.Array(tst, f.Name+": u", 1e-15, f.Boundary(0), []float64{ux, uy})

		// gradient at centroids is the derivative of the closed form
		for e, c := range centroids {
			for i := 0; i < 2; i++ {
				dx := fd.Derivative(func(x float64) float64 {
					u, v := typ.Displacement(g, x, c[1])
					return []float64{u, v}[i]
				}, c[0], &fd.Settings{Formula: fd.Central})
				dy := fd.Derivative(func(y float64) float64 {
					u, v := typ.Displacement(g, c[0], y)
					return []float64{u, v}[i]
				}, c[1], &fd.Settings{Formula: fd.Central})
				chk.Float64(tst, io.Sf("%s: ∂δu%d/∂x @ %d", f.Name, i, e), 1e-8, f.Grad(0, e).At(i, 0), dx)
				chk.Float64(tst, io.Sf("%s: ∂δu%d/∂y @ %d", f.Name, i, e), 1e-8, f.Grad(0, e).At(i, 1), dy)
			}
		}

		// nodal displacements
		for n, x := range X {
			ux, uy := typ.Displacement(g, x[0], x[1])
			chk.Array(tst, f.Name+": un", 1e-15, f.Nodal(0)[n], []float64{ux, uy})
		}
	}

	// grip displacements of a centred specimen: top moves by +1, bottom by -1
	u, _ := Get(1).Displacement(g, 0, g.Yb)
	chk.Float64(tst, "ux top", 1e-15, u, 0)
	_, v := Get(1).Displacement(g, 0, -g.H)
	chk.Float64(tst, "uy bottom", 1e-15, v, -1)

	// fields 3, 4 and 5 vanish along the top grip
	for _, id := range []int{3, 4, 5} {
		for _, x := range []float64{-2, -1, 0.5, 2} {
			ux, uy := Get(id).Displacement(g, x, g.Yb)
			chk.Array(tst, io.Sf("ud%d @ top", id), 1e-15, []float64{ux, uy}, []float64{0, 0})
		}
	}
}

func Test_userdef02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("userdef02. errors")

	X, _, centroids, _ := grid(0, 0, 1, 1, 2, 2)
	if _, err := UserDefinedFields([]int{6}, X, centroids); err == nil {
		tst.Errorf("UserDefinedFields should have failed with type 6\n")
	}
	if _, err := UserDefinedFields(nil, X, centroids); err == nil {
		tst.Errorf("UserDefinedFields should have failed with no types\n")
	}
	if _, err := UserDefinedFields([]int{1}, [][]float64{{0, 0}, {1, 0}}, centroids); err == nil {
		tst.Errorf("UserDefinedFields should have failed with zero height\n")
	}
}
