// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"context"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/shp"
	"github.com/cpmech/govfm/vfs"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. rectangle and box")

	X, conn := Rectangle(2, 4, 2, 4)
	chk.Int(tst, "nn", len(X), 15)
	chk.Int(tst, "ne", len(conn), 8)
	chk.Array(tst, "X[0]", 1e-15, X[0], []float64{-1, -2})
	chk.Array(tst, "X[14]", 1e-15, X[14], []float64{1, 2})
	chk.Ints(tst, "conn[0]", conn[0], []int{0, 1, 4, 3})

	// positive volumes
	check := func(X [][]float64, conn [][]int, vol float64) {
		npe := len(conn[0])
		dof := len(X[0])
		shape := shp.GetByNverts(npe, 0)
		x := make([][]float64, dof)
		for i := range x {
			x[i] = make([]float64, npe)
		}
		var sum float64
		for _, verts := range conn {
			for m, n := range verts {
				for i := 0; i < dof; i++ {
					x[i][m] = X[n][i]
				}
			}
			shape.CalcAtCentre(x)
			if !(shape.J > 0) {
				tst.Errorf("Jacobian should be positive. %v is incorrect\n", shape.J)
				return
			}
			sum += shape.Volume(1)
		}
		chk.Float64(tst, "volume", 1e-13, sum, vol)
	}
	check(X, conn, 8)

	X, conn = Box(2, 4, 1, 2, 2, 1)
	chk.Int(tst, "nn", len(X), 18)
	chk.Int(tst, "ne", len(conn), 4)
	check(X, conn, 8)
}

func Test_stretch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stretch01")

	X := [][]float64{{0, 0}, {1, 0}, {1, 2}}
	U := Stretch(X, [][][]float64{{{1, 0}, {0, 1}}, {{1.1, 0.2}, {0, 0.9}}})
	chk.Deep2(tst, "U0", 1e-15, U[0], [][]float64{{0, 0}, {0, 0}, {0, 0}})
	chk.Deep2(tst, "U1", 1e-15, U[1], [][]float64{{0, 0}, {0.1, 0}, {0.5, -0.2}})
}

func Test_uniaxial01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uniaxial01. elastic force")

	E := 200000.0
	sol := Uniaxial{
		W: 2, H: 4, Nx: 2, Ny: 4, Emax: 0.001, Nf: 5,
		Props: []float64{0, 0, E, 0.3, 0, 0, 1e9, 0, 0},
	}
	t, err := sol.Generate(context.Background(), "tension", vfs.UserDefined{Types: []int{1, 2}}, false)
	if err != nil {
		tst.Errorf("Generate failed: %v\n", err)
		return
	}
	for inc, F := range t.Force {
		εyy := 0.001 * float64(inc) / 4
		io.Pforan("F = %v\n", F)
		chk.Float64(tst, "Fy", 1e-7, F[1], E*εyy*2)
		chk.Float64(tst, "Fx", 1e-15, F[0], 0)
		λx := math.Exp(-0.3 * εyy)
		chk.Float64(tst, "ux", 1e-12, t.U[inc][len(t.X)-1][0], (λx-1)*1)
	}
	if _, ok := t.Strategy.(vfs.UserDefined); !ok {
		tst.Errorf("strategy should be user-defined\n")
	}
	if t.Fields != nil {
		tst.Errorf("fields should be reset\n")
	}
}
