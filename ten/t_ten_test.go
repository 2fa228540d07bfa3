// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ten

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func Test_voigt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("voigt01")

	A := mat.NewDense(3, 3, []float64{
		1, 4, 5,
		4, 2, 6,
		5, 6, 3,
	})
	chk.Array(tst, "v", 1e-17, ToVoigt(A, false), []float64{1, 2, 3, 4, 5, 6})
	chk.Array(tst, "v(eng)", 1e-17, ToVoigt(A, true), []float64{1, 2, 3, 8, 10, 12})
	chk.Deep2(tst, "A", 1e-17, rows(ToTensor([]float64{1, 2, 3, 8, 10, 12}, true)), rows(A))

	B := mat.NewDense(2, 2, []float64{
		1, 3,
		5, 2,
	})
	chk.Array(tst, "sym", 1e-17, SymVoigt(B, true), []float64{1, 2, 8})
	chk.Array(tst, "sym(true)", 1e-17, SymVoigt(B, false), []float64{1, 2, 4})
	chk.Array(tst, "flat", 1e-17, Flatten(B), []float64{1, 2, 3, 5})
	chk.Deep2(tst, "unflat", 1e-17, rows(Unflatten(Flatten(B))), rows(B))

	C := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	chk.Array(tst, "flat3", 1e-17, Flatten(C), []float64{1, 5, 9, 2, 4, 3, 7, 6, 8})
	chk.Deep2(tst, "unflat3", 1e-17, rows(Unflatten(Flatten(C))), rows(C))
}

func Test_rotation01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotation01")

	rotm := MatRotation(90, 2)
	io.Pforan("rotm = %v\n", rows(rotm))
	chk.Deep2(tst, "rotm(90)", 1e-17, rows(rotm), [][]float64{{0, -1}, {1, 0}})

	// uniaxial stress along x in global frame becomes uniaxial along y in material frame
	σ := []float64{10, 0, 0}
	σm := RotateVoigt(σ, Identity(2), rotm, ToMaterial, false)
	chk.Array(tst, "σm", 1e-14, σm, []float64{0, 10, 0})
	chk.Array(tst, "σ", 1e-14, RotateVoigt(σm, Identity(2), rotm, ToGlobal, false), σ)
}

func Test_rotation02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rotation02")

	rnd := rand.New(rand.NewPCG(1, 2))
	for dof := 2; dof <= 3; dof++ {
		for trial := 0; trial < 20; trial++ {

			// random symmetric tensor
			v := make([]float64, Ntens(dof))
			for k := range v {
				v[k] = rnd.Float64()*2 - 1
			}

			// random rotation from the polar decomposition of a random F
			F := Identity(dof)
			for i := 0; i < dof; i++ {
				for j := 0; j < dof; j++ {
					F.Set(i, j, F.At(i, j)+0.4*(rnd.Float64()-0.5))
				}
			}
			R, _, err := Polar(F)
			if err != nil {
				tst.Errorf("polar failed: %v\n", err)
				return
			}
			rotm := MatRotation(360*rnd.Float64(), dof)

			for _, eng := range []bool{false, true} {
				w := RotateVoigt(RotateVoigt(v, R, rotm, ToGlobal, eng), R, rotm, ToMaterial, eng)
				chk.Array(tst, "round trip", 1e-13, w, v)
				chk.Array(tst, "voigt", 1e-15, ToVoigt(ToTensor(v, eng), eng), v)
			}
		}
	}
}

func Test_polar01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("polar01")

	// identity
	R, V, err := Polar(Identity(3))
	if err != nil {
		tst.Errorf("polar failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "R", 1e-17, rows(R), rows(Identity(3)))
	chk.Deep2(tst, "V", 1e-17, rows(V), rows(Identity(3)))
	E, err := LogSym(V)
	if err != nil {
		tst.Errorf("log failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "E", 1e-17, rows(E), [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	// rotated stretch: F = Q·U with U = diag(1.2, 0.9)
	θ := 0.3
	c, s := math.Cos(θ), math.Sin(θ)
	Q := mat.NewDense(2, 2, []float64{c, -s, s, c})
	U := mat.NewDense(2, 2, []float64{1.2, 0, 0, 0.9})
	var F mat.Dense
	F.Mul(Q, U)
	R, V, err = Polar(&F)
	if err != nil {
		tst.Errorf("polar failed: %v\n", err)
		return
	}
	io.Pforan("R = %v\n", rows(R))
	chk.Deep2(tst, "R", 1e-14, rows(R), rows(Q))
	var VR mat.Dense
	VR.Mul(V, R)
	chk.Deep2(tst, "V·R", 1e-14, rows(&VR), rows(&F))

	// log of V in the material frame is diag(log 1.2, log 0.9)
	E, err = LogSym(V)
	if err != nil {
		tst.Errorf("log failed: %v\n", err)
		return
	}
	Em := Rotate(E, R, Identity(2), ToMaterial)
	chk.Deep2(tst, "Em", 1e-14, rows(Em), [][]float64{{math.Log(1.2), 0}, {0, math.Log(0.9)}})
}

func Test_stress01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stress01")

	σ := ToTensor([]float64{3, 6, 9, 1, 2, 4}, false)
	chk.Float64(tst, "p", 1e-15, Hydrostatic(σ), 6)
	s := Deviatoric(σ)
	chk.Float64(tst, "tr(s)", 1e-15, mat.Trace(s), 0)
	chk.Deep2(tst, "s", 1e-15, rows(s), [][]float64{{-3, 1, 2}, {1, 0, 4}, {2, 4, 3}})

	// P = σ(1+e33) for F = I
	σ2 := ToTensor([]float64{100, 50, 10}, false)
	P := PiolaKirchhoff(σ2, Identity(2), 0.1)
	chk.Deep2(tst, "P", 1e-13, rows(P), [][]float64{{110, 11}, {11, 55}})

	// uniaxial stretch: P11 = J σ11 / λ1
	F := mat.NewDense(2, 2, []float64{1.5, 0, 0, 0.8})
	σ3 := ToTensor([]float64{200, 0, 0}, false)
	P = PiolaKirchhoff(σ3, F, 0)
	chk.Float64(tst, "P11", 1e-12, P.At(0, 0), 1.5*0.8*200/1.5)
	chk.Float64(tst, "A:B", 1e-15, Dot(σ2, Identity(2)), 150)
}
