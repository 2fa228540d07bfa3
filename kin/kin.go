// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kin implements the recovery of deformation and strain fields from nodal displacements
package kin

import (
	"context"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/shp"
	"github.com/cpmech/govfm/ten"
	"gonum.org/v1/gonum/mat"
)

// Kinematics holds the deformation data of one test
type Kinematics struct {

	// dimensions
	Nf    int // number of increments
	Ne    int // number of elements
	Dof   int // space dimension
	Ntens int // number of Voigt components

	// element data
	Vol       []float64     // [ne] reference volumes
	Centroids [][]float64   // [ne][dof] reference centroids
	G         [][][]float64 // [ne][npe][dof] cartesian derivatives of shape functions @ centre

	// increment data
	F      [][]*mat.Dense // [nf][ne] deformation gradient
	Rot    [][]*mat.Dense // [nf][ne] rigid body rotation
	Strain [][][]float64  // [nf][ne][ntens] logarithmic strain; corotational material frame; engineering Voigt
}

// Compute computes the kinematics of all elements at all increments
//  X         -- [nn][dof] reference coordinates
//  conn      -- [ne][npe] connectivity
//  U         -- [nf][nn][dof] nodal displacements
//  rotm      -- material rotation
//  thickness -- thickness of 2D specimens
//  nworkers  -- number of goroutines; ≤ 0 means GOMAXPROCS
//  Note: elements with non-finite deformation gradients get NaN strains and rotations
func Compute(ctx context.Context, X [][]float64, conn [][]int, U [][][]float64, rotm *mat.Dense, thickness float64, nworkers int) (o *Kinematics, err error) {

	// check
	if len(X) == 0 || len(conn) == 0 || len(U) == 0 {
		return nil, chk.Err("cannot compute kinematics of an empty test: nn=%d ne=%d nf=%d", len(X), len(conn), len(U))
	}
	dof := len(X[0])
	npe := len(conn[0])
	if shp.GetByNverts(npe, 0) == nil {
		return nil, chk.Err("cannot find reduced-integration element with %d vertices", npe)
	}
	if shp.GetByNverts(npe, 0).Gndim != dof {
		return nil, chk.Err("element with %d vertices is incompatible with dof = %d", npe, dof)
	}

	// allocate
	o = new(Kinematics)
	o.Nf, o.Ne, o.Dof, o.Ntens = len(U), len(conn), dof, ten.Ntens(dof)
	o.Vol = make([]float64, o.Ne)
	o.Centroids = make([][]float64, o.Ne)
	o.G = make([][][]float64, o.Ne)
	o.F = make([][]*mat.Dense, o.Nf)
	o.Rot = make([][]*mat.Dense, o.Nf)
	o.Strain = make([][][]float64, o.Nf)
	for i := 0; i < o.Nf; i++ {
		o.F[i] = make([]*mat.Dense, o.Ne)
		o.Rot[i] = make([]*mat.Dense, o.Ne)
		o.Strain[i] = make([][]float64, o.Ne)
	}

	// element loop
	err = ForEachElement(ctx, o.Ne, nworkers, func(wid int) func(e int) error {
		shape := shp.GetByNverts(npe, wid+1)
		x := make([][]float64, dof)
		for i := range x {
			x[i] = make([]float64, npe)
		}
		return func(e int) error {
			for m, n := range conn[e] {
				for i := 0; i < dof; i++ {
					x[i][m] = X[n][i]
				}
			}
			shape.CalcAtCentre(x)
			o.Vol[e] = shape.Volume(thickness)
			o.Centroids[e] = shp.Centroid(x)
			o.G[e] = make([][]float64, npe)
			for m := 0; m < npe; m++ {
				o.G[e][m] = append([]float64{}, shape.G[m]...)
			}
			for inc := 0; inc < o.Nf; inc++ {
				F := DefGrad(U[inc], conn[e], o.G[e])
				o.F[inc][e] = F
				o.Rot[inc][e], o.Strain[inc][e] = logStrain(F, rotm)
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return
}

// DefGrad computes the deformation gradient F = I + ∂u/∂X of one element
//  u    -- [nn][dof] nodal displacements of the increment
//  verts -- element vertices
//  G    -- [npe][dof] cartesian derivatives of shape functions
func DefGrad(u [][]float64, verts []int, G [][]float64) (F *mat.Dense) {
	dof := len(G[0])
	F = ten.Identity(dof)
	for i := 0; i < dof; i++ {
		for j := 0; j < dof; j++ {
			var dudx float64
			for m, n := range verts {
				dudx += u[n][i] * G[m][j]
			}
			F.Set(i, j, F.At(i, j)+dudx)
		}
	}
	return
}

// logStrain computes the rigid rotation and the logarithmic strain in the corotational material frame
func logStrain(F, rotm *mat.Dense) (R *mat.Dense, ε []float64) {
	dof, _ := F.Dims()
	if !finite(F) {
		return nanMatrix(dof), nanVector(ten.Ntens(dof))
	}
	R, V, err := ten.Polar(F)
	if err != nil {
		return nanMatrix(dof), nanVector(ten.Ntens(dof))
	}
	E, err := ten.LogSym(V)
	if err != nil {
		return R, nanVector(ten.Ntens(dof))
	}
	ε = ten.ToVoigt(ten.Rotate(E, R, rotm, ten.ToMaterial), true)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////

func finite(A mat.Matrix) bool {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(A.At(i, j)) || math.IsInf(A.At(i, j), 0) {
				return false
			}
		}
	}
	return true
}

func nanMatrix(dof int) *mat.Dense {
	A := mat.NewDense(dof, dof, nil)
	for i := 0; i < dof; i++ {
		for j := 0; j < dof; j++ {
			A.Set(i, j, math.NaN())
		}
	}
	return A
}

func nanVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}
