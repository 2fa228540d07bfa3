// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/ten"
	"gonum.org/v1/gonum/mat"
)

// RCOND is the relative cutoff of small singular values in the pseudo-inverse
const RCOND = 1e-15

// Operator holds the global strain-displacement operator of a mesh and the pseudo-inverse of its
// reduced form (fixed columns deleted)
//  Rows are ordered by component then element: row = k·ne + e, with components in
//  engineering Voigt order (small strains) or displacement gradient order (large strains)
type Operator struct {
	Ne    int        // number of elements
	Nn    int        // number of nodes
	Dof   int        // number of dofs per node
	Ncomp int        // number of components per element
	Large bool       // large deformation: displacement gradient components
	Bg    *mat.Dense // [ne·ncomp][nn·dof] global operator
	Pinv  *mat.Dense // [nactive][ne·ncomp] pseudo-inverse of the reduced operator
	bcs   *BCs
}

// NewOperator assembles the strain-displacement operator
//  conn -- [ne][npe] connectivity
//  G    -- [ne][npe][dof] cartesian derivatives of shape functions
func NewOperator(conn [][]int, G [][][]float64, bcs *BCs, large bool) (o *Operator, err error) {

	// basic data
	o = &Operator{Ne: len(conn), Nn: bcs.Nn, Dof: bcs.Dof, Large: large, bcs: bcs}
	var pairs [][2]int
	if large {
		pairs = ten.GradOrder[o.Dof]
	} else {
		pairs = ten.VoigtPairs(o.Dof)
	}
	o.Ncomp = len(pairs)

	// assemble
	o.Bg = mat.NewDense(o.Ne*o.Ncomp, o.Nn*o.Dof, nil)
	for e, verts := range conn {
		for k, ij := range pairs {
			i, j := ij[0], ij[1]
			r := k*o.Ne + e
			for m, n := range verts {
				if large {
					o.Bg.Set(r, n*o.Dof+i, G[e][m][j])
					continue
				}
				o.Bg.Set(r, n*o.Dof+i, G[e][m][j])
				if i != j {
					o.Bg.Set(r, n*o.Dof+j, G[e][m][i])
				}
			}
		}
	}

	// reduced operator
	nrow := o.Ne * o.Ncomp
	Bred := mat.NewDense(nrow, len(bcs.Active), nil)
	for c, d := range bcs.Active {
		for r := 0; r < nrow; r++ {
			Bred.Set(r, c, o.Bg.At(r, d))
		}
	}
	o.Pinv, err = Pinv(Bred, RCOND)
	return
}

// Field computes a virtual field from flattened stress sensitivities
//  iss -- [nf][ne·ncomp] sensitivities ordered as the rows of the operator
func (o *Operator) Field(name string, iss [][]float64) (f *Field) {
	nf := len(iss)
	f = &Field{
		Name: name,
		E:    make([][]*mat.Dense, nf),
		U:    make([][]float64, nf),
		Un:   make([][][]float64, nf),
	}
	ndof := o.Nn * o.Dof
	for inc := 0; inc < nf; inc++ {

		// virtual displacements: active dofs, then constant edges
		var va mat.VecDense
		va.MulVec(o.Pinv, mat.NewVecDense(len(iss[inc]), iss[inc]))
		vu := make([]float64, ndof)
		for c, d := range o.bcs.Active {
			vu[d] = va.AtVec(c)
		}
		for d := 0; d < ndof; d++ {
			if r := o.bcs.Rep(d); r != d {
				vu[d] = vu[r]
			}
		}

		// virtual strains
		var ve mat.VecDense
		ve.MulVec(o.Bg, mat.NewVecDense(ndof, vu))
		f.E[inc] = make([]*mat.Dense, o.Ne)
		comps := make([]float64, o.Ncomp)
		for e := 0; e < o.Ne; e++ {
			for k := 0; k < o.Ncomp; k++ {
				comps[k] = ve.AtVec(k*o.Ne + e)
			}
			if o.Large {
				f.E[inc][e] = ten.Unflatten(comps)
			} else {
				f.E[inc][e] = ten.ToTensor(comps, true)
			}
		}

		// boundary and nodal virtual displacements
		f.U[inc] = make([]float64, o.Dof)
		for j := 0; j < o.Dof; j++ {
			for _, r := range o.bcs.ConstantReps(j) {
				f.U[inc][j] += vu[r]
			}
		}
		f.Un[inc] = make([][]float64, o.Nn)
		for n := 0; n < o.Nn; n++ {
			f.Un[inc][n] = vu[n*o.Dof : (n+1)*o.Dof]
		}
	}
	return
}

// Pinv computes the Moore-Penrose pseudo-inverse via singular value decomposition
//  singular values below rcond·σmax are discarded, giving the minimum-norm solution
func Pinv(A mat.Matrix, rcond float64) (P *mat.Dense, err error) {
	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDThin) {
		return nil, chk.Err("singular value decomposition failed")
	}
	σ := svd.Values(nil)
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	cutoff := 0.0
	if len(σ) > 0 {
		cutoff = rcond * σ[0]
	}
	n, k := V.Dims()
	for j := 0; j < k; j++ {
		s := 0.0
		if σ[j] > cutoff {
			s = 1.0 / σ[j]
		}
		for i := 0; i < n; i++ {
			V.Set(i, j, V.At(i, j)*s)
		}
	}
	P = new(mat.Dense)
	P.Mul(&V, U.T())
	return
}
