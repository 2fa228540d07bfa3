// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/govfm/ten"
	"github.com/cpmech/govfm/vfs"
	"gonum.org/v1/gonum/mat"
)

// InternalWork computes the internal virtual work of each field at each increment
//  large -- large deformation: Σ P:∂δu/∂X·V; otherwise Σ σ·δε·V (Voigt, engineering virtual strains)
//  P     -- [nf][ne] first Piola-Kirchhoff stress; used if large
//  ivw   -- [nvfs][nf]
//  Note: the work is multiplied by 2 per symmetry condition
func InternalWork(t *Test, s *Stress, P [][]*mat.Dense, fields []*vfs.Field, large bool) (ivw [][]float64) {
	k := t.Kin
	c := t.SymmetryFactor()
	ivw = make([][]float64, len(fields))
	for v, f := range fields {
		ivw[v] = make([]float64, k.Nf)
		for inc := 0; inc < k.Nf; inc++ {
			var sum float64
			for e := 0; e < k.Ne; e++ {
				E := f.Grad(inc, e)
				if large {
					sum += ten.Dot(P[inc][e], E) * k.Vol[e]
					continue
				}
				δε := ten.SymVoigt(E, true)
				σ := s.Get(inc, e)
				for i, val := range δε {
					sum += σ[i] * val * k.Vol[e]
				}
			}
			ivw[v][inc] = c * sum
		}
	}
	return
}

// ExternalWork computes the external virtual work of each field at each increment
//  evw = 2 Σ_j force_j · δu_j
//  evw -- [nvfs][nf]
func ExternalWork(t *Test, fields []*vfs.Field) (evw [][]float64) {
	evw = make([][]float64, len(fields))
	for v, f := range fields {
		evw[v] = make([]float64, t.Nf())
		for inc := range evw[v] {
			δu := f.Boundary(inc)
			var sum float64
			for j, F := range t.Force[inc] {
				sum += F * δu[j]
			}
			evw[v][inc] = 2 * sum
		}
	}
	return
}
