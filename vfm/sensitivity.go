// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/ten"
	"github.com/cpmech/govfm/vfs"
	"gonum.org/v1/gonum/mat"
)

// Sensitivity holds the stress sensitivity of one free property
type Sensitivity struct {
	Index int         // index of property
	Total [][]float64 // [nf][ne·ncomp] total sensitivity; component-major
	Incr  [][]float64 // [nf][ne·ncomp] incremental sensitivity (rate); zero at increment 0
}

// StressSensitivity computes the stress sensitivities w.r.t. one property
//  The property is perturbed as p - dx·p and the sensitivity is reference - perturbed,
//  with Cauchy stresses (small deformation) or first Piola-Kirchhoff stresses (large deformation).
//  ref and Pref are the reference stresses; Pref is only used if large
func StressSensitivity(ctx context.Context, t *Test, props []float64, index int, dx float64, ref *Stress, Pref [][]*mat.Dense, large bool, factory msolid.Factory, nworkers int) (o *Sensitivity, err error) {

	// perturbed stresses
	dprops := append([]float64{}, props...)
	dprops[index] = props[index] - dx*props[index]
	s, err := Reconstruct(ctx, t, dprops, factory, nworkers)
	if err != nil {
		return
	}
	var P [][]*mat.Dense
	if large {
		P = PiolaKirchhoffField(t.Kin, s)
	}

	// sensitivities
	k := t.Kin
	ncomp := k.Ntens
	if large {
		ncomp = k.Dof * k.Dof
	}
	o = &Sensitivity{Index: index, Total: make([][]float64, k.Nf), Incr: make([][]float64, k.Nf)}
	for inc := 0; inc < k.Nf; inc++ {
		o.Total[inc] = make([]float64, k.Ne*ncomp)
		o.Incr[inc] = make([]float64, k.Ne*ncomp)
		for e := 0; e < k.Ne; e++ {
			var a, b []float64
			if large {
				a, b = ten.Flatten(Pref[inc][e]), ten.Flatten(P[inc][e])
			} else {
				a, b = ref.Get(inc, e), s.Get(inc, e)
			}
			for c := 0; c < ncomp; c++ {
				o.Total[inc][c*k.Ne+e] = a[c] - b[c]
			}
		}
		if inc == 0 {
			continue
		}
		dt := t.Time[inc] - t.Time[inc-1]
		for i := range o.Incr[inc] {
			o.Incr[inc][i] = (o.Total[inc][i] - o.Total[inc-1][i]) / dt
		}
	}
	return
}

// SensitivityFields computes one sensitivity-based virtual field per free property
//  names -- names of properties; used to name the fields; may be nil
func SensitivityFields(ctx context.Context, t *Test, props []float64, free []bool, names []string, ref *Stress, Pref [][]*mat.Dense, large bool, factory msolid.Factory, nworkers int) (fields []*vfs.Field, sens []*Sensitivity, err error) {
	s, ok := t.Strategy.(vfs.SensitivityBased)
	if !ok || t.Op == nil {
		return nil, nil, chk.Err("test %q is not set with sensitivity-based virtual fields", t.Name)
	}
	for i, isfree := range free {
		if !isfree {
			continue
		}
		sn, err := StressSensitivity(ctx, t, props, i, s.Dx, ref, Pref, large, factory, nworkers)
		if err != nil {
			return nil, nil, err
		}
		sens = append(sens, sn)
		fields = append(fields, t.Op.Field(fieldName(names, i), sn.Incr))
	}
	if len(fields) == 0 {
		return nil, nil, chk.Err("test %q: sensitivity-based virtual fields need at least one free property", t.Name)
	}
	return
}

func fieldName(names []string, index int) string {
	if index < len(names) && names[index] != "" {
		return "sb:" + names[index]
	}
	return io.Sf("sb:%d", index)
}
