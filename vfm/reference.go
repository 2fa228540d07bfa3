// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/msolid"
	"gonum.org/v1/gonum/mat"
)

// ReferenceForce computes the loading force that balances the internal virtual work of a
// user-defined virtual field: force_j = ivw / (2 δu_j), where j is the loading direction.
// The other force components are copied from the test.
//  field -- index of field in t.Fields
//  dir   -- loading direction
func ReferenceForce(ctx context.Context, t *Test, props []float64, field, dir int, large bool, factory msolid.Factory, nworkers int) (force [][]float64, err error) {

	// check
	if field < 0 || field >= len(t.Fields) {
		return nil, chk.Err("test %q: reference force needs a user-defined virtual field. index %d is out of range [0, %d)", t.Name, field, len(t.Fields))
	}
	if dir < 0 || dir >= t.Dof() {
		return nil, chk.Err("test %q: loading direction %d is invalid", t.Name, dir)
	}
	f := t.Fields[field]
	δu := f.Boundary(0)[dir]
	if math.Abs(δu) < 1e-14 {
		return nil, chk.Err("test %q: virtual field %q does not move the loaded boundary along direction %d", t.Name, f.Name, dir)
	}
	if factory == nil {
		factory = msolid.New
	}

	// internal virtual work
	s, err := Reconstruct(ctx, t, props, factory, nworkers)
	if err != nil {
		return
	}
	var P [][]*mat.Dense
	if large {
		P = PiolaKirchhoffField(t.Kin, s)
	}
	ivw := InternalWork(t, s, P, t.Fields[field:field+1], large)[0]

	// force
	force = make([][]float64, t.Nf())
	for inc := range force {
		force[inc] = make([]float64, t.Dof())
		if inc < len(t.Force) {
			copy(force[inc], t.Force[inc])
		}
		force[inc][dir] = ivw[inc] / (2 * δu)
	}
	return
}
