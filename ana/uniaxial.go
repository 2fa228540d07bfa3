// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"context"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/vfm"
	"github.com/cpmech/govfm/vfs"
)

// Uniaxial generates the data of a plane stress tension test along y of a rectangular specimen
// with known material properties
//
//        ↑ F
//    -------
//    |     |
//    |     | h
//    |     |
//    -------
//       w  ↓ F
//
// The deformation is homogeneous: the axial logarithmic strain is prescribed and the lateral
// strain is found by the constitutive driver such that the lateral stress vanishes. The loading
// force is the one balancing the internal virtual work of the uniform vertical virtual field.
type Uniaxial struct {

	// geometry
	W, H      float64 // width and height
	Nx, Ny    int     // number of divisions
	Thickness float64 // thickness

	// loading
	Emax  float64 // maximum axial logarithmic strain
	Nf    int     // number of increments, including the undeformed one
	Dtime float64 // time step

	// material
	Props   []float64      // properties
	Factory msolid.Factory // model; nil means msolid.New
}

// Init sets default values of unset fields
func (o *Uniaxial) Init() {
	if o.W == 0 {
		o.W = 20
	}
	if o.H == 0 {
		o.H = 40
	}
	if o.Nx == 0 {
		o.Nx = 4
	}
	if o.Ny == 0 {
		o.Ny = 8
	}
	if o.Thickness == 0 {
		o.Thickness = 1
	}
	if o.Emax == 0 {
		o.Emax = 0.02
	}
	if o.Nf == 0 {
		o.Nf = 11
	}
	if o.Dtime == 0 {
		o.Dtime = 1
	}
	if o.Factory == nil {
		o.Factory = msolid.New
	}
}

// Strains computes the homogeneous strain path with the constitutive driver
//  eps -- [nf][3] logarithmic strains (engineering Voigt; material frame = global frame)
func (o *Uniaxial) Strains() (eps [][]float64, err error) {
	mdl, err := o.Factory(o.Props, 2)
	if err != nil {
		return
	}
	var drv msolid.Driver
	if err = drv.Init(mdl, 3); err != nil {
		return
	}
	drv.Silent = true
	path := make([][]float64, o.Nf)
	for i := range path {
		path[i] = []float64{0, o.Emax * float64(i) / float64(o.Nf-1), 0}
	}
	if err = drv.Run(path, []int{0}); err != nil {
		return
	}
	return drv.Eps, nil
}

// Generate generates the test
//  strategy -- virtual fields of the generated test
//  large    -- large deformation framework used to compute the reference force
func (o *Uniaxial) Generate(ctx context.Context, name string, strategy vfs.Strategy, large bool) (t *vfm.Test, err error) {

	// check
	o.Init()
	if o.Nf < 2 {
		return nil, chk.Err("uniaxial test needs at least two increments. nf = %d", o.Nf)
	}

	// strains and displacements
	eps, err := o.Strains()
	if err != nil {
		return
	}
	F := make([][][]float64, o.Nf)
	for i, ε := range eps {
		F[i] = [][]float64{{math.Exp(ε[0]), 0}, {0, math.Exp(ε[1])}}
	}
	X, conn := Rectangle(o.W, o.H, o.Nx, o.Ny)
	t = &vfm.Test{
		Name:      name,
		X:         X,
		Conn:      conn,
		U:         Stretch(X, F),
		Time:      make([]float64, o.Nf),
		Force:     make([][]float64, o.Nf),
		Thickness: o.Thickness,
		Strategy:  vfs.UserDefined{Types: []int{1}},
	}
	for i := range t.Time {
		t.Time[i] = o.Dtime * float64(i)
		t.Force[i] = make([]float64, 2)
	}

	// reference force
	if err = t.Init(ctx, large, 0); err != nil {
		return
	}
	t.Force, err = vfm.ReferenceForce(ctx, t, o.Props, 0, 1, large, o.Factory, 0)
	if err != nil {
		return
	}

	// virtual fields
	t.Strategy = strategy
	t.Fields, t.Bcs, t.Op = nil, nil, nil
	return
}
