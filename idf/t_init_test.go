// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/ana"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/vfm"
	"github.com/cpmech/govfm/vfs"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// properties: [debug, isotropic, E, ν, von Mises, hardening...]
var (
	propsElast = []float64{0, 0, 200000, 0.3, 0, 0, 1e9, 0, 0}
	propsLin   = []float64{0, 0, 200000, 0.3, 0, 1, 250, 1000, 0, 0}
)

// uniaxial returns an initialised problem with one synthetic tension test
func uniaxial(tst *testing.T, props []float64, emax float64, free ...int) *vfm.Problem {
	sol := ana.Uniaxial{W: 10, H: 20, Nx: 2, Ny: 4, Emax: emax, Nf: 9, Props: props}
	t, err := sol.Generate(context.Background(), "tension", vfs.UserDefined{Types: []int{1, 2}}, false)
	if err != nil {
		tst.Fatalf("Generate failed: %v\n", err)
	}
	pb := &vfm.Problem{Tests: []*vfm.Test{t}, Free: make([]bool, len(props))}
	for _, i := range free {
		pb.Free[i] = true
	}
	if err = pb.Init(context.Background()); err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	return pb
}

// perturbed returns a copy of props with p[i] multiplied by f
func perturbed(props []float64, i int, f float64) (p []float64) {
	p = append([]float64{}, props...)
	p[i] *= f
	return
}

// failingModel fails at a chosen increment
type failingModel struct {
	msolid.Model
	inc int
}

func (o *failingModel) Update(σ, sv, ε, Δε []float64, eid, inc int) error {
	if inc == o.inc {
		return chk.Err("model failed at increment %d", inc)
	}
	return o.Model.Update(σ, sv, ε, Δε, eid, inc)
}

// failingFactory allocates the built-in model, which fails at increment inc if fails(props) is true
func failingFactory(inc int, fails func(props []float64) bool) msolid.Factory {
	return func(props []float64, ndim int) (msolid.Model, error) {
		mdl, err := msolid.New(props, ndim)
		if err != nil || !fails(props) {
			return mdl, err
		}
		return &failingModel{Model: mdl, inc: inc}, nil
	}
}
