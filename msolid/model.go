// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements the constitutive integrators used to reconstruct stresses
package msolid

import (
	"github.com/cpmech/gosl/chk"
)

// Model defines the constitutive integrator consumed by the stress reconstruction.
// Implementations must be safe for concurrent use: all history lives in σ and sv.
type Model interface {
	Nstatev() int     // number of state variables
	Poisson() float64 // Poisson's coefficient used by the thickness strain of plane stress problems

	// Update updates stresses and state variables for given total strain and strain increment
	//  σ  -- [ntens] stress; previous on input, new on output (corotational material frame)
	//  sv -- [nstatev] state variables; previous on input, new on output
	//  ε  -- [ntens] total strain at the end of the increment (engineering Voigt)
	//  Δε -- [ntens] strain increment (engineering Voigt)
	Update(σ, sv, ε, Δε []float64, eid, inc int) (err error)
}

// Factory allocates a model from a property vector
//  ndim -- space dimension; 2 means plane stress
type Factory func(props []float64, ndim int) (Model, error)

// New allocates the built-in elasto-plastic model from a property vector laid out as
//
//  [debug, elastic id, elastic params..., yield id, yield params...,
//   hardening id, hardening params..., kinematic id, rupture id]
//
// See the allocators registered in elasticity.go, yield.go and hardening.go for the ids.
func New(props []float64, ndim int) (Model, error) {
	mdl, err := parse(props)
	if err != nil {
		return nil, err
	}
	err = mdl.Init(ndim)
	if err != nil {
		return nil, err
	}
	return mdl, nil
}

// Names returns the names of the entries of a property vector; e.g. for reports
func Names(props []float64) (names []string, err error) {
	mdl, err := parse(props)
	if err != nil {
		return
	}
	names = append(names, "debug", "elastic")
	names = append(names, mdl.Elast.Names()...)
	names = append(names, "yield")
	names = append(names, mdl.Yield.Names()...)
	names = append(names, "hardening")
	names = append(names, mdl.Hard.Names()...)
	names = append(names, "kinematic", "rupture")
	return
}

// component is a parametrised part of a model (elasticity, yield function, hardening law)
type component interface {
	Init(p []float64) (err error) // Init reads the parameters; len(p) == len(Names())
	Names() []string              // Names returns the names of the parameters
}

// parse splits a property vector into model components
func parse(props []float64) (mdl *ElastoPlastic, err error) {
	mdl = new(ElastoPlastic)
	k := 1 // skip debug flag
	next := func(what string) (id int, err error) {
		if k >= len(props) {
			return 0, chk.Err("property vector is too short: %s id is missing at position %d", what, k)
		}
		id = int(props[k])
		if float64(id) != props[k] {
			return 0, chk.Err("%s id must be an integer. %v is invalid", what, props[k])
		}
		k++
		return
	}
	read := func(what string, c component) (err error) {
		n := len(c.Names())
		if k+n > len(props) {
			return chk.Err("property vector is too short: %s needs %d parameters %v", what, n, c.Names())
		}
		err = c.Init(props[k : k+n])
		k += n
		return
	}

	// elasticity
	id, err := next("elastic")
	if err != nil {
		return
	}
	alloc, ok := elastAllocators[id]
	if !ok {
		return nil, chk.Err("elastic id %d is not available", id)
	}
	mdl.Elast = alloc()
	if err = read("elasticity", mdl.Elast); err != nil {
		return
	}

	// yield function
	if id, err = next("yield"); err != nil {
		return
	}
	yalloc, ok := yieldAllocators[id]
	if !ok {
		return nil, chk.Err("yield id %d is not available", id)
	}
	mdl.Yield = yalloc()
	if err = read("yield function", mdl.Yield); err != nil {
		return
	}

	// isotropic hardening
	if id, err = next("hardening"); err != nil {
		return
	}
	halloc, ok := hardAllocators[id]
	if !ok {
		return nil, chk.Err("hardening id %d is not available", id)
	}
	mdl.Hard = halloc()
	if err = read("hardening law", mdl.Hard); err != nil {
		return
	}

	// kinematic hardening and rupture: only "none" is available
	if id, err = next("kinematic"); err != nil {
		return
	}
	if id != 0 {
		return nil, chk.Err("kinematic hardening id %d is not available", id)
	}
	if id, err = next("rupture"); err != nil {
		return
	}
	if id != 0 {
		return nil, chk.Err("rupture id %d is not available", id)
	}
	if k != len(props) {
		return nil, chk.Err("property vector has %d unused trailing entries", len(props)-k)
	}
	mdl.Debug = props[0] != 0
	return
}
