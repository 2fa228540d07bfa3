// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// State holds all continuum mechanics data of a material point
type State struct {

	// essential
	Sig []float64 // σ: current Cauchy stress tensor; corotational material frame [ntens]

	// for plasticity
	Eqps    float64   // ε̄p: equivalent plastic strain
	EpsP    []float64 // εp: plastic strain; engineering Voigt [ntens]
	Dgam    float64   // Δλ: increment of plastic multiplier of the last update
	Loading bool      // loading flag of the last update
}

// NewState allocates state structure
func NewState(ntens int) *State {
	var state State
	state.Sig = make([]float64, ntens)
	state.EpsP = make([]float64, ntens)
	return &state
}

// Nstatev returns the number of entries of the flat state variables vector: [ε̄p, εp...]
func (o *State) Nstatev() int {
	return 1 + len(o.EpsP)
}

// Load copies stresses and flat state variables into this state
func (o *State) Load(σ, sv []float64) {
	copy(o.Sig, σ)
	o.Eqps = sv[0]
	copy(o.EpsP, sv[1:])
	o.Dgam = 0
	o.Loading = false
}

// Store copies this state into stresses and flat state variables
func (o *State) Store(σ, sv []float64) {
	copy(σ, o.Sig)
	sv[0] = o.Eqps
	copy(sv[1:], o.EpsP)
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	o.Eqps = other.Eqps
	copy(o.EpsP, other.EpsP)
	o.Dgam = other.Dgam
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig))
	other.Set(o)
	return other
}
