// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Hardening defines isotropic hardening laws
type Hardening interface {
	component
	Sy(εbar float64) float64 // Sy returns the flow stress for a given equivalent plastic strain
}

// hardAllocators holds all available hardening laws
var hardAllocators = map[int]func() Hardening{}

// add models to factory
func init() {
	hardAllocators[0] = func() Hardening { return new(Perfect) }
	hardAllocators[1] = func() Hardening { return new(Linear) }
	hardAllocators[2] = func() Hardening { return new(Swift) }
	hardAllocators[3] = func() Hardening { return new(Ludwik) }
	hardAllocators[4] = func() Hardening { return new(Voce) }
}

// Perfect implements perfect plasticity: σy = sy0
type Perfect struct{ Sy0 float64 }

func (o *Perfect) Init(p []float64) (err error) { o.Sy0 = p[0]; return }
func (o Perfect) Names() []string               { return []string{"sy0"} }
func (o Perfect) Sy(εbar float64) float64          { return o.Sy0 }

// Linear implements linear hardening: σy = sy0 + h·ε̄
type Linear struct{ Sy0, H float64 }

func (o *Linear) Init(p []float64) (err error) { o.Sy0, o.H = p[0], p[1]; return }
func (o Linear) Names() []string               { return []string{"sy0", "h"} }
func (o Linear) Sy(εbar float64) float64          { return o.Sy0 + o.H*εbar }

// Swift implements Swift's law: σy = c·(e0 + ε̄)ⁿ
type Swift struct{ C, E0, N float64 }

// Init initialises model
func (o *Swift) Init(p []float64) (err error) {
	o.C, o.E0, o.N = p[0], p[1], p[2]
	if o.E0 <= 0 && o.N <= 0 {
		return chk.Err("Swift: e0 and n cannot be both non-positive. e0=%v n=%v", o.E0, o.N)
	}
	return
}
func (o Swift) Names() []string      { return []string{"c", "e0", "n"} }
func (o Swift) Sy(εbar float64) float64 { return o.C * math.Pow(o.E0+εbar, o.N) }

// Ludwik implements Ludwik's law: σy = sy0 + c·ε̄ⁿ
type Ludwik struct{ Sy0, C, N float64 }

func (o *Ludwik) Init(p []float64) (err error) { o.Sy0, o.C, o.N = p[0], p[1], p[2]; return }
func (o Ludwik) Names() []string               { return []string{"sy0", "c", "n"} }
func (o Ludwik) Sy(εbar float64) float64          { return o.Sy0 + o.C*math.Pow(εbar, o.N) }

// Voce implements Voce's law: σy = sy0 + q·(1 - exp(-b·ε̄))
type Voce struct{ Sy0, Q, B float64 }

func (o *Voce) Init(p []float64) (err error) { o.Sy0, o.Q, o.B = p[0], p[1], p[2]; return }
func (o Voce) Names() []string               { return []string{"sy0", "q", "b"} }
func (o Voce) Sy(εbar float64) float64          { return o.Sy0 + o.Q*(1.0-math.Exp(-o.B*εbar)) }
