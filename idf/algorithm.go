// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

// Algorithm selects the optimizer of the identification
//  Note: the set of algorithms is closed: LevenbergMarquardt, DifferentialEvolution or NelderMead
type Algorithm interface {
	algorithm()
	defaults()
}

// LevenbergMarquardt implements a damped least-squares method on the residual vector with a
// forward finite-difference Jacobian. Variables are normalised by their reference values.
type LevenbergMarquardt struct {
	Ftol      float64 // relative reduction of cost
	Xtol      float64 // relative step
	Gtol      float64 // max norm of gradient
	MaxFev    int     // max number of evaluations
	DiffStep  float64 // finite-difference step (normalised variables)
	Transform bool    // soft clamp of bounded variables
}

// DifferentialEvolution implements the best/1/bin strategy with dithering on the scalar cost.
// All variables need finite bounds; they are normalised by the bounds.
type DifferentialEvolution struct {
	PopSize       int        // population = PopSize × number of variables
	MaxIter       int        // max number of generations
	Tol           float64    // relative tolerance on the spread of population costs
	Atol          float64    // absolute tolerance on the spread of population costs
	Mutation      [2]float64 // dithering interval of the differential weight
	Recombination float64    // crossover probability
	Seed          uint64     // random seed
	Workers       int        // number of concurrent evaluations; ≤ 0 means GOMAXPROCS
}

// NelderMead implements the simplex method on the scalar cost. Variables are normalised by their
// reference values and clipped to the bounds (where defined).
type NelderMead struct {
	MaxIter  int     // max number of iterations
	MaxFev   int     // max number of evaluations
	Xatol    float64 // absolute tolerance on the best vertex (normalised variables)
	Fatol    float64 // absolute tolerance on the cost
	Adaptive bool    // dimension-dependent coefficients; otherwise standard coefficients
	Restarts int     // number of restarts from the best vertex
}

func (*LevenbergMarquardt) algorithm()    {}
func (*DifferentialEvolution) algorithm() {}
func (*NelderMead) algorithm()            {}

func (o *LevenbergMarquardt) defaults() {
	if o.Ftol == 0 {
		o.Ftol = 1e-8
	}
	if o.Xtol == 0 {
		o.Xtol = 1e-8
	}
	if o.Gtol == 0 {
		o.Gtol = 1e-8
	}
	if o.MaxFev == 0 {
		o.MaxFev = 1000
	}
	if o.DiffStep == 0 {
		o.DiffStep = 1e-7
	}
}

func (o *DifferentialEvolution) defaults() {
	if o.PopSize == 0 {
		o.PopSize = 15
	}
	if o.MaxIter == 0 {
		o.MaxIter = 1000
	}
	if o.Tol == 0 {
		o.Tol = 0.01
	}
	if o.Mutation == [2]float64{} {
		o.Mutation = [2]float64{0.5, 1}
	}
	if o.Recombination == 0 {
		o.Recombination = 0.7
	}
}

func (o *NelderMead) defaults() {
	if o.MaxIter == 0 {
		o.MaxIter = 2000
	}
	if o.MaxFev == 0 {
		o.MaxFev = 4000
	}
	if o.Xatol == 0 {
		o.Xatol = 1e-6
	}
	if o.Fatol == 0 {
		o.Fatol = 1e-10
	}
}
