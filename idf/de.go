// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// differentialEvolution minimises the cost over the box defined by the bounds
//  The population lives in the unit hypercube (variables normalised by the bounds).
//  Trial vectors of one generation are generated first and then evaluated concurrently, so the
//  outcome depends only on the seed.
func (o *Identifier) differentialEvolution(ctx context.Context, obj *objective, alg *DifferentialEvolution, bounds [][2]float64) (msg string, success bool, err error) {

	// normalisation
	n := len(bounds)
	mid := make([]float64, n)
	for i, b := range bounds {
		mid[i] = (b[0] + b[1]) / 2
	}
	nrm, err := NewNormalizer(ByBounds, mid, bounds)
	if err != nil {
		return
	}
	rnd := rand.New(rand.NewPCG(alg.Seed, alg.Seed^0x9e3779b97f4a7c15))
	workers := alg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// evaluates a population
	evaluate := func(pop [][]float64) (costs []float64, err error) {
		costs = make([]float64, len(pop))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, w := range pop {
			g.Go(func() error {
				x := make([]float64, n)
				nrm.Denormalize(x, w)
				costs[i] = obj.cost(gctx, x)
				return obj.error()
			})
		}
		err = g.Wait()
		return
	}

	// initial population: latin hypercube
	np := max(alg.PopSize*n, 5)
	pop := make([][]float64, np)
	for i := range pop {
		pop[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		perm := rnd.Perm(np)
		for i := range pop {
			pop[i][j] = (float64(perm[i]) + rnd.Float64()) / float64(np)
		}
	}
	costs, err := evaluate(pop)
	if err != nil {
		return
	}
	best := floats.MinIdx(costs)
	o.Session.Iterate()

	// generations
	trials := make([][]float64, np)
	for i := range trials {
		trials[i] = make([]float64, n)
	}
	for it := 0; it < alg.MaxIter; it++ {

		// mutation and crossover
		F := alg.Mutation[0] + rnd.Float64()*(alg.Mutation[1]-alg.Mutation[0])
		for i := range pop {
			r1, r2 := pick2(rnd, np, i, best)
			jrand := rnd.IntN(n)
			for j := 0; j < n; j++ {
				trials[i][j] = pop[i][j]
				if j == jrand || rnd.Float64() < alg.Recombination {
					trials[i][j] = pop[best][j] + F*(pop[r1][j]-pop[r2][j])
				}
				if trials[i][j] < 0 || trials[i][j] > 1 {
					trials[i][j] = rnd.Float64()
				}
			}
		}

		// selection
		tcosts, err := evaluate(trials)
		if err != nil {
			return "", false, err
		}
		for i := range pop {
			if tcosts[i] <= costs[i] {
				copy(pop[i], trials[i])
				costs[i] = tcosts[i]
			}
		}
		best = floats.MinIdx(costs)
		o.Session.Iterate()

		// convergence
		if converged(costs, alg.Tol, alg.Atol) {
			return "population converged", true, nil
		}
	}
	return "maximum number of generations reached", false, nil
}

// pick2 picks two distinct random indices different from i and best
func pick2(rnd *rand.Rand, np, i, best int) (r1, r2 int) {
	for {
		r1 = rnd.IntN(np)
		if r1 != i && r1 != best {
			break
		}
	}
	for {
		r2 = rnd.IntN(np)
		if r2 != i && r2 != best && r2 != r1 {
			break
		}
	}
	return
}

// converged checks the spread of population costs: std ≤ atol + tol·|mean|
func converged(costs []float64, tol, atol float64) bool {
	for _, c := range costs {
		if !finite(c) {
			return false
		}
	}
	mean, std := stat.MeanStdDev(costs, nil)
	return std <= atol+tol*math.Abs(mean)
}
