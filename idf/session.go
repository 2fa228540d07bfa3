// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"math"
	"sync"
	"time"
)

// Snapshot holds the state of an identification after one iteration
type Snapshot struct {
	Nit   int       // number of iterations
	Nfev  int       // number of evaluations
	Cost  float64   // best cost
	Costs []float64 // best cost of each test
	X     []float64 // best free variables (physical values)
}

// Session holds the state of one identification run: counters and the best solution found so far.
// It is safe for concurrent use by objective evaluations.
type Session struct {
	mu        sync.Mutex
	start     time.Time
	nit       int
	nfev      int
	bestX     []float64
	bestProps []float64
	bestCost  float64
	bestCosts []float64

	// OnIteration is called after each iteration of the optimizer; may be nil
	OnIteration func(s Snapshot)
}

// NewSession starts a new session
func NewSession() *Session {
	return &Session{start: time.Now(), bestCost: math.Inf(1)}
}

// Record counts one evaluation and records the candidate if its cost strictly improves the best one
//  Note: non-finite costs are never recorded
func (o *Session) Record(x, props []float64, cost float64, costs []float64) (improved bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nfev++
	if math.IsNaN(cost) || math.IsInf(cost, 0) || !(cost < o.bestCost) {
		return false
	}
	o.bestCost = cost
	o.bestX = append(o.bestX[:0], x...)
	o.bestProps = append(o.bestProps[:0], props...)
	o.bestCosts = append(o.bestCosts[:0], costs...)
	return true
}

// Iterate counts one iteration and calls OnIteration
func (o *Session) Iterate() {
	o.mu.Lock()
	o.nit++
	snap := o.snapshot()
	cb := o.OnIteration
	o.mu.Unlock()
	if cb != nil {
		cb(snap)
	}
}

// Best returns a copy of the best solution; ok is false if no finite cost has been recorded
func (o *Session) Best() (x, props []float64, cost float64, costs []float64, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if math.IsInf(o.bestCost, 1) {
		return nil, nil, math.NaN(), nil, false
	}
	return append([]float64{}, o.bestX...), append([]float64{}, o.bestProps...), o.bestCost, append([]float64{}, o.bestCosts...), true
}

// Snapshot returns the current state
func (o *Session) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot()
}

// Elapsed returns the time since the start of the session
func (o *Session) Elapsed() time.Duration {
	return time.Since(o.start)
}

func (o *Session) snapshot() Snapshot {
	return Snapshot{
		Nit:   o.nit,
		Nfev:  o.nfev,
		Cost:  o.bestCost,
		Costs: append([]float64{}, o.bestCosts...),
		X:     append([]float64{}, o.bestX...),
	}
}
