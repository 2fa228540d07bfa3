// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// normalisation kinds
const (
	ByReference = iota // x / x0
	ByBounds           // (x - lo) / (hi - lo)
)

// Normalizer maps free variables to dimensionless values and back
type Normalizer struct {
	Kind int       // ByReference or ByBounds
	Ref  []float64 // reference (initial) values
	Lo   []float64 // lower bounds; NaN if undefined
	Hi   []float64 // upper bounds; NaN if undefined
}

// NewNormalizer returns a new normalizer
//  ref    -- reference values; used by ByReference
//  bounds -- [n][2] lower and upper bounds; NaN if undefined; must be finite with ByBounds
func NewNormalizer(kind int, ref []float64, bounds [][2]float64) (o *Normalizer, err error) {
	o = &Normalizer{Kind: kind, Ref: append([]float64{}, ref...)}
	o.Lo = make([]float64, len(ref))
	o.Hi = make([]float64, len(ref))
	for i := range ref {
		o.Lo[i], o.Hi[i] = math.NaN(), math.NaN()
		if i < len(bounds) {
			o.Lo[i], o.Hi[i] = bounds[i][0], bounds[i][1]
		}
		switch kind {
		case ByReference:
			if ref[i] == 0 || math.IsNaN(ref[i]) || math.IsInf(ref[i], 0) {
				return nil, chk.Err("cannot normalise variable %d by its reference value %v", i, ref[i])
			}
		case ByBounds:
			if !finite(o.Lo[i]) || !finite(o.Hi[i]) {
				return nil, fmt.Errorf("variable %d: %w", i, ErrUndefinedBounds)
			}
			if !(o.Hi[i] > o.Lo[i]) {
				return nil, chk.Err("variable %d: lower bound %v must be smaller than upper bound %v", i, o.Lo[i], o.Hi[i])
			}
		default:
			return nil, chk.Err("normalisation kind %d is invalid", kind)
		}
	}
	return
}

// Normalize converts physical values x into normalised values xn
func (o *Normalizer) Normalize(xn, x []float64) {
	for i := range x {
		if o.Kind == ByBounds {
			xn[i] = (x[i] - o.Lo[i]) / (o.Hi[i] - o.Lo[i])
			continue
		}
		xn[i] = x[i] / o.Ref[i]
	}
}

// Denormalize converts normalised values xn into physical values x
func (o *Normalizer) Denormalize(x, xn []float64) {
	for i := range xn {
		if o.Kind == ByBounds {
			x[i] = xn[i]*(o.Hi[i]-o.Lo[i]) + o.Lo[i]
			continue
		}
		x[i] = xn[i] * o.Ref[i]
	}
}

// Bounds returns the normalised bounds of variable i; NaN if undefined
func (o *Normalizer) Bounds(i int) (lo, hi float64) {
	if o.Kind == ByBounds {
		return 0, 1
	}
	lo, hi = o.Lo[i]/o.Ref[i], o.Hi[i]/o.Ref[i]
	if lo > hi {
		lo, hi = hi, lo
	}
	return
}

// Transform implements a C¹ soft clamp of normalised variables onto their bounds, anchored at
// the reference value (xn = 1): the map is the identity with unit slope at y = 1 and decays
// exponentially towards the bounds; undefined bounds leave the corresponding side unbounded
type Transform struct {
	Lo []float64 // normalised lower bounds; NaN if undefined
	Hi []float64 // normalised upper bounds; NaN if undefined
}

// NewTransform returns the soft clamp of the normalised bounds of a normaliser
func NewTransform(nrm *Normalizer) (o *Transform, err error) {
	n := len(nrm.Ref)
	o = &Transform{Lo: make([]float64, n), Hi: make([]float64, n)}
	for i := 0; i < n; i++ {
		o.Lo[i], o.Hi[i] = nrm.Bounds(i)
		if finite(o.Lo[i]) && !(o.Lo[i] < 1) {
			return nil, chk.Err("variable %d: reference value must be above the lower bound", i)
		}
		if finite(o.Hi[i]) && !(o.Hi[i] > 1) {
			return nil, chk.Err("variable %d: reference value must be below the upper bound", i)
		}
	}
	return
}

// Forward maps unconstrained values y onto bounded values xn
func (o *Transform) Forward(xn, y []float64) {
	for i, v := range y {
		lo, hi := o.Lo[i], o.Hi[i]
		switch {
		case v >= 1 && finite(hi):
			xn[i] = hi - (hi-1)*math.Exp(-(v-1)/(hi-1))
		case v < 1 && finite(lo):
			xn[i] = lo + (1-lo)*math.Exp((v-1)/(1-lo))
		default:
			xn[i] = v
		}
	}
}

// Inverse maps bounded values xn onto unconstrained values y
//  Note: values at or beyond the bounds map to ±Inf
func (o *Transform) Inverse(y, xn []float64) {
	for i, v := range xn {
		lo, hi := o.Lo[i], o.Hi[i]
		switch {
		case v >= 1 && finite(hi):
			y[i] = 1 - (hi-1)*math.Log((hi-v)/(hi-1))
		case v < 1 && finite(lo):
			y[i] = 1 + (1-lo)*math.Log((v-lo)/(1-lo))
		default:
			y[i] = v
		}
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
