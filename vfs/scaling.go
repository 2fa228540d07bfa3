// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Scaling computes the scaling factor of a virtual field from its internal virtual work series
//  α = 1 / mean of the ⌊nf·scale⌋ largest |ivw| (at least one value)
//  Note: a zero mean is replaced by 1
func Scaling(ivw []float64, scale float64) float64 {
	a := make([]float64, len(ivw))
	for i, v := range ivw {
		a[i] = math.Abs(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(a)))
	n := int(math.Floor(float64(len(a)) * scale))
	if n < 1 {
		n = 1
	}
	if n > len(a) {
		n = len(a)
	}
	mean := stat.Mean(a[:n], nil)
	if mean == 0 {
		mean = 1
	}
	return 1.0 / mean
}
