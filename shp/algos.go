// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// invert computes the inverse of a 2x2 or 3x3 matrix with the cofactor formula and returns
// the determinant. A singular matrix yields Inf/NaN entries
func invert(ai, a [][]float64) (det float64) {
	if len(a) == 2 {
		det = a[0][0]*a[1][1] - a[0][1]*a[1][0]
		ai[0][0] = a[1][1] / det
		ai[0][1] = -a[0][1] / det
		ai[1][0] = -a[1][0] / det
		ai[1][1] = a[0][0] / det
		return
	}
	det = a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	ai[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
	ai[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	ai[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	ai[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
	ai[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	ai[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	ai[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
	ai[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	ai[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	return
}

// RealCoords returns the real coordinates of natural point R
//  x[ndim][nverts] -- coordinates matrix of solid element
func (o *Shape) RealCoords(x [][]float64, R []float64) (y []float64) {
	y = make([]float64, o.Gndim)
	o.Func(o.S, o.DSdR, R, false)
	for i := 0; i < o.Gndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// Centroid returns the element centroid as the arithmetic mean of the vertices
//  x[ndim][nverts] -- coordinates matrix of solid element
func Centroid(x [][]float64) (c []float64) {
	c = make([]float64, len(x))
	for i := range x {
		for _, v := range x[i] {
			c[i] += v
		}
		c[i] /= float64(len(x[i]))
	}
	return
}
