// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for reduced-integration elements
package shp

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4r"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; e.g. "hex8r" => gnd == 3
	Nverts    int         // number of vertices in cell; e.g. "qua4r" => 4
	VtkCode   int         // VTK code
	NatVol    float64     // volume of the natural cell; e.g. 4 for qua4r
	NatCoords [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {

	// new structure
	var p Shape

	// geometry
	p.Type = o.Type
	p.Func = o.Func
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.NatVol = o.NatVol
	p.NatCoords = utl.Alloc(o.Gndim, o.Nverts)
	for i := range o.NatCoords {
		copy(p.NatCoords[i], o.NatCoords[i])
	}

	// scratchpad: volume
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// GetByNverts returns the reduced-integration shape with the given number of vertices
//  Note: returns nil if there is no such shape
func GetByNverts(nverts, goroutineId int) *Shape {
	for name, s := range factory {
		if s.Nverts == nverts {
			return Get(name, goroutineId)
		}
	}
	return nil
}

// CalcAtCentre calculates volume data such as S and G at the element centre (r = 0),
// which is the only integration point of reduced-integration elements
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
//  Note: no check is made on J; degenerate elements give Inf/NaN derivatives
func (o *Shape) CalcAtCentre(x [][]float64) {
	o.CalcAtR(x, []float64{0, 0, 0})
}

// CalcAtR calculates volume data such as S and G at natural coordinate R
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   R[3]            -- local/natural coordinates
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtR(x [][]float64, R []float64) {

	// S and dSdR
	o.Func(o.S, o.DSdR, R, true)

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J = invert(o.DRdx, o.DxdR)

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0.0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
}

// Volume returns the volume of the element computed with one integration point
//  Note: must be called after CalcAtCentre. thickness is used by 2D shapes only
func (o *Shape) Volume(thickness float64) float64 {
	if o.Gndim == 2 {
		return math.Abs(o.J) * o.NatVol * thickness
	}
	return math.Abs(o.J) * o.NatVol
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
}
