// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Geometry holds the specimen dimensions used by user-defined fields
type Geometry struct {
	W  float64 // half width: (max x - min x)/2
	H  float64 // half height: (max y - min y)/2
	Xb float64 // x-coordinate of the loaded boundary: max x
	Yb float64 // y-coordinate of the loaded boundary: max y
}

// NewGeometry computes the specimen dimensions from the nodal coordinates
func NewGeometry(X [][]float64) (g Geometry) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, x := range X {
		xmin, xmax = math.Min(xmin, x[0]), math.Max(xmax, x[0])
		ymin, ymax = math.Min(ymin, x[1]), math.Max(ymax, x[1])
	}
	g.W, g.H = (xmax-xmin)/2, (ymax-ymin)/2
	g.Xb, g.Yb = xmax, ymax
	return
}

// Type defines closed-form in-plane virtual fields
type Type interface {
	Displacement(g Geometry, x, y float64) (ux, uy float64) // δu
	Gradient(g Geometry, x, y float64) [2][2]float64         // ∂δu_i/∂X_j
}

// library holds all available user-defined fields
var library = map[int]Type{}

// add fields to library
func init() {
	library[1] = new(udVertical)
	library[2] = new(udHorizontal)
	library[3] = new(udShear)
	library[4] = new(udSine)
	library[5] = new(udBending)
}

// Get returns a user-defined field type or nil
func Get(id int) Type {
	return library[id]
}

// udVertical: δu = (0, y/h)
type udVertical struct{}

func (udVertical) Displacement(g Geometry, x, y float64) (float64, float64) { return 0, y / g.H }
func (udVertical) Gradient(g Geometry, x, y float64) [2][2]float64 {
	return [2][2]float64{{0, 0}, {0, 1 / g.H}}
}

// udHorizontal: δu = (x/w, 0)
type udHorizontal struct{}

func (udHorizontal) Displacement(g Geometry, x, y float64) (float64, float64) { return x / g.W, 0 }
func (udHorizontal) Gradient(g Geometry, x, y float64) [2][2]float64 {
	return [2][2]float64{{1 / g.W, 0}, {0, 0}}
}

// udShear: δux = x(|y| - h)/(wh)
type udShear struct{}

func (udShear) Displacement(g Geometry, x, y float64) (float64, float64) {
	return x * (math.Abs(y) - g.H) / (g.W * g.H), 0
}
func (udShear) Gradient(g Geometry, x, y float64) [2][2]float64 {
	return [2][2]float64{{(math.Abs(y) - g.H) / (g.W * g.H), sign(y) * x / (g.W * g.H)}, {0, 0}}
}

// udSine: δux = δuy = sin(πx/w)·cos(πy/2h)/π
type udSine struct{}

func (udSine) Displacement(g Geometry, x, y float64) (float64, float64) {
	u := math.Sin(math.Pi*x/g.W) * math.Cos(math.Pi*y/(2*g.H)) / math.Pi
	return u, u
}
func (udSine) Gradient(g Geometry, x, y float64) [2][2]float64 {
	dx := math.Cos(math.Pi*x/g.W) * math.Cos(math.Pi*y/(2*g.H)) / g.W
	dy := -math.Sin(math.Pi*x/g.W) * math.Sin(math.Pi*y/(2*g.H)) / (2 * g.H)
	return [2][2]float64{{dx, dy}, {dx, dy}}
}

// udBending: δux = x(y² - yh)/(wh²)
type udBending struct{}

func (udBending) Displacement(g Geometry, x, y float64) (float64, float64) {
	return x * (y*y - y*g.H) / (g.W * g.H * g.H), 0
}
func (udBending) Gradient(g Geometry, x, y float64) [2][2]float64 {
	c := g.W * g.H * g.H
	return [2][2]float64{{(y*y - y*g.H) / c, x * (2*y - g.H) / c}, {0, 0}}
}

// UserDefinedFields evaluates user-defined fields on a mesh
//  X         -- [nn][dof] reference coordinates
//  centroids -- [ne][dof] element centroids
//  Note: in 3D, the out-of-plane components of the fields are zero
func UserDefinedFields(types []int, X, centroids [][]float64) (fields []*Field, err error) {
	if len(types) == 0 {
		return nil, chk.Err("at least one user-defined virtual field type is required")
	}
	dof := len(X[0])
	g := NewGeometry(X)
	if !(g.W > 0) || !(g.H > 0) {
		return nil, chk.Err("specimen must have positive width and height. w=%v h=%v", g.W, g.H)
	}
	for _, id := range types {
		typ := Get(id)
		if typ == nil {
			return nil, chk.Err("user-defined virtual field type %d is not available", id)
		}
		f := &Field{
			Name: io.Sf("ud%d", id),
			E:    [][]*mat.Dense{make([]*mat.Dense, len(centroids))},
			U:    [][]float64{make([]float64, dof)},
			Un:   [][][]float64{make([][]float64, len(X))},
		}
		for e, c := range centroids {
			G := typ.Gradient(g, c[0], c[1])
			f.E[0][e] = mat.NewDense(dof, dof, nil)
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					f.E[0][e].Set(i, j, G[i][j])
				}
			}
		}
		f.U[0][0], f.U[0][1] = typ.Displacement(g, g.Xb, g.Yb)
		for n, x := range X {
			f.Un[0][n] = make([]float64, dof)
			f.Un[0][n][0], f.Un[0][n][1] = typ.Displacement(g, x[0], x[1])
		}
		fields = append(fields, f)
	}
	return
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
