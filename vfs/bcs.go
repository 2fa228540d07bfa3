// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Code is a boundary condition code of one dof along one specimen edge
type Code int

// boundary condition codes
const (
	Free     Code = iota // no constraint
	Fixed                // zero virtual displacement
	Constant             // uniform virtual displacement along the edge
)

// specimen edges
const (
	Top    = iota // y = max
	Right         // x = max
	Bottom        // y = min
	Left          // x = min
	NEDGES
)

// EdgeNames holds the names of specimen edges
var EdgeNames = [NEDGES]string{"top", "right", "bottom", "left"}

// errors
var (
	ErrNoFixedDof     = errors.New("at least one fixed boundary condition should be defined")
	ErrNoConstantEdge = errors.New("at least one constant boundary condition should be defined")
)

// BCs holds the classification of dofs of a mesh according to boundary conditions
//  Note: a dof that is both fixed and part of a constant edge is fixed
type BCs struct {
	Nn     int             // number of nodes
	Dof    int             // number of dofs per node
	Fixed  []int           // fixed dofs (sorted)
	Active []int           // non-fixed dofs (sorted)
	Parent [NEDGES][]int   // [edge][dof] parent dof of constant edges; -1 if not constant
	Groups [NEDGES][][]int // [edge][dof] dofs of constant edges (parent first)
	Edges  [NEDGES][]Code  // copy of the input codes; [edge][dof]
	rep    []int           // [nn*dof] representative (parent) dof; itself if unconstrained
	col    []int           // [nn*dof] column of dof among Active; -1 if fixed
}

// NewBCs classifies the dofs of a mesh
//  X     -- [nn][dof] reference coordinates
//  edges -- [edge][dof] codes; nil or empty entries mean free
func NewBCs(X [][]float64, edges [NEDGES][]Code) (o *BCs, err error) {

	// basic data
	o = new(BCs)
	o.Nn = len(X)
	o.Dof = len(X[0])
	ndof := o.Nn * o.Dof
	for i := range edges {
		o.Edges[i] = append([]Code{}, edges[i]...)
	}

	// limits
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, x := range X {
		xmin, xmax = math.Min(xmin, x[0]), math.Max(xmax, x[0])
		ymin, ymax = math.Min(ymin, x[1]), math.Max(ymax, x[1])
	}
	tol := 1e-10 * math.Max(xmax-xmin, ymax-ymin)
	coord := [NEDGES]int{1, 0, 1, 0}
	limit := [NEDGES]float64{ymax, xmax, ymin, xmin}

	// classify
	fixed := make([]bool, ndof)
	uf := newUnionFind(ndof)
	nconst := 0
	for i := 0; i < NEDGES; i++ {
		o.Parent[i] = make([]int, o.Dof)
		o.Groups[i] = make([][]int, o.Dof)
		for j := range o.Parent[i] {
			o.Parent[i][j] = -1
		}
		if len(edges[i]) == 0 {
			continue
		}
		if len(edges[i]) != o.Dof {
			return nil, chk.Err("%s edge: %d codes are given but dof = %d", EdgeNames[i], len(edges[i]), o.Dof)
		}
		var nodes []int
		for n, x := range X {
			if math.Abs(x[coord[i]]-limit[i]) <= tol {
				nodes = append(nodes, n)
			}
		}
		nc := 0
		for j, code := range edges[i] {
			switch code {
			case Free:
			case Fixed:
				for _, n := range nodes {
					fixed[n*o.Dof+j] = true
				}
			case Constant:
				nc++
			default:
				return nil, chk.Err("%s edge: boundary condition code %d is invalid", EdgeNames[i], code)
			}
		}
		if nc > 1 {
			return nil, chk.Err("constant boundary condition defined in more than one direction for %s edge", EdgeNames[i])
		}
	}

	// constant edges
	for i := 0; i < NEDGES; i++ {
		for j, code := range edges[i] {
			if code != Constant {
				continue
			}
			for n, x := range X {
				d := n*o.Dof + j
				if math.Abs(x[coord[i]]-limit[i]) <= tol && !fixed[d] {
					o.Groups[i][j] = append(o.Groups[i][j], d)
				}
			}
			if len(o.Groups[i][j]) == 0 {
				continue
			}
			nconst++
			o.Parent[i][j] = o.Groups[i][j][0]
			for _, d := range o.Groups[i][j][1:] {
				uf.union(o.Parent[i][j], d)
			}
		}
	}

	// check
	for d := 0; d < ndof; d++ {
		if fixed[d] {
			o.Fixed = append(o.Fixed, d)
		} else {
			o.Active = append(o.Active, d)
		}
	}
	if len(o.Fixed) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFixedDof)
	}
	if nconst == 0 {
		return nil, fmt.Errorf("%w", ErrNoConstantEdge)
	}

	// representatives and columns
	o.rep = make([]int, ndof)
	o.col = make([]int, ndof)
	for d := 0; d < ndof; d++ {
		o.rep[d] = uf.find(d)
		o.col[d] = -1
	}
	for k, d := range o.Active {
		o.col[d] = k
	}
	sort.Ints(o.Fixed)
	return
}

// Rep returns the representative (parent) dof of a dof
func (o *BCs) Rep(d int) int { return o.rep[d] }

// ConstantReps returns the distinct representative dofs of the constant edges in direction j
//  Note: edges that are constant in the same direction and share a corner form one group
func (o *BCs) ConstantReps(j int) (reps []int) {
	for i := 0; i < NEDGES; i++ {
		p := o.Parent[i][j]
		if p < 0 || slices.Contains(reps, o.rep[p]) {
			continue
		}
		reps = append(reps, o.rep[p])
	}
	return
}

// Col returns the column of a dof among the active dofs or -1 if the dof is fixed
func (o *BCs) Col(d int) int { return o.col[d] }

// unionFind implements disjoint sets of dofs. The root of a set is the first dof added to it
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	o := &unionFind{parent: make([]int, n)}
	for i := range o.parent {
		o.parent[i] = i
	}
	return o
}

func (o *unionFind) find(i int) int {
	for o.parent[i] != i {
		o.parent[i] = o.parent[o.parent[i]]
		i = o.parent[i]
	}
	return i
}

// union attaches the set of b to the set of a
func (o *unionFind) union(a, b int) {
	ra, rb := o.find(a), o.find(b)
	if ra != rb {
		o.parent[rb] = ra
	}
}
