// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idf

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Constraint defines a property as a function of the property vector; e.g. p[7] = p[6] * 0.5
type Constraint struct {
	Index int    // index of constrained property
	Expr  string // expression; the property vector is available as p
}

// Constraints holds compiled constraint expressions sorted by property index
type Constraints struct {
	list  []Constraint
	progs []*vm.Program
}

// env is the environment of constraint expressions
type env struct {
	P []float64 `expr:"p"`
}

// NewConstraints compiles constraint expressions
//  nprops -- number of properties
//  Note: expressions may only read p and use the expression language's builtins
func NewConstraints(list []Constraint, nprops int) (o *Constraints, err error) {
	o = &Constraints{list: append([]Constraint{}, list...)}
	sort.SliceStable(o.list, func(i, j int) bool { return o.list[i].Index < o.list[j].Index })
	for _, c := range o.list {
		if c.Index < 0 || c.Index >= nprops {
			return nil, chk.Err("constraint %q: property index %d is out of range [0, %d)", c.Expr, c.Index, nprops)
		}
		prog, err := expr.Compile(c.Expr, expr.Env(env{}), expr.AsFloat64())
		if err != nil {
			return nil, chk.Err("constraint p[%d] = %q is invalid:\n%v", c.Index, c.Expr, err)
		}
		o.progs = append(o.progs, prog)
	}
	return
}

// Len returns the number of constraints
func (o *Constraints) Len() int {
	if o == nil {
		return 0
	}
	return len(o.list)
}

// Indices returns the constrained property indices
func (o *Constraints) Indices() (idx []int) {
	for i := 0; i < o.Len(); i++ {
		idx = append(idx, o.list[i].Index)
	}
	return
}

// Apply evaluates the constraints in property order, updating props in place;
// later constraints see the values set by earlier ones
func (o *Constraints) Apply(props []float64) (err error) {
	for i := 0; i < o.Len(); i++ {
		c := o.list[i]
		out, err := expr.Run(o.progs[i], env{P: props})
		if err != nil {
			return chk.Err("constraint p[%d] = %q failed: %v", c.Index, c.Expr, err)
		}
		props[c.Index] = out.(float64)
	}
	return
}
