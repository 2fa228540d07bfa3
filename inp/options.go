// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.yaml) options file and the test data read
// from CSV files
package inp

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/idf"
	"github.com/cpmech/govfm/vfm"
	"github.com/cpmech/govfm/vfs"
	"gopkg.in/yaml.v3"
)

// run kinds
const (
	Identification = "identification"
	Simulation     = "simulation"
)

// AlgData holds the settings of the identification algorithm
type AlgData struct {
	Kind string `yaml:"kind"` // "lm", "de" or "nm"

	// Levenberg-Marquardt
	Ftol      float64 `yaml:"ftol"`      // relative reduction of cost
	Xtol      float64 `yaml:"xtol"`      // relative step
	Gtol      float64 `yaml:"gtol"`      // max norm of gradient
	MaxFev    int     `yaml:"maxfev"`    // max number of evaluations (also Nelder-Mead)
	DiffStep  float64 `yaml:"diffstep"`  // finite-difference step
	Transform bool    `yaml:"transform"` // soft clamp of bounded variables

	// differential evolution
	PopSize       int       `yaml:"popsize"`       // population = popsize × number of variables
	MaxIter       int       `yaml:"maxiter"`       // max number of generations (also Nelder-Mead iterations)
	Tol           float64   `yaml:"tol"`           // relative tolerance on the spread of costs
	Atol          float64   `yaml:"atol"`          // absolute tolerance on the spread of costs
	Mutation      []float64 `yaml:"mutation"`      // dithering interval of the differential weight
	Recombination float64   `yaml:"recombination"` // crossover probability
	Seed          uint64    `yaml:"seed"`          // random seed
	Workers       int       `yaml:"workers"`       // number of concurrent evaluations

	// Nelder-Mead
	Xatol    float64 `yaml:"xatol"`    // absolute tolerance on the best vertex
	Fatol    float64 `yaml:"fatol"`    // absolute tolerance on the cost
	Adaptive bool    `yaml:"adaptive"` // dimension-dependent coefficients
	Restarts int     `yaml:"restarts"` // number of restarts
}

// PropData holds one material property
type PropData struct {
	Name   string    `yaml:"name"`   // name; e.g. "sy0"
	Value  float64   `yaml:"value"`  // initial value
	Free   bool      `yaml:"free"`   // to be identified
	Bounds []float64 `yaml:"bounds"` // lower and upper bounds; may be empty
}

// ConstraintData holds one constraint expression
type ConstraintData struct {
	Index int    `yaml:"index"` // index of constrained property
	Expr  string `yaml:"expr"`  // expression; e.g. "p[6] * 0.5"
}

// FieldsData holds the virtual fields settings of one test
type FieldsData struct {
	Kind  string           `yaml:"kind"`  // "ud" (user-defined) or "sb" (sensitivity-based)
	Types []int            `yaml:"types"` // ud: field type ids
	Dx    float64          `yaml:"dx"`    // sb: relative perturbation of properties
	Scale float64          `yaml:"scale"` // sb: fraction of largest internal virtual work values
	Edges map[string][]int `yaml:"edges"` // sb: edge name => codes per dof (0: free, 1: fixed, 2: constant)
}

// TestData holds the settings of one test
type TestData struct {
	Name     string     `yaml:"name"`     // name of test; also the prefix of data files
	Dir      string     `yaml:"dir"`      // directory of data files; relative to the options file
	Symmetry []string   `yaml:"symmetry"` // symmetry conditions; e.g. ["x"]
	Fields   FieldsData `yaml:"fields"`   // virtual fields
}

// Options holds all input data of a run
type Options struct {

	// input
	Run         string            `yaml:"run"`         // "identification" or "simulation"
	Output      string            `yaml:"output"`      // output directory; relative to the options file
	Nlgeom      bool              `yaml:"nlgeom"`      // large deformation framework
	Normalize   bool              `yaml:"normalize"`   // divide the cost of each test by nf·nvfs
	Nworkers    int               `yaml:"nworkers"`    // number of goroutines of element loops; ≤ 0 means GOMAXPROCS
	Vtu         bool              `yaml:"vtu"`         // export VTU/PVD files of the final solution
	Algorithm   AlgData           `yaml:"algorithm"`   // identification algorithm
	Properties  []*PropData       `yaml:"properties"`  // material properties
	Constraints []*ConstraintData `yaml:"constraints"` // constraints between properties
	Tests       []*TestData       `yaml:"tests"`       // tests

	// derived
	Dir    string // directory of the options file
	Key    string // options file name key; e.g. tension.yaml => tension
	DirOut string // output directory
}

// Options /////////////////////////////////////////////////////////////////////////////////////////

// ReadOptions reads all input data from a .yaml options file
func ReadOptions(fnamepath string) (o *Options, err error) {

	// read file
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read options file %q:\n%v", fnamepath, err)
	}

	// decode
	o = new(Options)
	o.SetDefault()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err = dec.Decode(o); err != nil {
		return nil, chk.Err("cannot decode options file %q:\n%v", fnamepath, err)
	}

	// directory and filename key
	o.Dir = filepath.Dir(os.ExpandEnv(fnamepath))
	o.Key = io.FnKey(filepath.Base(fnamepath))
	if err = o.PostProcess(); err != nil {
		return nil, fmt.Errorf("options file %q: %w", fnamepath, err)
	}
	return
}

// SetDefault sets default values
func (o *Options) SetDefault() {
	o.Run = Identification
	o.Algorithm.Kind = "lm"
}

// PostProcess checks the input data and sets derived values
func (o *Options) PostProcess() (err error) {

	// run kind
	if o.Run != Identification && o.Run != Simulation {
		return chk.Err("run kind %q is invalid; options are %q or %q", o.Run, Identification, Simulation)
	}

	// output directory
	o.DirOut = o.Output
	if o.DirOut == "" {
		o.DirOut = filepath.Join("out", o.Key)
	}
	if !filepath.IsAbs(o.DirOut) {
		o.DirOut = filepath.Join(o.Dir, o.DirOut)
	}

	// properties
	if len(o.Properties) == 0 {
		return chk.Err("at least one property is required")
	}
	nfree := 0
	for i, p := range o.Properties {
		if p.Name == "" {
			p.Name = io.Sf("p%d", i)
		}
		if p.Free {
			nfree++
		}
		switch len(p.Bounds) {
		case 0:
		case 2:
			if !(p.Bounds[1] > p.Bounds[0]) {
				return chk.Err("property %q: lower bound %v must be smaller than upper bound %v", p.Name, p.Bounds[0], p.Bounds[1])
			}
		default:
			return chk.Err("property %q: bounds must have two values", p.Name)
		}
	}
	if o.Run == Identification {
		if nfree == 0 {
			return chk.Err("at least one property must be free in an identification")
		}
		if o.Algorithm.Kind == "de" {
			for _, p := range o.Properties {
				if p.Free && len(p.Bounds) != 2 {
					return fmt.Errorf("property %q: %w", p.Name, idf.ErrUndefinedBounds)
				}
			}
		}
		if _, err = o.GetAlgorithm(); err != nil {
			return
		}
	}

	// constraints
	if _, err = o.GetConstraints(); err != nil {
		return
	}

	// tests
	if len(o.Tests) == 0 {
		return chk.Err("at least one test is required")
	}
	for _, t := range o.Tests {
		if t.Name == "" {
			return chk.Err("tests must have a name")
		}
		if t.Dir == "" {
			t.Dir = filepath.Join("input", t.Name)
		}
		if !filepath.IsAbs(t.Dir) {
			t.Dir = filepath.Join(o.Dir, t.Dir)
		}
		if _, err = t.GetStrategy(); err != nil {
			return
		}
		if err = vfm.CheckSymmetry(t.Symmetry); err != nil {
			return chk.Err("test %q: %v", t.Name, err)
		}
	}
	return
}

// GetProps returns the initial properties, free flags, bounds and names
//  Note: undefined bounds are NaN
func (o *Options) GetProps() (props []float64, free []bool, bounds [][2]float64, names []string) {
	n := len(o.Properties)
	props, free, bounds, names = make([]float64, n), make([]bool, n), make([][2]float64, n), make([]string, n)
	for i, p := range o.Properties {
		props[i], free[i], names[i] = p.Value, p.Free, p.Name
		bounds[i] = [2]float64{math.NaN(), math.NaN()}
		if len(p.Bounds) == 2 {
			bounds[i] = [2]float64{p.Bounds[0], p.Bounds[1]}
		}
	}
	return
}

// GetConstraints compiles the constraints; nil if there are none
func (o *Options) GetConstraints() (*idf.Constraints, error) {
	if len(o.Constraints) == 0 {
		return nil, nil
	}
	list := make([]idf.Constraint, len(o.Constraints))
	for i, c := range o.Constraints {
		list[i] = idf.Constraint{Index: c.Index, Expr: c.Expr}
	}
	return idf.NewConstraints(list, len(o.Properties))
}

// GetAlgorithm returns the identification algorithm
func (o *Options) GetAlgorithm() (idf.Algorithm, error) {
	a := o.Algorithm
	switch a.Kind {
	case "lm":
		return &idf.LevenbergMarquardt{Ftol: a.Ftol, Xtol: a.Xtol, Gtol: a.Gtol, MaxFev: a.MaxFev, DiffStep: a.DiffStep, Transform: a.Transform}, nil
	case "de":
		alg := &idf.DifferentialEvolution{PopSize: a.PopSize, MaxIter: a.MaxIter, Tol: a.Tol, Atol: a.Atol, Recombination: a.Recombination, Seed: a.Seed, Workers: a.Workers}
		switch len(a.Mutation) {
		case 0:
		case 1:
			alg.Mutation = [2]float64{a.Mutation[0], a.Mutation[0]}
		case 2:
			alg.Mutation = [2]float64{a.Mutation[0], a.Mutation[1]}
		default:
			return nil, chk.Err("mutation must have one or two values")
		}
		return alg, nil
	case "nm":
		return &idf.NelderMead{MaxIter: a.MaxIter, MaxFev: a.MaxFev, Xatol: a.Xatol, Fatol: a.Fatol, Adaptive: a.Adaptive, Restarts: a.Restarts}, nil
	}
	return nil, chk.Err("algorithm %q is not available; options are \"lm\", \"de\" or \"nm\"", a.Kind)
}

// GetStrategy returns the virtual fields strategy of a test
func (o *TestData) GetStrategy() (vfs.Strategy, error) {
	f := o.Fields
	switch f.Kind {
	case "ud":
		if len(f.Types) == 0 {
			return nil, chk.Err("test %q: at least one user-defined field type is required", o.Name)
		}
		for _, id := range f.Types {
			if vfs.Get(id) == nil {
				return nil, chk.Err("test %q: user-defined field type %d is not available", o.Name, id)
			}
		}
		return vfs.UserDefined{Types: f.Types}, nil
	case "sb":
		s := vfs.SensitivityBased{Dx: f.Dx, Scale: f.Scale}
		if s.Dx == 0 {
			s.Dx = 0.001
		}
		if s.Scale == 0 {
			s.Scale = 0.1
		}
		for name, codes := range f.Edges {
			e := edgeIndex(name)
			if e < 0 {
				return nil, chk.Err("test %q: edge %q is invalid; options are %v", o.Name, name, vfs.EdgeNames)
			}
			for _, c := range codes {
				if c < int(vfs.Free) || c > int(vfs.Constant) {
					return nil, chk.Err("test %q: boundary condition code %d of edge %q is invalid", o.Name, c, name)
				}
				s.Edges[e] = append(s.Edges[e], vfs.Code(c))
			}
		}
		return s, nil
	}
	return nil, chk.Err("test %q: virtual fields kind %q is invalid; options are \"ud\" or \"sb\"", o.Name, f.Kind)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func edgeIndex(name string) int {
	for i, n := range vfs.EdgeNames {
		if n == name {
			return i
		}
	}
	return -1
}
