// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/ten"
	"github.com/cpmech/govfm/vfs"
)

// uniaxialTest returns an elastic uniaxial tension test of a centred 2×4 specimen
func uniaxialTest(name string, x0, lx float64, nx int, symmetry []string, strategy vfs.Strategy) *Test {
	X, conn := grid(x0, -2, lx, 4, nx, 4)
	nf := 6
	εyy := series(nf, 2e-4)
	force := make([][]float64, nf)
	for inc := range force {
		force[inc] = []float64{0, 200000 * εyy[inc] * 2}
	}
	return &Test{
		Name:      name,
		X:         X,
		Conn:      conn,
		U:         stretch(X, εyy, 0.3),
		Time:      series(nf, 1),
		Force:     force,
		Thickness: 1,
		Symmetry:  symmetry,
		Strategy:  strategy,
	}
}

func Test_reconstruct01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reconstruct01. uniaxial elasticity")

	t := uniaxialTest("tension", -1, 2, 2, nil, vfs.UserDefined{Types: []int{1}})
	p := &Problem{Tests: []*Test{t}}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	s, err := Reconstruct(context.Background(), t, propsElast, p.Factory, 2)
	if err != nil {
		tst.Errorf("Reconstruct failed: %v\n", err)
		return
	}
	for inc := 0; inc < t.Nf(); inc++ {
		εyy := 2e-4 * float64(inc)
		for e := range t.Conn {
			chk.Array(tst, io.Sf("σ(%d,%d)", inc, e), 1e-8, s.Get(inc, e), []float64{0, 200000 * εyy, 0})
			chk.Float64(tst, "e33", 1e-15, s.E33[inc][e], -0.3*εyy)
			chk.Float64(tst, "eqps", 1e-15, s.Eqps[inc][e], 0)
		}
	}

	// small stretches: first Piola-Kirchhoff ≈ Cauchy
	P := PiolaKirchhoffField(t.Kin, s)
	chk.Float64(tst, "Pyy", 1e-8, P[0][0].At(1, 1), 0)
	λx := math.Exp(-0.3 * 1e-3)
	chk.Float64(tst, "Pyy", 1e-8, P[5][0].At(1, 1), λx*(1+s.E33[5][0])*s.Sig[5][0].At(1, 1))
}

func Test_reference01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reference01. reference force and self-consistency")

	for _, large := range []bool{false, true} {
		t := uniaxialTest("tension", -1, 2, 4, nil, vfs.UserDefined{Types: []int{1, 3}})
		p := &Problem{Tests: []*Test{t}, Large: large}
		if err := p.Init(context.Background()); err != nil {
			tst.Errorf("Init failed: %v\n", err)
			return
		}

		// force = σyy · area
		force, err := ReferenceForce(context.Background(), t, propsElast, 0, 1, large, nil, 0)
		if err != nil {
			tst.Errorf("ReferenceForce failed: %v\n", err)
			return
		}
		if !large {
			for inc := range force {
				chk.Float64(tst, io.Sf("F(%d)", inc), 1e-8, force[inc][1], t.Force[inc][1])
			}
		}

		// zero cost with reference force
		t.Force = force
		ev, err := p.Evaluate(context.Background(), propsElast)
		if err != nil {
			tst.Errorf("Evaluate failed: %v\n", err)
			return
		}
		io.Pforan("large=%v: cost = %v\n", large, ev.Cost)
		if !ev.Success {
			tst.Errorf("evaluation should succeed\n")
			return
		}
		chk.Int(tst, "nres", len(ev.Res), t.Nf()*2)
		chk.Int(tst, "nres", p.Nres(), t.Nf()*2)
		if ev.Cost > 1e-16 {
			tst.Errorf("cost should be zero. %v is incorrect\n", ev.Cost)
		}

		// different stiffness
		props := append([]float64{}, propsElast...)
		props[2] = 150000
		ev, err = p.Evaluate(context.Background(), props)
		if err != nil {
			tst.Errorf("Evaluate failed: %v\n", err)
			return
		}
		r := ev.Results[0]
		for inc := 0; inc < t.Nf(); inc++ {
			for v := 0; v < 2; v++ {
				chk.Float64(tst, "res", 1e-12, r.Res[inc*2+v], r.Ivw[v][inc]-r.Evw[v][inc])
			}
		}
		chk.Float64(tst, "ivw ratio", 1e-6, r.Ivw[0][5]/r.Evw[0][5], 0.75)
		if !(ev.Cost > 1) {
			tst.Errorf("cost should be positive. %v is incorrect\n", ev.Cost)
		}
	}
}

func Test_symmetry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("symmetry01. half mesh ×2 = full mesh")

	full := uniaxialTest("full", -1, 2, 4, nil, vfs.UserDefined{Types: []int{1}})
	half := uniaxialTest("half", 0, 1, 2, []string{"x"}, vfs.UserDefined{Types: []int{1}})
	p := &Problem{Tests: []*Test{full, half}}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	ev, err := p.Evaluate(context.Background(), propsLin)
	if err != nil {
		tst.Errorf("Evaluate failed: %v\n", err)
		return
	}
	chk.Float64(tst, "factor", 1e-15, half.SymmetryFactor(), 2)
	chk.Array(tst, "ivw", 1e-9, ev.Results[1].Ivw[0], ev.Results[0].Ivw[0])
}

func Test_failure01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("failure01. failed reconstructions")

	t := uniaxialTest("tension", -1, 2, 2, nil, vfs.UserDefined{Types: []int{1}})
	p := &Problem{Tests: []*Test{t}}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// negative yield stress and unavailable elastic law
	for _, props := range [][]float64{
		{0, 0, 200000, 0.3, 0, 0, -1, 0, 0},
		{0, 7, 200000, 0.3, 0, 0, 250, 0, 0},
	} {
		_, err := Reconstruct(context.Background(), t, props, p.Factory, 0)
		if !errors.Is(err, ErrReconstruction) {
			tst.Errorf("error should be ErrReconstruction. err = %v\n", err)
		}
		var rerr *ReconstructionError
		if !errors.As(err, &rerr) {
			tst.Errorf("error should be a ReconstructionError. err = %v\n", err)
			return
		}
		io.Pforan("%v\n", rerr)
		ev, err := p.Evaluate(context.Background(), props)
		if err != nil {
			tst.Errorf("Evaluate should not fail: %v\n", err)
			return
		}
		if ev.Success || ev.Results[0].Success {
			tst.Errorf("evaluation should not succeed\n")
		}
		if !math.IsNaN(ev.Cost) {
			tst.Errorf("cost should be NaN. %v is incorrect\n", ev.Cost)
		}
		chk.Int(tst, "nres", len(ev.Res), t.Nf())
		for _, r := range ev.Res {
			if !math.IsNaN(r) {
				tst.Errorf("residuals should be NaN\n")
				return
			}
		}
	}
}

func Test_sensitivity01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sensitivity01. sensitivity-based fields on half specimen")

	// top half of specimen with symmetry about y = 0
	var edges [vfs.NEDGES][]vfs.Code
	edges[vfs.Top] = []vfs.Code{vfs.Free, vfs.Constant}
	edges[vfs.Bottom] = []vfs.Code{vfs.Free, vfs.Fixed}
	edges[vfs.Left] = []vfs.Code{vfs.Fixed, vfs.Free}
	X, conn := grid(-1, 0, 2, 2, 4, 4)
	nf := 5
	εyy := series(nf, 2e-4)
	force := make([][]float64, nf)
	for inc := range force {
		force[inc] = []float64{0, 200000 * εyy[inc] * 2}
	}
	t := &Test{
		Name:      "half",
		X:         X,
		Conn:      conn,
		U:         stretch(X, εyy, 0.3),
		Time:      series(nf, 0.5),
		Force:     force,
		Thickness: 1,
		Symmetry:  []string{"y"},
		Strategy:  vfs.SensitivityBased{Dx: 0.01, Scale: 0.5, Edges: edges},
	}
	free := make([]bool, len(propsElast))
	free[2] = true
	names := []string{"debug", "elastic", "E", "nu"}
	p := &Problem{Tests: []*Test{t}, Free: free, Names: names}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// sensitivity of linear elasticity w.r.t E: dx·σ
	ref, err := Reconstruct(context.Background(), t, propsElast, p.Factory, 0)
	if err != nil {
		tst.Errorf("Reconstruct failed: %v\n", err)
		return
	}
	fields, sens, err := SensitivityFields(context.Background(), t, propsElast, free, names, ref, nil, false, p.Factory, 0)
	if err != nil {
		tst.Errorf("SensitivityFields failed: %v\n", err)
		return
	}
	chk.Int(tst, "nfields", len(fields), 1)
	chk.String(tst, fields[0].Name, "sb:E")
	ne := len(conn)
	for inc := 1; inc < nf; inc++ {
		for e := 0; e < ne; e++ {
			chk.Float64(tst, "Δσyy", 1e-8, sens[0].Total[inc][1*ne+e], 0.01*ref.Get(inc, e)[1])
			chk.Float64(tst, "rate", 1e-8, sens[0].Incr[inc][1*ne+e], 0.01*200000*2e-4/0.5)
		}
	}
	chk.Float64(tst, "U(0)", 1e-15, fields[0].Boundary(0)[1], 0)
	if !(math.Abs(fields[0].Boundary(2)[1]) > 0) {
		tst.Errorf("virtual field should move the top edge\n")
	}

	// equilibrium
	ev, err := p.Evaluate(context.Background(), propsElast)
	if err != nil {
		tst.Errorf("Evaluate failed: %v\n", err)
		return
	}
	r := ev.Results[0]
	io.Pforan("α = %v\n", r.Alpha)
	io.Pforan("ivw = %v\n", r.Ivw[0])
	io.Pforan("evw = %v\n", r.Evw[0])
	chk.Array(tst, "ivw", 1e-7, r.Ivw[0], r.Evw[0])
	if ev.Cost > 1e-16 {
		tst.Errorf("cost should be zero. %v is incorrect\n", ev.Cost)
	}
}

func Test_strain33(tst *testing.T) {

	//verbose()
	chk.PrintTitle("strain33. plane stress thickness strain")

	// elastic: -ν/(1-ν) (ε11+ε22)
	chk.Float64(tst, "e33 elastic", 1e-15, Strain33([]float64{0.01, 0.02, 0.005}, []float64{0, 0, 0}, 0.3), -0.3/0.7*0.03)

	// plastic incompressibility adds -(εp11+εp22)
	chk.Float64(tst, "e33 plastic", 1e-15, Strain33([]float64{0.01, 0.02, 0}, []float64{0.001, 0.002, 0}, 0.3), -0.3/0.7*0.027-0.003)
}

func Test_failure02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("failure02. model failing at a chosen increment")

	t := uniaxialTest("tension", -1, 2, 2, nil, vfs.UserDefined{Types: []int{1}})
	stiff := func(props []float64) bool { return props[2] > 205000 }
	p := &Problem{Tests: []*Test{t}, Factory: failingFactory(3, stiff)}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// failing region
	props := append([]float64{}, propsElast...)
	props[2] = 210000
	_, err := Reconstruct(context.Background(), t, props, p.Factory, 0)
	var rerr *ReconstructionError
	if !errors.As(err, &rerr) {
		tst.Errorf("error should be a ReconstructionError. err = %v\n", err)
		return
	}
	chk.Int(tst, "increment", rerr.Inc, 3)
	ev, err := p.Evaluate(context.Background(), props)
	if err != nil {
		tst.Errorf("Evaluate should not fail: %v\n", err)
		return
	}
	if ev.Success || !math.IsNaN(ev.Cost) {
		tst.Errorf("evaluation should fail with NaN cost. success = %v cost = %v\n", ev.Success, ev.Cost)
	}
	if ev.Results[0].Err == nil {
		tst.Errorf("cause of failure should be kept\n")
	}

	// valid region
	ev, err = p.Evaluate(context.Background(), propsElast)
	if err != nil {
		tst.Errorf("Evaluate failed: %v\n", err)
		return
	}
	if !ev.Success || math.IsNaN(ev.Cost) {
		tst.Errorf("evaluation should succeed. cost = %v\n", ev.Cost)
	}
}

func Test_sensitivity02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sensitivity02. first Piola-Kirchhoff sensitivities")

	var edges [vfs.NEDGES][]vfs.Code
	edges[vfs.Top] = []vfs.Code{vfs.Free, vfs.Constant}
	edges[vfs.Bottom] = []vfs.Code{vfs.Free, vfs.Fixed}
	edges[vfs.Left] = []vfs.Code{vfs.Fixed, vfs.Free}
	X, conn := grid(-1, 0, 2, 2, 2, 2)
	nf := 4
	εyy := series(nf, 0.01)
	force := make([][]float64, nf)
	for inc := range force {
		force[inc] = []float64{0, 200000 * εyy[inc] * 2}
	}
	t := &Test{
		Name:      "large",
		X:         X,
		Conn:      conn,
		U:         stretch(X, εyy, 0.3),
		Time:      series(nf, 0.5),
		Force:     force,
		Thickness: 1,
		Strategy:  vfs.SensitivityBased{Dx: 0.01, Scale: 0.5, Edges: edges},
	}
	free := make([]bool, len(propsElast))
	free[2] = true
	p := &Problem{Tests: []*Test{t}, Free: free, Large: true}
	if err := p.Init(context.Background()); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// linear elasticity: P is proportional to E
	ref, err := Reconstruct(context.Background(), t, propsElast, p.Factory, 0)
	if err != nil {
		tst.Errorf("Reconstruct failed: %v\n", err)
		return
	}
	Pref := PiolaKirchhoffField(t.Kin, ref)
	fields, sens, err := SensitivityFields(context.Background(), t, propsElast, free, nil, ref, Pref, true, p.Factory, 0)
	if err != nil {
		tst.Errorf("SensitivityFields failed: %v\n", err)
		return
	}
	chk.Int(tst, "nfields", len(fields), 1)
	chk.String(tst, fields[0].Name, "sb:2")
	ne := len(conn)
	chk.Int(tst, "ncomp·ne", len(sens[0].Total[1]), 4*ne)
	for inc := 1; inc < nf; inc++ {
		for e := 0; e < ne; e++ {
			P := ten.Flatten(Pref[inc][e])
			for c := range P {
				chk.Float64(tst, "ΔP", 1e-9, sens[0].Total[inc][c*ne+e], 0.01*P[c])
				rate := (sens[0].Total[inc][c*ne+e] - sens[0].Total[inc-1][c*ne+e]) / 0.5
				chk.Float64(tst, "rate", 1e-9, sens[0].Incr[inc][c*ne+e], rate)
			}
		}
	}
	if !(math.Abs(fields[0].Boundary(2)[1]) > 0) {
		tst.Errorf("virtual field should move the top edge\n")
	}
}

func Test_symmetry02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("symmetry02. invalid symmetry conditions")

	for _, sym := range [][]string{{"x", "x"}, {"z"}, {"x", "y", "x"}} {
		t := uniaxialTest("tension", -1, 2, 2, sym, vfs.UserDefined{Types: []int{1}})
		if err := t.Init(context.Background(), false, 0); err == nil {
			tst.Errorf("symmetry %v should be rejected\n", sym)
		}
	}
	t := uniaxialTest("tension", -1, 2, 2, []string{"y", "x"}, vfs.UserDefined{Types: []int{1}})
	if err := t.Init(context.Background(), false, 0); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Float64(tst, "factor", 1e-15, t.SymmetryFactor(), 4)
}
