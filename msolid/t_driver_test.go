// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

func vec(v ...float64) *mat.VecDense {
	return mat.NewVecDense(len(v), v)
}

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01. uniaxial plane stress")

	mdl, err := New(propsLin, 2)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	var drv Driver
	if err = drv.Init(mdl, 3); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	drv.Silent = true

	// εxx path; εyy free; γxy = 0
	np := 21
	eps := make([][]float64, np)
	for i := range eps {
		eps[i] = []float64{0.005 * float64(i) / float64(np-1), 0, 0}
	}
	if err = drv.Run(eps, []int{1}); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	E, ν, sy0, h := 200000.0, 0.3, 250.0, 1000.0
	for i, s := range drv.Res {
		εxx := eps[i][0]
		σel := E * εxx
		if σel <= sy0 {
			chk.Float64(tst, io.Sf("σxx(%d)", i), 1e-7, s.Sig[0], σel)
			chk.Float64(tst, io.Sf("εyy(%d)", i), 1e-12, drv.Eps[i][1], -ν*εxx)
			continue
		}
		σ := (sy0 + h*εxx) / (1 + h/E)
		εbar := (σ - sy0) / h
		chk.Float64(tst, io.Sf("σxx(%d)", i), 1e-7, s.Sig[0], σ)
		chk.Float64(tst, io.Sf("σyy(%d)", i), 1e-8, s.Sig[1], 0)
		chk.Float64(tst, io.Sf("eqps(%d)", i), 1e-10, s.Eqps, εbar)
		chk.Float64(tst, io.Sf("εyy(%d)", i), 1e-10, drv.Eps[i][1], -ν*σ/E-0.5*εbar)
	}

	// committed states are independent copies
	last, prev := drv.Res[np-1], drv.Res[np-2]
	if last == prev || &last.Sig[0] == &prev.Sig[0] || !(last.Eqps > prev.Eqps) {
		tst.Errorf("committed states must not share memory\n")
	}
}
