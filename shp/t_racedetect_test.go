// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01. one copy per worker")

	// parallelograms sheared by s; all have unit area
	nworkers := 4
	vols := make([][]float64, nworkers)
	var g errgroup.Group
	for w := 0; w < nworkers; w++ {
		shape := Get("qua4r", w+1)
		vols[w] = make([]float64, 10)
		g.Go(func() error {
			for k := range vols[w] {
				s := float64(k) / 10
				shape.CalcAtCentre([][]float64{
					{0, 1, 1 + s, s},
					{0, 0, 1, 1},
				})
				vols[w][k] = shape.Volume(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tst.Errorf("workers failed: %v\n", err)
	}
	for w := 0; w < nworkers; w++ {
		chk.Array(tst, "areas", 1e-14, vols[w], []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	}
}
