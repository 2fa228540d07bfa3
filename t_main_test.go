// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

const options = `
run: %s
output: results
nlgeom: false
vtu: true
algorithm: {kind: lm}
properties:
  - {name: debug, value: 0}
  - {name: elastic, value: 0}
  - {name: E, value: 180000, free: true, bounds: [100000, 300000]}
  - {name: nu, value: 0.3}
  - {name: yield, value: 0}
  - {name: hardening, value: 1}
  - {name: sy0, value: 250}
  - {name: h, value: 1000}
  - {value: 0}
  - {value: 0}
tests:
  - name: Tension
    fields: {kind: ud, types: [1, 2]}
`

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. generate then identify and simulate")

	dir := tst.TempDir()
	genDir, genName, genLarge = filepath.Join(dir, "input", "Tension"), "Tension", false
	genSol.W, genSol.H, genSol.Nx, genSol.Ny, genSol.Nf, genSol.Emax = 10, 20, 2, 4, 5, 0.001
	genMat = [4]float64{200000, 0.3, 250, 1000}
	if err := generate(context.Background()); err != nil {
		tst.Fatalf("generate failed: %v\n", err)
	}

	for _, kind := range []string{"identification", "simulation"} {
		fn := filepath.Join(dir, kind+".yaml")
		if err := os.WriteFile(fn, []byte(io.Sf(options, kind)), 0644); err != nil {
			tst.Fatalf("cannot write options: %v\n", err)
		}
		if err := run(context.Background(), fn); err != nil {
			tst.Errorf("%s: run failed: %v\n", kind, err)
			return
		}
		files := []string{kind + ".log", kind + "_IVW.csv", kind + "_EVW.csv", kind + ".pvd", kind + "_0.vtu"}
		if kind == "identification" {
			files = append(files, kind+"_Progress.csv")
		}
		for _, f := range files {
			if _, err := os.Stat(filepath.Join(dir, "results", f)); err != nil {
				tst.Errorf("%s: file %q is missing\n", kind, f)
			}
		}
	}
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}
