// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/ana"
	"github.com/cpmech/govfm/inp"
	"github.com/cpmech/govfm/vfs"
	"github.com/spf13/cobra"
)

// generate flags
var (
	genDir   string       // output directory
	genName  string       // name of test
	genLarge bool         // large deformation framework
	genSol   ana.Uniaxial // test definition
	genMat   [4]float64   // E, ν, sy0, h
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic uniaxial tension test",
	Long: `Generate writes the data files of a homogeneous plane stress tension test of an
isotropic von Mises material with linear hardening. The loading force balances the
internal virtual work of the uniform vertical virtual field.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd.Context())
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genDir, "output", "o", "input/Uniaxial", "output directory")
	f.StringVar(&genName, "name", "Uniaxial", "name of test")
	f.BoolVar(&genLarge, "nlgeom", true, "large deformation framework")
	f.Float64Var(&genSol.W, "width", 20, "width of specimen")
	f.Float64Var(&genSol.H, "height", 40, "height of specimen")
	f.IntVar(&genSol.Nx, "nx", 4, "number of divisions along x")
	f.IntVar(&genSol.Ny, "ny", 8, "number of divisions along y")
	f.Float64Var(&genSol.Thickness, "thickness", 1, "thickness of specimen")
	f.Float64Var(&genSol.Emax, "emax", 0.02, "maximum axial logarithmic strain")
	f.IntVar(&genSol.Nf, "nf", 11, "number of increments, including the undeformed one")
	f.Float64Var(&genMat[0], "E", 210000, "Young's modulus")
	f.Float64Var(&genMat[1], "nu", 0.3, "Poisson's coefficient")
	f.Float64Var(&genMat[2], "sy0", 250, "initial yield stress")
	f.Float64Var(&genMat[3], "h", 1000, "hardening modulus")
}

func generate(ctx context.Context) (err error) {
	genSol.Props = []float64{0, 0, genMat[0], genMat[1], 0, 1, genMat[2], genMat[3], 0, 0}
	t, err := genSol.Generate(ctx, genName, vfs.UserDefined{Types: []int{1}}, genLarge)
	if err != nil {
		return
	}
	if err = inp.WriteTest(genDir, t); err != nil {
		return
	}
	io.Pf("test %q written to %q\n", genName, genDir)
	return
}
