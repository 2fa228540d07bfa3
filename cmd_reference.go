// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/inp"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/out"
	"github.com/cpmech/govfm/vfm"
	"github.com/cpmech/govfm/vfs"
	"github.com/spf13/cobra"
)

// reference flags
var (
	refTest  string // name of test
	refField int    // user-defined field type
	refDir   int    // loading direction
	refVtu   bool   // export VTU files
)

var referenceCmd = &cobra.Command{
	Use:   "reference <options.yaml>",
	Short: "Compute the reference force of a test from known properties",
	Long: `Reference computes the loading force that balances the internal virtual work of a
user-defined virtual field, using the initial properties of the options file. The force
file of the test is replaced and the previous one is kept as <name>_ForceFEM.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reference(cmd.Context(), args[0])
	},
}

func init() {
	referenceCmd.Flags().StringVarP(&refTest, "test", "t", "", "name of test; default is the first test")
	referenceCmd.Flags().IntVar(&refField, "field", 1, "user-defined virtual field type")
	referenceCmd.Flags().IntVar(&refDir, "dir", 1, "loading direction: 0, 1 or 2")
	referenceCmd.Flags().BoolVar(&refVtu, "vtu", false, "export VTU/PVD files to the test directory")
}

func reference(ctx context.Context, fnamepath string) (err error) {

	// input data
	opts, err := inp.ReadOptions(fnamepath)
	if err != nil {
		return
	}
	td := opts.Tests[0]
	if refTest != "" {
		td = nil
		for _, d := range opts.Tests {
			if d.Name == refTest {
				td = d
			}
		}
		if td == nil {
			return chk.Err("test %q is not defined in %q", refTest, fnamepath)
		}
	}
	t, err := inp.ReadTest(td.Dir, td.Name)
	if err != nil {
		return
	}
	props, _, _, _ := opts.GetProps()
	cs, err := opts.GetConstraints()
	if err != nil {
		return
	}
	if err = cs.Apply(props); err != nil {
		return
	}

	// reference force
	t.Symmetry = td.Symmetry
	t.Strategy = vfs.UserDefined{Types: []int{refField}}
	if err = t.Init(ctx, opts.Nlgeom, opts.Nworkers); err != nil {
		return
	}
	if t.Force, err = vfm.ReferenceForce(ctx, t, props, 0, refDir, opts.Nlgeom, msolid.New, opts.Nworkers); err != nil {
		return
	}

	// replace force file
	base := filepath.Join(td.Dir, td.Name)
	if err = os.Rename(base+"_Force.csv", base+"_ForceFEM.csv"); err != nil {
		return chk.Err("cannot keep previous force file:\n%v", err)
	}
	if err = inp.WriteForce(td.Dir, td.Name, t.Time, t.Force); err != nil {
		return
	}
	io.Pf("reference force of test %q written to %q\n", td.Name, base+"_Force.csv")
	out.NewLog("reference").Info("force written", "test", td.Name, "field", refField, "dir", refDir)

	// post-processing
	if !refVtu {
		return
	}
	pb := &vfm.Problem{Tests: []*vfm.Test{t}, Large: opts.Nlgeom, Nworkers: opts.Nworkers}
	ev, err := pb.PostProcess(ctx, props)
	if err != nil {
		return
	}
	return out.WriteVtu(td.Dir, td.Name, t, ev.Results[0])
}
