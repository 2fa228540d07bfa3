// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/idf"
	"github.com/cpmech/govfm/inp"
	"github.com/cpmech/govfm/out"
	"github.com/cpmech/govfm/vfm"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <options.yaml>",
	Short: "Run an identification or a simulation",
	Long: `Run reads the options file and the data of all tests, then either identifies the free
properties (run: identification) or evaluates the initial ones (run: simulation).
Results are written to the output directory: summary and log, progress, virtual work
and, optionally, VTU/PVD files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0])
	},
}

func run(ctx context.Context, fnamepath string) (err error) {

	// input data
	opts, err := inp.ReadOptions(fnamepath)
	if err != nil {
		return
	}
	tests, err := opts.ReadTests()
	if err != nil {
		return
	}
	props, free, bounds, names := opts.GetProps()
	cs, err := opts.GetConstraints()
	if err != nil {
		return
	}

	// output directory and log file
	if err = os.MkdirAll(opts.DirOut, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", opts.DirOut, err)
	}
	logfile, err := os.Create(filepath.Join(opts.DirOut, opts.Key+".log"))
	if err != nil {
		return chk.Err("cannot create log file:\n%v", err)
	}
	defer logfile.Close()
	var console goio.Writer = goio.Discard
	if io.Verbose {
		console = os.Stdout
	}
	w := goio.MultiWriter(console, logfile)
	log := out.NewLog("run")

	// message
	io.Pf("\ngovfm -- Virtual Fields Method\n\n")
	io.Pf("%-20s : %s\n", "options file", fnamepath)
	io.Pf("%-20s : %s\n", "run kind", opts.Run)
	io.Pf("%-20s : %v\n", "large deformation", opts.Nlgeom)
	io.Pf("%-20s : %d\n", "number of tests", len(tests))
	io.Pf("%-20s : %s\n\n", "output directory", opts.DirOut)

	// problem
	pb := &vfm.Problem{
		Tests:     tests,
		Free:      free,
		Names:     names,
		Large:     opts.Nlgeom,
		Normalize: opts.Normalize,
		Nworkers:  opts.Nworkers,
	}
	if err = pb.Init(ctx); err != nil {
		return
	}
	id := &idf.Identifier{
		Problem:     pb,
		Props:       props,
		Free:        free,
		Bounds:      bounds,
		Constraints: cs,
		Log:         out.NewLog("idf"),
	}
	tnames := make([]string, len(tests))
	for i, t := range tests {
		tnames[i] = t.Name
	}

	// simulation
	var ev *vfm.Evaluation
	if opts.Run == inp.Simulation {
		if props, ev, err = id.Simulate(ctx); err != nil {
			return
		}
		out.SummarySimulation(w, ev, tnames)
		log.Info("simulation finished", "cost", ev.Cost, "success", ev.Success)
		return report(opts, tests, ev)
	}

	// identification
	if id.Algorithm, err = opts.GetAlgorithm(); err != nil {
		return
	}
	prog, err := out.NewProgress(opts.DirOut, opts.Key, len(tests), id.Nvars())
	if err != nil {
		return
	}
	id.Session = idf.NewSession()
	id.Session.OnIteration = func(s idf.Snapshot) {
		if e := prog.Write(s); e != nil {
			log.Warn("cannot write progress", "err", e)
		}
		io.Pf("%6d %8d %19.12e %v\n", s.Nit, s.Nfev, s.Cost, s.X)
	}
	io.Pf("%6s %8s %19s %s\n", "it", "fe", "cost", "x")
	res, err := id.Identify(ctx)
	if err != nil {
		return
	}
	var fnames []string
	for i, f := range free {
		if f {
			fnames = append(fnames, names[i])
		}
	}
	out.Summary(w, res, fnames, tnames)

	// post-processing
	if ev, err = pb.PostProcess(ctx, res.Props); err != nil {
		return
	}
	return report(opts, tests, ev)
}

// report writes the virtual work and VTU files of all tests
func report(opts *inp.Options, tests []*vfm.Test, ev *vfm.Evaluation) (err error) {
	for i, t := range tests {
		dir, key := opts.DirOut, opts.Key
		if len(tests) > 1 {
			dir, key = filepath.Join(opts.DirOut, t.Name), t.Name
		}
		if err = out.WriteVirtualWork(dir, key, ev.Results[i]); err != nil {
			return
		}
		if opts.Vtu {
			if err = out.WriteVtu(dir, key, t, ev.Results[i]); err != nil {
				return
			}
		}
	}
	return
}
