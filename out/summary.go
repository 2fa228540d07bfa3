// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"fmt"
	goio "io"
	"strings"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/idf"
	"github.com/cpmech/govfm/vfm"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary writes the summary of an identification
//  names -- names of free variables
//  tests -- names of tests
func Summary(w goio.Writer, res *idf.Result, names, tests []string) {
	header(w)
	fmt.Fprintf(w, "\n  Termination : %s\n", res.Message)
	fmt.Fprintf(w, "  Iterations  : %d\n", res.Nit)
	fmt.Fprintf(w, "  Evaluations : %d\n", res.Nfev)
	fmt.Fprintf(w, "  Time        : %s\n", Duration(res.Elapsed))
	fmt.Fprintf(w, "\n")
	tab := newTable(w, "variable", "best")
	for i, x := range res.X {
		name := io.Sf("x%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		tab.AppendRow(table.Row{name, num(x)})
	}
	tab.Render()
	costs(w, res.Cost, res.Costs, tests)
}

// SummarySimulation writes the summary of a simulation
func SummarySimulation(w goio.Writer, ev *vfm.Evaluation, tests []string) {
	header(w)
	for _, r := range ev.Results {
		if !r.Success {
			fmt.Fprintf(w, "\n  %s: stress reconstruction failed: %v\n", r.Test, r.Err)
		}
	}
	costs(w, ev.Cost, ev.Costs(), tests)
}

// Duration formats a duration as 00h00m00s
func Duration(d time.Duration) string {
	s := int(d.Seconds())
	return io.Sf("%02dh%02dm%02ds", s/3600, (s%3600)/60, s%60)
}

func header(w goio.Writer) {
	title := " Summary "
	sep := strings.Repeat("-", len(title))
	fmt.Fprintf(w, "\n%18s%s\n%18s%s\n%18s%s\n", "", sep, "", title, "", sep)
}

func costs(w goio.Writer, total float64, costs []float64, tests []string) {
	fmt.Fprintf(w, "\n")
	tab := newTable(w, "test", "cost")
	if len(costs) > 1 {
		for i, c := range costs {
			name := io.Sf("%d", i+1)
			if i < len(tests) {
				name = tests[i]
			}
			tab.AppendRow(table.Row{name, num(c)})
		}
		tab.AppendSeparator()
	}
	tab.AppendRow(table.Row{"Total", num(total)})
	tab.Render()
}

// newTable returns a table writer rendering to w
func newTable(w goio.Writer, cols ...string) table.Writer {
	tab := table.NewWriter()
	tab.SetOutputMirror(w)
	tab.SetStyle(table.StyleLight)
	head := make(table.Row, len(cols))
	for i, c := range cols {
		head[i] = c
	}
	tab.AppendHeader(head)
	return tab
}
