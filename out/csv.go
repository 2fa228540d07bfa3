// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/idf"
	"github.com/cpmech/govfm/vfm"
)

// Progress appends the best solution of each iteration to dirout/key_Progress.csv
//
//  it;fe;phi[;phi1;...;phint];x1;...;xn
//
//  Note: per-test costs are written only with more than one test
type Progress struct {
	Fn    string // file name
	Nt    int    // number of tests
	Nvars int    // number of free variables
	mu    sync.Mutex
}

// NewProgress creates the progress file, overwriting a previous one, and writes the header
func NewProgress(dirout, key string, nt, nvars int) (o *Progress, err error) {
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return nil, chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	o = &Progress{Fn: filepath.Join(dirout, key+"_Progress.csv"), Nt: nt, Nvars: nvars}
	head := []string{"it", "fe", "phi"}
	if nt > 1 {
		for i := 0; i < nt; i++ {
			head = append(head, io.Sf("phi%d", i+1))
		}
	}
	for i := 0; i < nvars; i++ {
		head = append(head, io.Sf("x%d", i+1))
	}
	return o, writeRecords(o.Fn, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, [][]string{head})
}

// Write appends one snapshot
func (o *Progress) Write(s idf.Snapshot) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	rec := []string{strconv.Itoa(s.Nit), strconv.Itoa(s.Nfev), num(s.Cost)}
	if o.Nt > 1 {
		for i := 0; i < o.Nt; i++ {
			rec = append(rec, num(at(s.Costs, i)))
		}
	}
	for i := 0; i < o.Nvars; i++ {
		rec = append(rec, num(at(s.X, i)))
	}
	return writeRecords(o.Fn, os.O_APPEND|os.O_WRONLY, [][]string{rec})
}

// WriteVirtualWork writes the internal and external virtual work of one test
//
//  dirout/key_IVW.csv and dirout/key_EVW.csv:  inc;<field1>;...;<fieldn>
func WriteVirtualWork(dirout, key string, r *vfm.Result) (err error) {
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	for _, c := range []struct {
		suffix string
		work   [][]float64
	}{
		{"_IVW.csv", r.Ivw},
		{"_EVW.csv", r.Evw},
	} {
		head := []string{"inc"}
		for v := range c.work {
			head = append(head, fieldLabel(r, v))
		}
		recs := [][]string{head}
		nf := 0
		if len(c.work) > 0 {
			nf = len(c.work[0])
		}
		for inc := 0; inc < nf; inc++ {
			rec := []string{strconv.Itoa(inc)}
			for v := range c.work {
				rec = append(rec, num(c.work[v][inc]))
			}
			recs = append(recs, rec)
		}
		if err = writeRecords(filepath.Join(dirout, key+c.suffix), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, recs); err != nil {
			return
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func writeRecords(fn string, flag int, recs [][]string) (err error) {
	f, err := os.OpenFile(fn, flag, 0644)
	if err != nil {
		return chk.Err("cannot open file %q:\n%v", fn, err)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err = w.WriteAll(recs); err != nil {
		f.Close()
		return chk.Err("cannot write file %q:\n%v", fn, err)
	}
	return f.Close()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'e', 12, 64)
}

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return math.NaN()
}

func fieldLabel(r *vfm.Result, v int) string {
	if v < len(r.Fields) && r.Fields[v].Name != "" {
		return r.Fields[v].Name
	}
	return io.Sf("vf%d", v+1)
}
