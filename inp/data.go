// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/csv"
	"errors"
	"fmt"
	goio "io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/vfm"
)

// ReadTest reads the data files of one test
//
//  dir/name_Nodes.csv        id;X;Y[;Z]          reference coordinates
//  dir/name_Elements.csv     id;n0;n1;...        connectivity (zero-based node indices)
//  dir/name_U_<i>.csv        id;ux;uy[;uz]       displacements of increment i = 0,1,...
//  dir/name_Force.csv        time;Fx;Fy[;Fz]     time and loading force of each increment
//  dir/name_Thickness.csv    thickness           optional in 3D
//  dir/name_Orientation.csv  angle (degrees)     optional
//
//  Note: files are ';' delimited with one header row
func ReadTest(dir, name string) (t *vfm.Test, err error) {

	// new test
	t = &vfm.Test{Name: name}
	base := filepath.Join(dir, name)

	// nodes
	nodes, err := readTable(base + "_Nodes.csv")
	if err != nil {
		return nil, err
	}
	if len(nodes) < 2 {
		return nil, chk.Err("test %q: at least two nodes are required", name)
	}
	t.X = make([][]float64, len(nodes))
	for i, row := range nodes {
		t.X[i] = row[1:]
	}
	nn, dof := len(t.X), len(t.X[0])
	if dof != 2 && dof != 3 {
		return nil, chk.Err("test %q: nodes must have 2 or 3 coordinates. %d is invalid", name, dof)
	}

	// elements
	elems, err := readTable(base + "_Elements.csv")
	if err != nil {
		return nil, err
	}
	if len(elems) < 1 {
		return nil, chk.Err("test %q: at least one element is required", name)
	}
	t.Conn = make([][]int, len(elems))
	for e, row := range elems {
		t.Conn[e] = make([]int, len(row)-1)
		for m, v := range row[1:] {
			n := int(v)
			if float64(n) != v || n < 0 || n >= nn {
				return nil, chk.Err("test %q: node %v of element %d is out of range [0, %d)", name, v, e, nn)
			}
			t.Conn[e][m] = n
		}
	}

	// displacements
	for i := 0; ; i++ {
		fn := io.Sf("%s_U_%d.csv", base, i)
		if _, e := os.Stat(fn); errors.Is(e, fs.ErrNotExist) {
			break
		}
		rows, err := readTable(fn)
		if err != nil {
			return nil, err
		}
		if len(rows) != nn {
			return nil, chk.Err("test %q: number of displacements in %q (%d) must be equal to the number of nodes (%d)", name, fn, len(rows), nn)
		}
		U := make([][]float64, nn)
		for n, row := range rows {
			if len(row)-1 != dof {
				return nil, chk.Err("test %q: displacements in %q must have %d components", name, fn, dof)
			}
			U[n] = row[1:]
		}
		t.U = append(t.U, U)
	}
	nf := len(t.U)
	if nf < 2 {
		return nil, chk.Err("test %q: at least two displacement files are required. nf = %d", name, nf)
	}

	// force
	force, err := readTable(base + "_Force.csv")
	if err != nil {
		return nil, err
	}
	if len(force) != nf {
		return nil, chk.Err("test %q: number of force rows (%d) must be equal to the number of displacement files (%d)", name, len(force), nf)
	}
	t.Time = make([]float64, nf)
	t.Force = make([][]float64, nf)
	for i, row := range force {
		if len(row)-1 != dof {
			return nil, chk.Err("test %q: force must have %d components", name, dof)
		}
		t.Time[i], t.Force[i] = row[0], row[1:]
	}

	// thickness and orientation
	if t.Thickness, err = readScalar(base+"_Thickness.csv", dof == 2); err != nil {
		return nil, err
	}
	if t.Orientation, err = readScalar(base+"_Orientation.csv", false); err != nil {
		return nil, err
	}
	return
}

// ReadTests reads the data of all tests and sets their symmetry conditions and virtual fields
func (o *Options) ReadTests() (tests []*vfm.Test, err error) {
	tests = make([]*vfm.Test, len(o.Tests))
	for i, td := range o.Tests {
		t, err := ReadTest(td.Dir, td.Name)
		if err != nil {
			return nil, err
		}
		t.Symmetry = td.Symmetry
		if t.Strategy, err = td.GetStrategy(); err != nil {
			return nil, err
		}
		tests[i] = t
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// readTable reads a ';' delimited file of numbers, skipping the header row
func readTable(fn string) (rows [][]float64, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open file %q:\n%v", fn, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	header := true
	for {
		rec, err := r.Read()
		if err == goio.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", fn, err)
		}
		if header {
			header = false
			continue
		}
		if len(rows) > 0 && len(rec) != len(rows[0]) {
			return nil, chk.Err("file %q: line %d has %d columns; %d are expected", fn, len(rows)+2, len(rec), len(rows[0]))
		}
		row := make([]float64, len(rec))
		for j, s := range rec {
			if row[j], err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
				return nil, chk.Err("file %q: line %d: cannot parse %q", fn, len(rows)+2, s)
			}
		}
		rows = append(rows, row)
	}
	return
}

// readScalar reads the last value of the first data row; missing optional files give zero
func readScalar(fn string, required bool) (float64, error) {
	if _, err := os.Stat(fn); errors.Is(err, fs.ErrNotExist) && !required {
		return 0, nil
	}
	rows, err := readTable(fn)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, chk.Err("file %q has no data", fn)
	}
	return rows[0][len(rows[0])-1], nil
}

// WriteTest writes the data files of one test; see ReadTest
func WriteTest(dir string, t *vfm.Test) (err error) {
	if err = os.MkdirAll(dir, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	base := filepath.Join(dir, t.Name)
	dof := len(t.X[0])
	xyz := []string{"X", "Y", "Z"}[:dof]
	uvw := []string{"ux", "uy", "uz"}[:dof]

	// nodes and elements
	if err = writeTable(base+"_Nodes.csv", append([]string{"Node"}, xyz...), t.X, true); err != nil {
		return
	}
	conn := make([][]float64, len(t.Conn))
	head := []string{"Element"}
	for e, verts := range t.Conn {
		conn[e] = make([]float64, len(verts))
		for m, n := range verts {
			conn[e][m] = float64(n)
		}
	}
	for m := range t.Conn[0] {
		head = append(head, io.Sf("n%d", m))
	}
	if err = writeTable(base+"_Elements.csv", head, conn, true); err != nil {
		return
	}

	// displacements
	for i, U := range t.U {
		if err = writeTable(io.Sf("%s_U_%d.csv", base, i), append([]string{"Node"}, uvw...), U, true); err != nil {
			return
		}
	}

	// force, thickness and orientation
	if err = WriteForce(dir, t.Name, t.Time, t.Force); err != nil {
		return
	}
	if err = writeTable(base+"_Thickness.csv", []string{"Thickness"}, [][]float64{{t.Thickness}}, false); err != nil {
		return
	}
	return writeTable(base+"_Orientation.csv", []string{"Orientation"}, [][]float64{{t.Orientation}}, false)
}

// WriteForce writes dir/name_Force.csv
func WriteForce(dir, name string, time []float64, force [][]float64) error {
	rows := make([][]float64, len(force))
	for i, f := range force {
		rows[i] = append([]float64{time[i]}, f...)
	}
	head := []string{"Time", "X", "Y", "Z"}[:1+len(force[0])]
	return writeTable(filepath.Join(dir, name+"_Force.csv"), head, rows, false)
}

// writeTable writes a ';' delimited file of numbers with a header row
//  ids -- prepend a zero-based id column
func writeTable(fn string, head []string, rows [][]float64, ids bool) (err error) {
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create file %q:\n%v", fn, err)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	w.Write(head)
	for i, row := range rows {
		var rec []string
		if ids {
			rec = append(rec, strconv.Itoa(i))
		}
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		w.Write(rec)
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()
		return chk.Err("cannot write file %q:\n%v", fn, err)
	}
	return f.Close()
}
