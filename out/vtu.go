// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/ten"
	"github.com/cpmech/govfm/vfm"
	"gonum.org/v1/gonum/mat"
)

// VTK cell types
var vtkCodes = map[int]int{
	4: 9,  // qua4
	8: 12, // hex8
}

// WriteVtu writes one VTU file per increment of a test and the PVD collection
//  r -- results of vfm.Problem.PostProcess; may be nil or have failed, in which case only
//       kinematic data is written
//  Files: dirout/key_<inc>.vtu and dirout/key.pvd
func WriteVtu(dirout, key string, t *vfm.Test, r *vfm.Result) (err error) {

	// check
	k := t.Kin
	if k == nil {
		return chk.Err("test %q is not initialised", t.Name)
	}
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}

	// topology
	geo := new(bytes.Buffer)
	if err = topology(geo, t); err != nil {
		return
	}

	// increments
	var pvd bytes.Buffer
	io.Ff(&pvd, "<?xml version=\"1.0\"?>\n<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n<Collection>\n")
	for inc := 0; inc < k.Nf; inc++ {
		dat := new(bytes.Buffer)
		pdataWrite(dat, t, r, inc)
		cdataWrite(dat, t, r, inc)
		fn := io.Sf("%s_%d.vtu", key, inc)
		if err = vtuWrite(filepath.Join(dirout, fn), len(t.X), len(t.Conn), geo, dat); err != nil {
			return
		}
		io.Ff(&pvd, "<DataSet timestep=\"%g\" file=\"%s\"/>\n", t.Time[inc], fn)
	}
	io.Ff(&pvd, "</Collection>\n</VTKFile>\n")
	return writeFile(filepath.Join(dirout, key+".pvd"), &pvd)
}

// headers and footers ///////////////////////////////////////////////////////////////////////////////

func vtuWrite(fn string, nv, nc int, geo, dat *bytes.Buffer) error {
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	return writeFile(fn, &hdr, geo, dat, &foo)
}

func writeFile(fn string, buffers ...*bytes.Buffer) error {
	var b bytes.Buffer
	for _, buf := range buffers {
		b.Write(buf.Bytes())
	}
	if err := os.WriteFile(fn, b.Bytes(), 0644); err != nil {
		return chk.Err("cannot write file %q:\n%v", fn, err)
	}
	return nil
}

// topology ////////////////////////////////////////////////////////////////////////////////////////

func topology(buf *bytes.Buffer, t *vfm.Test) error {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, x := range t.X {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", x[0], x[1], comp(x, 2))
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, verts := range t.Conn {
		for _, n := range verts {
			io.Ff(buf, "%d ", n)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, verts := range t.Conn {
		offset += len(verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for e, verts := range t.Conn {
		code, ok := vtkCodes[len(verts)]
		if !ok {
			return chk.Err("cannot handle element %d with %d nodes", e, len(verts))
		}
		io.Ff(buf, "%d ", code)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
	return nil
}

// points data /////////////////////////////////////////////////////////////////////////////////////

func pdataWrite(buf *bytes.Buffer, t *vfm.Test, r *vfm.Result, inc int) {
	io.Ff(buf, "<PointData Vectors=\"U\">\n")
	U := t.U[inc]
	darray(buf, "X", 3, len(t.X), func(n, i int) float64 { return comp(t.X[n], i) + comp(U[n], i) })
	darray(buf, "U", 3, len(t.X), func(n, i int) float64 { return comp(U[n], i) })
	if r != nil {
		for _, f := range r.Fields {
			if δu := f.Nodal(inc); δu != nil {
				darray(buf, "VU:"+f.Name, 3, len(t.X), func(n, i int) float64 { return comp(δu[n], i) })
			}
		}
	}
	io.Ff(buf, "</PointData>\n")
}

// cells data //////////////////////////////////////////////////////////////////////////////////////

func cdataWrite(buf *bytes.Buffer, t *vfm.Test, r *vfm.Result, inc int) {

	// kinematics
	io.Ff(buf, "<CellData Scalars=\"VOL\">\n")
	k := t.Kin
	ne, ntens, dof := k.Ne, k.Ntens, k.Dof
	darray(buf, "eid", 1, ne, func(e, _ int) float64 { return float64(e) })
	darray(buf, "VOL", 1, ne, func(e, _ int) float64 { return k.Vol[e] })
	LE := make([][]float64, ne)
	for e := range LE {
		LE[e] = ten.RotateVoigt(k.Strain[inc][e], k.Rot[inc][e], t.Rotm, ten.ToGlobal, true)
	}
	darray(buf, "LE", ntens, ne, func(e, i int) float64 { return LE[e][i] })

	// virtual fields
	if r != nil {
		for _, f := range r.Fields {
			darray(buf, "VF:"+f.Name, dof*dof, ne, func(e, i int) float64 { return f.Grad(inc, e).At(i/dof, i%dof) })
		}
	}

	// stresses
	if r == nil || r.Stress == nil {
		io.Ff(buf, "</CellData>\n")
		return
	}
	s := r.Stress
	darray(buf, "S", ntens, ne, func(e, i int) float64 { return s.Get(inc, e)[i] })
	darray(buf, "SH", 1, ne, func(e, _ int) float64 { return ten.Hydrostatic(s.Sig[inc][e]) })
	darray(buf, "MISES", 1, ne, func(e, _ int) float64 { return mises(s.Sig[inc][e]) })
	darray(buf, "PEEQ", 1, ne, func(e, _ int) float64 { return s.Eqps[inc][e] })
	darray(buf, "PE", ntens, ne, func(e, i int) float64 { return s.EpsP[inc][e][i] })
	if dof == 2 {
		darray(buf, "E33", 1, ne, func(e, _ int) float64 { return s.E33[inc][e] })
	}
	if r.P != nil {
		darray(buf, "PK", dof*dof, ne, func(e, i int) float64 { return r.P[inc][e].At(i/dof, i%dof) })
	}

	// stress sensitivities
	for v, sens := range r.Sens {
		ncomp := len(sens.Total[inc]) / ne
		name := "dS:" + r.Fields[v].Name
		darray(buf, name, ncomp, ne, func(e, c int) float64 { return sens.Total[inc][c*ne+e] })
	}
	io.Ff(buf, "</CellData>\n")
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// darray writes a data array with n tuples of ncomp components
func darray(buf *bytes.Buffer, name string, ncomp, n int, value func(i, c int) float64) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", name, ncomp)
	for i := 0; i < n; i++ {
		for c := 0; c < ncomp; c++ {
			io.Ff(buf, "%23.15e ", value(i, c))
		}
	}
	io.Ff(buf, "\n</DataArray>\n")
}

// comp returns x[i] or zero if x has fewer components
func comp(x []float64, i int) float64 {
	if i < len(x) {
		return x[i]
	}
	return 0
}

// mises returns the von Mises equivalent stress
//  Note: in 2D, σ33 = 0 and the out-of-plane deviatoric component is -p
func mises(σ mat.Matrix) float64 {
	s := ten.Deviatoric(σ)
	ss := ten.Dot(s, s)
	if dof, _ := σ.Dims(); dof == 2 {
		p := ten.Hydrostatic(σ)
		ss += p * p
	}
	return math.Sqrt(1.5 * ss)
}
