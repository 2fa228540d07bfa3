// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cpmech/govfm/kin"
	"github.com/cpmech/govfm/msolid"
	"github.com/cpmech/govfm/ten"
	"gonum.org/v1/gonum/mat"
)

// ErrReconstruction is matched by all errors of the constitutive integration
var ErrReconstruction = errors.New("stress reconstruction failed")

// ReconstructionError holds the failure of the constitutive integration of one element
//  Note: Eid and Inc are -1 if the model could not be allocated
type ReconstructionError struct {
	Eid int   // element
	Inc int   // increment
	Err error // cause
}

func (o *ReconstructionError) Error() string {
	if o.Eid < 0 {
		return fmt.Sprintf("%v: %v", ErrReconstruction, o.Err)
	}
	return fmt.Sprintf("%v: element %d increment %d: %v", ErrReconstruction, o.Eid, o.Inc, o.Err)
}

func (o *ReconstructionError) Unwrap() error { return o.Err }

func (o *ReconstructionError) Is(target error) bool { return target == ErrReconstruction }

// Stress holds the reconstructed stress history of a test
type Stress struct {
	Sig   [][]*mat.Dense // [nf][ne] Cauchy stress; global frame
	Voigt [][]float64    // [nf][ne·ntens] Cauchy stress; global frame; Voigt; see Get
	Eqps  [][]float64    // [nf][ne] equivalent plastic strain
	EpsP  [][][]float64  // [nf][ne][ntens] plastic strain; global frame; engineering Voigt
	E33   [][]float64    // [nf][ne] thickness strain of plane stress problems; zero in 3D
	Ntens int            // number of Voigt components
}

// Get returns the Voigt stress of element e at increment inc
func (o *Stress) Get(inc, e int) []float64 {
	return o.Voigt[inc][e*o.Ntens : (e+1)*o.Ntens]
}

// Reconstruct integrates the constitutive model over all increments of a test
//  The integration is sequential over increments (path dependence) and parallel over elements.
//  Failures are returned as *ReconstructionError
func Reconstruct(ctx context.Context, t *Test, props []float64, factory msolid.Factory, nworkers int) (o *Stress, err error) {

	// model
	k := t.Kin
	mdl, err := factory(props, k.Dof)
	if err != nil {
		return nil, &ReconstructionError{-1, -1, err}
	}
	nstatev := mdl.Nstatev()
	ν := mdl.Poisson()

	// allocate
	o = &Stress{Ntens: k.Ntens}
	o.Sig = make([][]*mat.Dense, k.Nf)
	o.Voigt = make([][]float64, k.Nf)
	o.Eqps = make([][]float64, k.Nf)
	o.EpsP = make([][][]float64, k.Nf)
	o.E33 = make([][]float64, k.Nf)
	for inc := 0; inc < k.Nf; inc++ {
		o.Sig[inc] = make([]*mat.Dense, k.Ne)
		o.Voigt[inc] = make([]float64, k.Ne*k.Ntens)
		o.Eqps[inc] = make([]float64, k.Ne)
		o.EpsP[inc] = make([][]float64, k.Ne)
		o.E33[inc] = make([]float64, k.Ne)
	}

	// element loop
	err = kin.ForEachElement(ctx, k.Ne, nworkers, func(wid int) func(e int) error {
		σ := make([]float64, k.Ntens)
		sv := make([]float64, nstatev)
		Δε := make([]float64, k.Ntens)
		return func(e int) (err error) {
			for i := range σ {
				σ[i] = 0
			}
			for i := range sv {
				sv[i] = 0
			}
			o.store(t, 0, e, σ, sv, ν)
			for inc := 1; inc < k.Nf; inc++ {
				for i := 0; i < k.Ntens; i++ {
					Δε[i] = k.Strain[inc][e][i] - k.Strain[inc-1][e][i]
				}
				err = mdl.Update(σ, sv, k.Strain[inc][e], Δε, e, inc)
				if err != nil {
					return &ReconstructionError{e, inc, err}
				}
				o.store(t, inc, e, σ, sv, ν)
			}
			return
		}
	})
	if err != nil {
		return nil, err
	}
	return
}

// store rotates the material-frame results of one element to the global frame and saves them
func (o *Stress) store(t *Test, inc, e int, σ, sv []float64, ν float64) {
	k := t.Kin
	R := k.Rot[inc][e]
	o.Sig[inc][e] = ten.Rotate(ten.ToTensor(σ, false), R, t.Rotm, ten.ToGlobal)
	copy(o.Get(inc, e), ten.ToVoigt(o.Sig[inc][e], false))
	if len(sv) > 0 {
		o.Eqps[inc][e] = sv[0]
	}
	εp := make([]float64, k.Ntens)
	if len(sv) > k.Ntens {
		copy(εp, sv[1:1+k.Ntens])
	}
	if k.Dof == 2 {
		o.E33[inc][e] = Strain33(k.Strain[inc][e], εp, ν)
	}
	o.EpsP[inc][e] = ten.RotateVoigt(εp, R, t.Rotm, ten.ToGlobal, true)
}

// Strain33 computes the thickness strain of plane stress problems
//  ε  -- [3] total strain; material frame
//  εp -- [3] plastic strain; material frame
func Strain33(ε, εp []float64, ν float64) float64 {
	ε12 := ε[0] + ε[1]
	εp12 := εp[0] + εp[1]
	return -ν/(1.0-ν)*(ε12-εp12) - εp12
}

// PiolaKirchhoffField computes the first Piola-Kirchhoff stress of all elements at all increments
func PiolaKirchhoffField(k *kin.Kinematics, s *Stress) (P [][]*mat.Dense) {
	P = make([][]*mat.Dense, k.Nf)
	for inc := 0; inc < k.Nf; inc++ {
		P[inc] = make([]*mat.Dense, k.Ne)
		for e := 0; e < k.Ne; e++ {
			P[inc][e] = ten.PiolaKirchhoff(s.Sig[inc][e], k.F[inc][e], s.E33[inc][e])
		}
	}
	return
}
