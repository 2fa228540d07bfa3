// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// VTK codes
const (
	VTK_QUAD       = 9
	VTK_HEXAHEDRON = 12
)

// natural coordinates of hex8r vertices
var hex8rNat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1},
	{-1, -1, -1, -1, 1, 1, 1, 1},
	{1, 1, -1, -1, 1, 1, -1, -1},
}

func init() {
	o := new(Shape)
	o.Type = "hex8r"
	o.Func = Hex8rFunc
	o.Gndim = 3
	o.Nverts = 8
	o.VtkCode = VTK_HEXAHEDRON
	o.NatVol = 8
	o.NatCoords = hex8rNat
	o.init_scratchpad()
	factory[o.Type] = o
}

// Hex8rFunc calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//  Note: vertex n sits at (ξn, ηn, ζn) given by hex8rNat, i.e. the bottom face (η = -1)
//        holds vertices 0..3 and the top face (η = +1) holds vertices 4..7
func Hex8rFunc(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	for n := 0; n < 8; n++ {
		ξ, η, ζ := hex8rNat[0][n], hex8rNat[1][n], hex8rNat[2][n]
		S[n] = (1.0 + ξ*r) * (1.0 + η*s) * (1.0 + ζ*t) / 8.0
		if derivs {
			dSdR[n][0] = ξ * (1.0 + η*s) * (1.0 + ζ*t) / 8.0
			dSdR[n][1] = η * (1.0 + ξ*r) * (1.0 + ζ*t) / 8.0
			dSdR[n][2] = ζ * (1.0 + ξ*r) * (1.0 + η*s) / 8.0
		}
	}
}
