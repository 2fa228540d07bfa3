// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// property vectors used in tests
var (
	propsHill = []float64{0, 0, 200000, 0.3, 1, 0.257171, 0.357013, 0.642987, 1.5, 1.5, 2.75409, 1, 256, 855, 0, 0}
	propsSwift = []float64{0, 0, 210000, 0.3, 0, 2, 565, 7.81e-3, 0.26, 0, 0}
	propsLin   = []float64{0, 0, 200000, 0.3, 0, 1, 250, 1000, 0, 0}
)
