// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kin

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEachElement runs an element loop split into contiguous chunks, one goroutine per chunk.
// The setup function is called once per worker and returns the per-element task; this lets
// each worker own a private scratchpad (e.g. a copy of the shape structure).
// The first error cancels the remaining chunks and is returned.
func ForEachElement(ctx context.Context, ne, nworkers int, setup func(wid int) func(e int) error) error {
	if nworkers <= 0 {
		nworkers = runtime.GOMAXPROCS(0)
	}
	if nworkers > ne {
		nworkers = ne
	}
	if nworkers < 1 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	chunk := (ne + nworkers - 1) / nworkers
	for w := 0; w < nworkers; w++ {
		start, end := w*chunk, min((w+1)*chunk, ne)
		if start >= end {
			break
		}
		task := setup(w)
		g.Go(func() error {
			for e := start; e < end; e++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := task(e); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
