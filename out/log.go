// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output of identification and simulation runs: VTU/PVD files,
// progress and virtual work CSV files, summaries and structured logs
package out

import (
	goio "io"
	"log/slog"
	"os"
)

// InitLog configures the default structured logger
//  format -- "text" or "json"
//  w      -- destination; os.Stderr if nil
func InitLog(level slog.Level, format string, w goio.Writer) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// NewLog returns a logger tagged with a component name
func NewLog(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
