// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// govfm identifies material properties from full-field measurements with the Virtual Fields Method
//
// Usage:
//
//	govfm run tension.yaml                      identification or simulation
//	govfm reference tension.yaml -t Tension     reference force of a test from known properties
//	govfm generate -o input/Tension             synthetic uniaxial tension test
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/govfm/out"
	"github.com/spf13/cobra"
)

// global flags
var (
	showMsg   bool   // show messages
	logLevel  string // debug, info, warn or error
	logFormat string // text or json
)

var rootCmd = &cobra.Command{
	Use:           "govfm",
	Short:         "Virtual Fields Method identification of material properties",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return chk.Err("log level %q is invalid", logLevel)
		}
		out.InitLog(level, logFormat, nil)
		io.Verbose = showMsg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&showMsg, "verbose", "v", true, "show messages")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.AddCommand(runCmd, referenceCmd, generateCmd)
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose, io.Verbose = true, true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		io.Verbose = true
		io.PfRed("ERROR: %v\n", err)
		stop()
		os.Exit(1)
	}
}
