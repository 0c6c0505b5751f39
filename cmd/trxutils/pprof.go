package main

import (
	"context"
	"fmt"
	"os"

	"github.com/julianneswinoga/tracex-parser/pkg/pprof"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func newPPROFCommand(cfg *rootConfig) *ffcli.Command {
	fs := newFlagSet("pprof", cfg.stderr)
	var opt pprof.Options
	fs.Int64Var(&opt.TickNanos, "tick-ns", 0, "length of a timer tick in nanoseconds, sets the profile duration")
	return &ffcli.Command{
		Name:       "pprof",
		ShortUsage: "trxutils pprof [-tick-ns N] <file> <out.pprof>",
		ShortHelp:  "Convert a trace into a pprof profile of ticks per thread and service.",
		FlagSet:    fs,
		Options:    subcommandOptions(),
		Exec: func(ctx context.Context, args []string) error {
			return PPROF(cfg, args, opt)
		},
	}
}

func PPROF(cfg *rootConfig, args []string, opt pprof.Options) error {
	// Check the number of arguments
	if len(args) != 2 {
		return fmt.Errorf("expected 2 arguments, got %d", len(args))
	}

	tr, err := cfg.loadTrace(args[0])
	if err != nil {
		return err
	}

	// Open the output file
	outFile, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer outFile.Close()

	// Convert trace to pprof
	if err := pprof.Convert(tr.Events, outFile, opt); err != nil {
		return err
	}
	return outFile.Close()
}
