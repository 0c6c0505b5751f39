package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	runtimepprof "runtime/pprof"
	"runtime/trace"
	"strconv"

	"github.com/julianneswinoga/tracex-parser/pkg/breakdown"
	"github.com/julianneswinoga/tracex-parser/pkg/tracex"
	"github.com/olekukonko/tablewriter"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

// main is the entry point for the trxutils command line tool.
func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// errFilesFailed is returned after a batch in which some files could not be
// parsed. The individual errors have been reported already.
var errFilesFailed = errors.New("some trace files could not be parsed")

// run parses args and runs the selected command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := &rootConfig{stdout: stdout, stderr: stderr}
	root := newRootCommand(cfg)
	root.Subcommands = []*ffcli.Command{
		newBreakdownCommand(cfg),
		newPrintCommand(cfg),
		newObjectsCommand(cfg),
		newPPROFCommand(cfg),
	}
	if err := root.Parse(args); err != nil {
		return err
	}

	if cfg.cpuProfile != "" {
		file, err := os.Create(cfg.cpuProfile)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := runtimepprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer runtimepprof.StopCPUProfile()
	}

	if cfg.trace != "" {
		file, err := os.Create(cfg.trace)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := trace.Start(file); err != nil {
			return err
		}
		defer trace.Stop()
	}

	return root.Run(ctx)
}

func newRootCommand(cfg *rootConfig) *ffcli.Command {
	fs := newFlagSet("trxutils", cfg.stderr)
	cfg.registerFlags(fs)
	fs.String("config", "", "config file with one \"flag value\" pair per line")

	return &ffcli.Command{
		Name:       "trxutils",
		ShortUsage: "trxutils [flags] <file>... | trxutils [flags] <subcommand> [flags] <args>",
		ShortHelp:  "Decode TraceX trace buffers.",
		FlagSet:    fs,
		Options: []ff.Option{
			ff.WithEnvVarPrefix(envPrefix),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("expected at least 1 trace file")
			}
			return SummaryCommand(cfg, args)
		},
	}
}

// SummaryCommand prints an overview of every file in paths. A file that
// cannot be parsed is reported on stderr and does not stop the batch.
func SummaryCommand(cfg *rootConfig, paths []string) error {
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	failed := false
	for _, path := range paths {
		fmt.Fprintf(cfg.stdout, "Parsing %s\n", path)
		tr, err := tracex.ReadFile(path, opts)
		if err != nil {
			fmt.Fprintf(cfg.stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}
		if err := printSummary(cfg.stdout, tr, int(cfg.verbosity)); err != nil {
			return err
		}
	}
	if failed {
		return errFilesFailed
	}
	return nil
}

func printSummary(w io.Writer, tr *tracex.Trace, verbosity int) error {
	fmt.Fprintf(w, "total events: %d\n", len(tr.Events))
	fmt.Fprintf(w, "object registry size: %d\n", len(tr.Objects))
	fmt.Fprintf(w, "delta ticks: %d\n", tr.DeltaTicks())

	if verbosity >= 1 {
		fmt.Fprintln(w, "Event Histogram")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Event", "Count"})
		for _, s := range breakdown.ByEventType(tr.Events).Sorted() {
			table.Append([]string{
				strconv.FormatUint(uint64(s.ID), 10),
				s.Label(),
				strconv.FormatInt(s.Count, 10),
			})
		}
		table.Render()
	}

	if verbosity >= 2 {
		fmt.Fprintln(w, "All events")
		for _, e := range tr.Events {
			if _, err := fmt.Fprintln(w, e.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
