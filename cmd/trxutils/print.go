package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianneswinoga/tracex-parser/pkg/print"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func newPrintCommand(cfg *rootConfig) *ffcli.Command {
	fs := newFlagSet("print", cfg.stderr)
	filter := print.DefaultEventFilter()
	fs.Int64Var(&filter.MinTs, "min-ts", filter.MinTs, "only print events at or after this timestamp (-1 for no limit)")
	fs.Int64Var(&filter.MaxTs, "max-ts", filter.MaxTs, "only print events at or before this timestamp (-1 for no limit)")
	fs.StringVar(&filter.Thread, "thread", "", "only print events of this thread (name or pointer)")
	ids := fs.String("id", "", "comma separated event ids to print")
	fs.BoolVar(&filter.JSON, "json", false, "print one JSON object per event")

	return &ffcli.Command{
		Name:       "print",
		ShortUsage: "trxutils print [flags] <file>",
		ShortHelp:  "Print the decoded events of a trace.",
		FlagSet:    fs,
		Options:    subcommandOptions(),
		Exec: func(ctx context.Context, args []string) error {
			var err error
			if filter.IDs, err = parseIDs(*ids); err != nil {
				return err
			}
			return PrintEvents(cfg, args, filter)
		},
	}
}

func PrintEvents(cfg *rootConfig, args []string, filter print.EventFilter) error {
	// Check the number of arguments
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %d", len(args))
	}

	tr, err := cfg.loadTrace(args[0])
	if err != nil {
		return err
	}

	// Print all events to stdout
	stdout := bufio.NewWriter(cfg.stdout)
	defer stdout.Flush()
	return print.Events(stdout, tr.Events, filter)
}

// parseIDs parses a list like "83,88,0x58".
func parseIDs(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	var ids []uint32
	for _, f := range strings.Split(s, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(f), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("bad event id %q: %w", f, err)
		}
		ids = append(ids, uint32(id))
	}
	return ids, nil
}
