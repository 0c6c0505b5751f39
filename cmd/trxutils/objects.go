package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/julianneswinoga/tracex-parser/internal/hexf"
	"github.com/olekukonko/tablewriter"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func newObjectsCommand(cfg *rootConfig) *ffcli.Command {
	return &ffcli.Command{
		Name:       "objects",
		ShortUsage: "trxutils objects <file>",
		ShortHelp:  "Print the object registry of a trace.",
		FlagSet:    newFlagSet("objects", cfg.stderr),
		Options:    subcommandOptions(),
		Exec: func(ctx context.Context, args []string) error {
			return ObjectsCommand(cfg, args)
		},
	}
}

func ObjectsCommand(cfg *rootConfig, args []string) error {
	// Check the number of arguments
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %d", len(args))
	}

	tr, err := cfg.loadTrace(args[0])
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cfg.stdout)
	table.SetHeader([]string{"Pointer", "Type", "Name", "Available", "Param 1", "Param 2"})
	for _, ptr := range slices.Sorted(maps.Keys(tr.Objects)) {
		o := tr.Objects[ptr]
		name, ok := o.ASCIIName()
		if !ok {
			name = fmt.Sprintf("%x", o.Name)
		}
		table.Append([]string{
			hexf.Padded(o.Pointer),
			o.Type.String(),
			name,
			hexf.Padded(o.Available),
			hexf.Trim(o.Param1),
			hexf.Trim(o.Param2),
		})
	}
	table.Render()
	return nil
}
