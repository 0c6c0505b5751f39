package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/julianneswinoga/tracex-parser/pkg/breakdown"
	"github.com/olekukonko/tablewriter"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type BreakdownFlavor string

const (
	BreakdownCSV   BreakdownFlavor = "csv"
	BreakdownTable BreakdownFlavor = "table"
)

func newBreakdownCommand(cfg *rootConfig) *ffcli.Command {
	fs := newFlagSet("breakdown", cfg.stderr)
	format := fs.String("format", string(BreakdownTable), "output format (table, csv)")
	return &ffcli.Command{
		Name:       "breakdown",
		ShortUsage: "trxutils breakdown [-format table|csv] <file>",
		ShortHelp:  "Break down a trace by event type.",
		FlagSet:    fs,
		Options:    subcommandOptions(),
		Exec: func(ctx context.Context, args []string) error {
			return BreakdownCommand(cfg, BreakdownFlavor(*format), args)
		},
	}
}

func BreakdownCommand(cfg *rootConfig, flavor BreakdownFlavor, args []string) error {
	// Check the number of arguments
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %d", len(args))
	}

	tr, err := cfg.loadTrace(args[0])
	if err != nil {
		return err
	}

	bd := breakdown.ByEventType(tr.Events)
	summaries := bd.Sorted()
	totalCount := bd.Total()
	var totalTicks int64
	for _, ets := range summaries {
		totalTicks += ets.Ticks
	}

	switch flavor {
	case BreakdownCSV:
		cw := csv.NewWriter(cfg.stdout)
		cw.Write([]string{"ID", "Event Type", "Count", "Ticks"})
		for _, ets := range summaries {
			cw.Write([]string{
				strconv.FormatUint(uint64(ets.ID), 10),
				ets.Label(),
				strconv.FormatInt(ets.Count, 10),
				strconv.FormatInt(ets.Ticks, 10),
			})
		}
		cw.Flush()
		return cw.Error()
	case BreakdownTable:
		var rows [][]string
		for _, ets := range summaries {
			rows = append(rows, []string{
				ets.Label(),
				strconv.FormatInt(ets.Count, 10),
				percent(ets.Count, totalCount),
				strconv.FormatInt(ets.Ticks, 10),
				percent(ets.Ticks, totalTicks),
			})
		}
		table := tablewriter.NewWriter(cfg.stdout)
		table.SetHeader([]string{"Event Type", "Count", "%", "Ticks", "%"})
		table.AppendBulk(rows)
		table.SetFooter([]string{
			"Total",
			strconv.FormatInt(totalCount, 10),
			percent(totalCount, totalCount),
			strconv.FormatInt(totalTicks, 10),
			percent(totalTicks, totalTicks),
		})
		table.Render()
		return nil
	default:
		return fmt.Errorf("unknown flavor: %s", flavor)
	}
}

func percent(n, total int64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(total)*100)
}
