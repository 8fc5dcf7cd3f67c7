package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [flags] [directory]",
	Short: "Print dated entities in chronological order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().Int64("from", math.MinInt64, "only entries in or after this year")
	timelineCmd.Flags().Int64("to", math.MaxInt64, "only entries in or before this year")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	from, err := cmd.Flags().GetInt64("from")
	if err != nil {
		return err
	}
	to, err := cmd.Flags().GetInt64("to")
	if err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("--from %d is after --to %d", from, to)
	}

	result, err := loadWorld(cmd, dir)
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range result.World.Timeline() {
		if e.Date.Year < from || e.Date.Year > to {
			continue
		}
		fmt.Fprintf(os.Stdout, "%-16s %s (%s)\n", e.Date.String(), e.Name, e.KindLabel())
		shown++
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet && shown == 0 {
		fmt.Fprintln(os.Stdout, "no dated entities")
	}
	return nil
}
