package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

var listCmd = &cobra.Command{
	Use:   "list [flags] [directory]",
	Short: "List the entities of a world",
	Long:  `List compiles the world and prints its entities, optionally filtered by kind or tag`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("kind", "", "only entities of this kind (location|character|faction|event|item|lore)")
	listCmd.Flags().String("tag", "", "only entities carrying this tag")
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	kindFilter, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	tagFilter, err := cmd.Flags().GetString("tag")
	if err != nil {
		return err
	}

	var wantKind world.Kind
	var wantSubtype string
	filterByKind := kindFilter != ""
	if filterByKind {
		k, sub := world.ClassifyKind(kindFilter)
		if k == world.KindCustom && kindFilter != "custom" {
			return fmt.Errorf("unknown kind: %s", kindFilter)
		}
		wantKind, wantSubtype = k, sub
	}

	result, err := loadWorld(cmd, dir)
	if err != nil {
		return err
	}

	entities := result.World.List(func(e *world.Entity) bool {
		if filterByKind && e.Kind != wantKind {
			return false
		}
		// A subtype word like "fortress" narrows within locations.
		if wantSubtype != "" && e.Subtype != wantSubtype {
			return false
		}
		if tagFilter != "" && !e.HasTag(tagFilter) {
			return false
		}
		return true
	})

	for _, e := range entities {
		line := fmt.Sprintf("%-30s %s", e.Name, e.KindLabel())
		if e.Date != nil {
			line += "  " + e.Date.String()
		}
		fmt.Fprintln(os.Stdout, line)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "%d of %d entities\n", len(entities), result.World.Len())
	}
	return nil
}
