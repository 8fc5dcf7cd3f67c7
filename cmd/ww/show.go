package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <entity name>",
	Short: "Show one entity and everything attached to it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("dir", ".", "project directory")
}

func runShow(cmd *cobra.Command, args []string) error {
	// Multi-word names may arrive unquoted.
	name := strings.Join(args, " ")

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	result, err := loadWorld(cmd, dir)
	if err != nil {
		return err
	}
	w := result.World

	e, ok := w.Lookup(name)
	if !ok {
		suggestions := w.CompleteName(name)
		if len(suggestions) > 0 {
			return fmt.Errorf("no entity named %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
		}
		return fmt.Errorf("no entity named %q", name)
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", e.Name, e.KindLabel())
	fmt.Fprintf(os.Stdout, "declared in %s\n", e.Path)
	if e.Date != nil {
		fmt.Fprintf(os.Stdout, "date: %s\n", e.Date.String())
	}
	if e.Description != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", e.Description)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(os.Stdout, "\ntags: %s\n", strings.Join(e.Tags, ", "))
	}

	if len(e.Properties) > 0 {
		fmt.Fprintln(os.Stdout, "\nproperties:")
		keys := make([]string, 0, len(e.Properties))
		for k := range e.Properties {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(os.Stdout, "  %s = %s\n", k, e.Properties[k].String())
		}
	}

	if out := w.Outgoing(e.ID); len(out) > 0 {
		fmt.Fprintln(os.Stdout, "\nrelationships:")
		for _, rel := range out {
			fmt.Fprintf(os.Stdout, "  %s %s\n", relLabel(rel), w.Get(rel.Target).Name)
		}
	}
	if in := w.Incoming(e.ID); len(in) > 0 {
		fmt.Fprintln(os.Stdout, "\nreferenced by:")
		for _, rel := range in {
			fmt.Fprintf(os.Stdout, "  %s (%s)\n", w.Get(rel.Source).Name, relLabel(rel))
		}
	}
	return nil
}

func relLabel(rel world.Relationship) string {
	if rel.Direction != "" {
		return rel.Direction + " to"
	}
	return rel.Kind.String()
}
