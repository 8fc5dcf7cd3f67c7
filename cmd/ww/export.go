package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] [directory]",
	Short: "Export the resolved world",
	Long:  `Export compiles the world and writes the resolved model as JSON or Markdown`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("format", "json", "output format (json|markdown)")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

type exportEntity struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Date        string            `json:"date,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	Relations   []exportRelation  `json:"relations,omitempty"`
	Path        string            `json:"path"`
}

type exportRelation struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

type exportWorld struct {
	Title      string            `json:"title,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Entities   []exportEntity    `json:"entities"`
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	result, err := loadWorld(cmd, dir)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(buildExportWorld(result.World))
	case "markdown":
		return writeMarkdown(out, result.World)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func buildExportWorld(w *world.World) exportWorld {
	ew := exportWorld{
		Title:    w.Title,
		Entities: make([]exportEntity, 0, w.Len()),
	}
	if len(w.Properties) > 0 {
		ew.Properties = make(map[string]string, len(w.Properties))
		for k, v := range w.Properties {
			ew.Properties[k] = v.String()
		}
	}
	for _, e := range w.Entities {
		ee := exportEntity{
			Name:        e.Name,
			Kind:        e.KindLabel(),
			Description: e.Description,
			Tags:        e.Tags,
			Path:        e.Path,
		}
		if e.Date != nil {
			ee.Date = e.Date.String()
		}
		if len(e.Properties) > 0 {
			ee.Properties = make(map[string]string, len(e.Properties))
			for k, v := range e.Properties {
				ee.Properties[k] = v.String()
			}
		}
		for _, rel := range w.Outgoing(e.ID) {
			ee.Relations = append(ee.Relations, exportRelation{
				Kind:   relLabel(rel),
				Target: w.Get(rel.Target).Name,
			})
		}
		ew.Entities = append(ew.Entities, ee)
	}
	return ew
}

// writeMarkdown renders one section per kind, entities in canonical
// order within each.
func writeMarkdown(out io.Writer, w *world.World) error {
	title := w.Title
	if title == "" {
		title = "Untitled World"
	}
	fmt.Fprintf(out, "# %s\n", title)

	for _, k := range []world.Kind{
		world.KindLocation, world.KindCharacter, world.KindFaction,
		world.KindEvent, world.KindItem, world.KindLore, world.KindCustom,
	} {
		entities := w.ByKind(k)
		if len(entities) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n## %s\n", kindHeading(k))
		for _, e := range entities {
			fmt.Fprintf(out, "\n### %s\n", e.Name)
			if e.Kind == world.KindCustom || e.Subtype != "" {
				fmt.Fprintf(out, "\n*%s*\n", e.KindLabel())
			}
			if e.Date != nil {
				fmt.Fprintf(out, "\n**Date:** %s\n", e.Date.String())
			}
			if e.Description != "" {
				fmt.Fprintf(out, "\n%s\n", e.Description)
			}
			if len(e.Tags) > 0 {
				fmt.Fprintf(out, "\n**Tags:** %s\n", strings.Join(e.Tags, ", "))
			}
			if len(e.Properties) > 0 {
				fmt.Fprintln(out)
				keys := make([]string, 0, len(e.Properties))
				for key := range e.Properties {
					keys = append(keys, key)
				}
				slices.Sort(keys)
				for _, key := range keys {
					fmt.Fprintf(out, "- %s: %s\n", key, e.Properties[key].String())
				}
			}
			if rels := w.Outgoing(e.ID); len(rels) > 0 {
				fmt.Fprintln(out)
				for _, rel := range rels {
					fmt.Fprintf(out, "- %s [%s](#%s)\n",
						relLabel(rel), w.Get(rel.Target).Name, anchor(w.Get(rel.Target).Name))
				}
			}
		}
	}
	return nil
}

func kindHeading(k world.Kind) string {
	switch k {
	case world.KindLocation:
		return "Locations"
	case world.KindCharacter:
		return "Characters"
	case world.KindFaction:
		return "Factions"
	case world.KindEvent:
		return "Events"
	case world.KindItem:
		return "Items"
	case world.KindLore:
		return "Lore"
	}
	return "Other"
}

func anchor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
