package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/diagfmt"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ww",
	Short: "Parse a world source file and dump its declarations",
	Long:  `Parse runs the error-recovering parser over one .ww file and prints every declaration it could salvage`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := resolveMaxDiagnostics(cmd, nil)
	if err != nil {
		return err
	}

	result, err := driver.ParseFile(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stderr),
			ShowPreview: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatDeclsPretty(os.Stdout, result.AST)
	case "json":
		return diagfmt.FormatDeclsJSON(os.Stdout, result.AST)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
