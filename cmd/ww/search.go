package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>",
	Short: "Search entity names and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("dir", ".", "project directory")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	result, err := loadWorld(cmd, dir)
	if err != nil {
		return err
	}

	hits := result.World.Search(query)
	for _, e := range hits {
		fmt.Fprintf(os.Stdout, "%-30s %s  (%s)\n", e.Name, e.KindLabel(), e.Path)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		if len(hits) == 0 {
			fmt.Fprintf(os.Stdout, "no matches for %q\n", query)
		} else {
			fmt.Fprintf(os.Stdout, "%d match(es)\n", len(hits))
		}
	}
	return nil
}
