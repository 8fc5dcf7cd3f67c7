package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [directory]",
	Short: "Apply the fixes suggested by diagnostics",
	Long:  "Fix compiles the world, collects the machine-applicable fixes its diagnostics carry, and rewrites the source files accordingly.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix (default: first only)")
	fixCmd.Flags().String("code", "", "only fixes attached to this diagnostic code, e.g. SEM3002")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	codeID, err := cmd.Flags().GetString("code")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	opts := fix.ApplyOptions{}
	if applyAll {
		opts.Mode = fix.ApplyModeAll
	}
	if codeID != "" {
		code, err := codeFromID(codeID)
		if err != nil {
			return err
		}
		opts.Code = code
	}

	result, _, err := compileWorkspace(cmd, dir, driver.Options{})
	if err != nil {
		return err
	}

	res, applyErr := fix.Apply(result.FileSet, result.Bag.Items(), opts)
	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	for _, applied := range res.Applied {
		fmt.Fprintf(os.Stdout, "%s: %s [%s] (%d edit(s))\n",
			applied.Path, applied.Title, applied.Code.ID(), applied.EditCount)
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(os.Stdout, "skipped: %s (%s)\n", skipped.Title, skipped.Reason)
	}

	if dryRun {
		fmt.Fprintf(os.Stdout, "dry run: %d file(s) would change\n", len(res.Files))
		return nil
	}
	if err := res.Write(); err != nil {
		return fmt.Errorf("failed to write fixes: %w", err)
	}
	fmt.Fprintf(os.Stdout, "updated %d file(s)\n", len(res.Files))
	return nil
}

// codeFromID turns a user-visible identifier like "SEM3002" back into
// the numeric code. The digits are the code value.
func codeFromID(id string) (diag.Code, error) {
	digits := strings.TrimLeftFunc(strings.ToUpper(strings.TrimSpace(id)), func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	})
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid diagnostic code %q", id)
	}
	code := diag.Code(n)
	if code.ID() != strings.ToUpper(strings.TrimSpace(id)) {
		return 0, fmt.Errorf("unknown diagnostic code %q", id)
	}
	return code, nil
}
