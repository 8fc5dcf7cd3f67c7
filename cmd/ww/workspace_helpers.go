package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/diagfmt"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/project"
)

// resolveMaxDiagnostics layers the --max-diagnostics flag over the
// manifest's [check] setting; zero means "use the project default".
func resolveMaxDiagnostics(cmd *cobra.Command, proj *project.Project) (int, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 && proj != nil {
		maxDiagnostics = proj.Manifest.Check.MaxDiagnostics
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = driver.DefaultMaxDiagnostics
	}
	return maxDiagnostics, nil
}

// compileWorkspace opens the project containing dir and compiles every
// source file it enumerates. Snapshot IO findings land in the result
// bag next to the compile findings.
func compileWorkspace(cmd *cobra.Command, dir string, opts driver.Options) (*driver.Result, *project.Project, error) {
	proj, err := project.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics, err = resolveMaxDiagnostics(cmd, proj)
		if err != nil {
			return nil, nil, err
		}
	}

	snap, ioDiags, err := proj.LoadSnapshot()
	if err != nil {
		return nil, nil, err
	}
	result, err := driver.Compile(cmd.Context(), snap, opts)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range ioDiags {
		result.Bag.Add(d)
	}
	result.Bag.Sort()
	result.FileSet.SetBaseDir(proj.Root)
	return result, proj, nil
}

// loadWorld is the query-command entry: compile the workspace around
// dir, report findings on stderr, and hand back the best-effort world.
func loadWorld(cmd *cobra.Command, dir string) (*driver.Result, error) {
	result, _, err := compileWorkspace(cmd, dir, driver.Options{})
	if err != nil {
		return nil, err
	}
	if err := reportWorkspaceDiagnostics(cmd, result); err != nil {
		return nil, err
	}
	return result, nil
}

// reportWorkspaceDiagnostics prints the bag to stderr for the query
// commands, which keep stdout for their own payload.
func reportWorkspaceDiagnostics(cmd *cobra.Command, result *driver.Result) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if quiet || (!result.Bag.HasErrors() && !result.Bag.HasWarnings()) {
		return nil
	}
	diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:       useColor(cmd, os.Stderr),
		ShowPreview: true,
	})
	return nil
}
