package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/diagfmt"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/observ"
	"github.com/tbsvttr/weltenwanderer2/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Compile a world and report its diagnostics",
	Long:  `Check compiles every .ww file of the project containing [directory] (default: the current directory) and prints what the merge and resolution found`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("cache-dir", "", "parse cache location (default: <root>/.ww/cache)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent parse cache")
	checkCmd.Flags().String("ui", "off", "interactive progress (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "max parallel parse workers (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	proj, err := project.Open(dir)
	if err != nil {
		return err
	}
	maxDiagnostics, err := resolveMaxDiagnostics(cmd, proj)
	if err != nil {
		return err
	}
	snap, ioDiags, err := proj.LoadSnapshot()
	if err != nil {
		return err
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics, Jobs: jobs}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	cache := openParseCache(noCache, cacheDir, proj)

	var result *driver.Result
	if shouldUseTUI(mode) {
		result, err = runCheckWithUI(cmd, proj.Name(), snapshotPaths(snap), cache, snap, opts)
	} else {
		result, err = cache.Compile(cmd.Context(), snap, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	for _, d := range ioDiags {
		result.Bag.Add(d)
	}
	result.Bag.Sort()
	result.FileSet.SetBaseDir(proj.Root)

	colored := useColor(cmd, os.Stdout)
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       colored,
			ShowNotes:   true,
			ShowFixes:   true,
			ShowPreview: true,
		})
		if !quiet {
			diagfmt.Summary(os.Stdout, result.Bag, colored)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if showTimings && opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}

	failed := result.Bag.HasErrors()
	if proj.Manifest.Check.WarningsAsErrors && result.Bag.HasWarnings() {
		failed = true
	}
	if failed {
		// Diagnostics are the output; skip cobra's usage and error lines.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// openParseCache never fails the command: an unusable cache directory
// just degrades to in-memory caching.
func openParseCache(noCache bool, cacheDir string, proj *project.Project) *driver.Cache {
	if noCache {
		return driver.NewCache(nil)
	}
	if cacheDir == "" {
		cacheDir = proj.CacheDir()
	}
	disk, err := driver.OpenDiskCache(cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: parse cache disabled: %v\n", err)
		return driver.NewCache(nil)
	}
	return driver.NewCache(disk)
}

func snapshotPaths(snap driver.Snapshot) []string {
	paths := make([]string, 0, len(snap))
	for p := range snap {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}
