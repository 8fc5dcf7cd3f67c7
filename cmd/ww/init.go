package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new world project",
	Long: `Initialize a new world project by creating a project manifest (ww.toml)
and a starter world file (world.ww). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will
be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "world"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	worldPath := filepath.Join(target, "world.ww")
	createdWorld := false
	if _, err := os.Stat(worldPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(worldPath, []byte(defaultWorldWW(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write world.ww: %w", err)
		}
		createdWorld = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized world project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdWorld {
		fmt.Fprintf(os.Stdout, "  - world.ww\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - world.ww (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# Weltenwanderer project manifest
[project]
name = "%s"
`, name)
}

// defaultWorldWW is the starter file: one world block, one place, one
// person, connected so check has something to resolve.
func defaultWorldWW(name string) string {
	return fmt.Sprintf(`world "%s" {
	genre unwritten
}

the First Keep is a fortress {
	"""
	Every world starts somewhere. This one starts here.
	"""
	founded year 1
}

the Founder is a character {
	in the First Keep
	tags [starter]
}
`, name)
}
