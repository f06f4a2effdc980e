package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/findash/internal/config"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a findash project with starter categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing categories.yaml")

	return cmd
}

func runInit(out io.Writer, dir string, force bool) error {
	// Create directory structure.
	for _, d := range []string{"data", "output", "config"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write starter categories unless the user already has some.
	rulesPath := filepath.Join(dir, "config", "categories.yaml")
	_, err := os.Stat(rulesPath)
	switch {
	case err == nil && !force:
		fmt.Fprintf(out, "Keeping existing %s\n", rulesPath)
	case err == nil || errors.Is(err, fs.ErrNotExist):
		if err := config.Save(rulesPath, config.Default()); err != nil {
			return fmt.Errorf("writing categories: %w", err)
		}
	default:
		return fmt.Errorf("checking %s: %w", rulesPath, err)
	}

	// Write .gitignore.
	gitignore := "output/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write data/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "data", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(out, "Initialized findash project at %s\n", dir)
	return nil
}
