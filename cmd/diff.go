package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/rift/internal/app"
	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/logger"
)

var diffCmd = &cobra.Command{
	Use:   "diff <original> <revised>",
	Short: "Compare two files",
	Long: `Opens the diff viewer on a pair of files without touching git.

View mode, context lines, and theme come from ~/.rift/config.json and can be
changed from the settings modal while the viewer is open.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	original, err := resolveExisting(args[0])
	if err != nil {
		return err
	}
	revised, err := resolveExisting(args[1])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	defer logger.Close()

	m := app.NewDiff(cfg, version, original, revised)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// resolveExisting makes path absolute and verifies it names a regular file
func resolveExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return abs, nil
}
