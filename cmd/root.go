package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/rift/internal/app"
	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/git"
	"github.com/zhubert/rift/internal/logger"
	"github.com/zhubert/rift/internal/session"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "rift [file...]",
	Short: "TUI for resolving merge conflicts and comparing files",
	Long: `Rift is a terminal UI for walking through merge conflicts hunk by hunk.

Run it inside a git repository with unmerged files, or pass conflicted files
explicitly. Each conflict can keep the current side, the incoming side, both
sides, or a hand-edited resolution.`,
	RunE:          runResolve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("rift %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("rift %s\n", version)
}

func runResolve(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		found, err := conflictedInWorkingDir(cmd.Context())
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Println("No conflicted files. Working tree is clean.")
			return nil
		}
		paths = found
	}

	// Build the session before entering the alternate screen so path and
	// parse errors print as plain command output
	sess, err := session.New(cmd.Context(), paths)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	m := app.New(cfg, version, sess)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// conflictedInWorkingDir lists the unmerged paths of the repository that
// contains the current directory, absolute
func conflictedInWorkingDir(ctx context.Context) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	g := git.NewGitService()
	if !g.IsRepo(ctx, cwd) {
		return nil, fmt.Errorf("%s is not inside a git repository; pass conflicted files explicitly", cwd)
	}
	root, err := g.Root(ctx, cwd)
	if err != nil {
		return nil, err
	}

	rel, err := g.ListConflicted(ctx, root)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(rel))
	for i, r := range rel {
		paths[i] = filepath.Join(root, r)
	}
	return paths, nil
}
