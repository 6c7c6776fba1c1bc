package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/rift/internal/conflict"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Fail when conflict markers remain",
	Long: `Scans for unresolved conflict markers and exits non-zero when any are
found, listing each file with its conflict count. With no arguments the
unmerged files of the surrounding repository are checked.

Meant for CI pipelines and pre-commit hooks:

    rift check && git commit`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		found, err := conflictedInWorkingDir(cmd.Context())
		if err != nil {
			return err
		}
		paths = found
	}

	files := 0
	total := 0
	for _, path := range paths {
		count, err := countMarkers(path)
		if err != nil {
			return err
		}
		if count > 0 {
			fmt.Printf("%s: %d conflict(s)\n", path, count)
			files++
			total += count
		}
	}

	if files > 0 {
		return fmt.Errorf("%d unresolved conflict(s) in %d file(s)", total, files)
	}
	fmt.Println("No conflict markers found.")
	return nil
}

// countMarkers parses one file and returns its conflict count. Parsing
// instead of grepping keeps stray marker-like lines from counting.
func countMarkers(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(conflict.Parse(string(data))), nil
}
