package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const checkFixture = `intro
<<<<<<< HEAD
ours
=======
theirs
>>>>>>> branch
middle
<<<<<<< HEAD
left
=======
right
>>>>>>> branch
outro
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCountMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"two conflicts", checkFixture, 2},
		{"clean file", "plain\nlines\n", 0},
		{"marker-like line alone", "<<<<<<< not a real conflict\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "f.txt", tt.content)
			got, err := countMarkers(path)
			if err != nil {
				t.Fatalf("countMarkers: %v", err)
			}
			if got != tt.want {
				t.Errorf("countMarkers = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountMarkersMissingFile(t *testing.T) {
	if _, err := countMarkers(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCheckPassesOnCleanFiles(t *testing.T) {
	clean := writeTestFile(t, "clean.txt", "nothing here\n")
	if err := runCheck(checkCmd, []string{clean}); err != nil {
		t.Errorf("runCheck on a clean file = %v, want nil", err)
	}
}

func TestCheckFailsOnConflictedFiles(t *testing.T) {
	conflicted := writeTestFile(t, "conflicted.txt", checkFixture)
	clean := writeTestFile(t, "clean.txt", "nothing here\n")

	err := runCheck(checkCmd, []string{clean, conflicted})
	if err == nil {
		t.Fatal("expected runCheck to fail with conflicts present")
	}
	if !strings.Contains(err.Error(), "2 unresolved conflict(s) in 1 file(s)") {
		t.Errorf("error = %q, want conflict and file counts", err.Error())
	}
}

func TestCheckFailsOnMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.txt")
	if err := runCheck(checkCmd, []string{missing}); err == nil {
		t.Error("expected runCheck to fail on a missing file")
	}
}
