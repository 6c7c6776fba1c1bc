package ui

import (
	"strings"
	"testing"
)

func TestHighlightCode(t *testing.T) {
	code := "func main() {\n\tprintln(\"hi\")\n}"
	result := HighlightCode(code, "Go")
	if !strings.Contains(stripANSI(result), "func main()") {
		t.Errorf("highlighted output lost the source text: %q", result)
	}

	// Unknown languages fall back to plain text without mangling content.
	result = HighlightCode("some plain text", "no-such-language")
	if !strings.Contains(stripANSI(result), "some plain text") {
		t.Errorf("fallback output lost the source text: %q", result)
	}
}

func TestHighlightDiff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(string) bool
	}{
		{
			name:  "empty diff",
			input: "",
			check: func(result string) bool { return result == "" },
		},
		{
			name:  "added lines keep text",
			input: "+added line",
			check: func(result string) bool { return strings.Contains(result, "+added line") },
		},
		{
			name:  "removed lines keep text",
			input: "-removed line",
			check: func(result string) bool { return strings.Contains(result, "-removed line") },
		},
		{
			name:  "hunk markers keep text",
			input: "@@ -1,3 +1,4 @@",
			check: func(result string) bool { return strings.Contains(result, "@@ -1,3 +1,4 @@") },
		},
		{
			name:  "file headers keep text",
			input: "--- a/file.go\n+++ b/file.go",
			check: func(result string) bool {
				return strings.Contains(result, "--- a/file.go") && strings.Contains(result, "+++ b/file.go")
			},
		},
		{
			name:  "diff command header",
			input: "diff --git a/file.go b/file.go",
			check: func(result string) bool { return strings.Contains(result, "diff --git") },
		},
		{
			name:  "context lines unchanged",
			input: " unchanged line",
			check: func(result string) bool { return strings.Contains(result, " unchanged line") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HighlightDiff(tt.input)
			if !tt.check(result) {
				t.Errorf("HighlightDiff(%q) = %q, check failed", tt.input, result)
			}
		})
	}
}

func TestHighlightDiff_MultiLine(t *testing.T) {
	diff := strings.Join([]string{
		"diff --git a/main.go b/main.go",
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,2 +1,2 @@",
		"-old line",
		"+new line",
		" context",
	}, "\n")

	result := HighlightDiff(diff)
	for _, want := range []string{"diff --git", "-old line", "+new line", " context"} {
		if !strings.Contains(result, want) {
			t.Errorf("HighlightDiff output missing %q", want)
		}
	}
	if strings.HasSuffix(result, "\n") {
		t.Error("trailing newline should be trimmed")
	}
}
