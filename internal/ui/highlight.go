package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightCode applies syntax highlighting to code using chroma. The
// language is a chroma lexer name or alias; unknown languages fall back to
// plain text. On tokenizer errors the code is returned unmodified.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// HighlightDiff applies coloring to git-style unified diff output
func HighlightDiff(diff string) string {
	if diff == "" {
		return diff
	}

	var result strings.Builder
	lines := strings.Split(diff, "\n")

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			// File headers
			result.WriteString(DiffHeaderStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			// Hunk markers
			result.WriteString(DiffHunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			// Added lines
			result.WriteString(DiffAddedStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			// Removed lines
			result.WriteString(DiffRemovedStyle.Render(line))
		case strings.HasPrefix(line, "diff --git"):
			// Diff command header
			result.WriteString(DiffHeaderStyle.Render(line))
		case strings.HasPrefix(line, "index "):
			// Index line
			result.WriteString(DiffHeaderStyle.Render(line))
		case strings.HasPrefix(line, "new file mode") || strings.HasPrefix(line, "deleted file mode"):
			// File mode changes
			result.WriteString(DiffHeaderStyle.Render(line))
		default:
			// Context lines (unchanged)
			result.WriteString(line)
		}
		result.WriteString("\n")
	}

	return strings.TrimRight(result.String(), "\n")
}
