// Package document loads and saves the text files the rest of the program
// works on. Diffing and conflict parsing operate on LF-normalized line
// slices, so this layer owns terminator handling: it detects CRLF on load,
// hands out normalized buffers, and writes files back with their original
// terminator and trailing-newline state intact.
package document

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	rifterrors "github.com/zhubert/rift/internal/errors"
)

// Document is one loaded file.
type Document struct {
	Path            string
	Lines           []string
	Terminator      string
	TrailingNewline bool
}

// Load reads the file at path into a Document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rifterrors.FileNotFound(path)
		}
		return nil, rifterrors.FileReadFailed(path, err)
	}
	return FromString(path, string(data)), nil
}

// FromString builds a Document from raw file content, detecting the line
// terminator. An empty content is zero lines, not one empty line.
func FromString(path, content string) *Document {
	terminator := "\n"
	if strings.Contains(content, "\r\n") {
		terminator = "\r\n"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	lines, trailing := splitLines(content)
	return &Document{
		Path:            path,
		Lines:           lines,
		Terminator:      terminator,
		TrailingNewline: trailing,
	}
}

// splitLines splits an LF buffer into lines, reporting whether the buffer
// ended with a newline. The final newline does not produce an empty line.
func splitLines(buffer string) ([]string, bool) {
	if buffer == "" {
		return []string{}, false
	}
	trailing := strings.HasSuffix(buffer, "\n")
	if trailing {
		buffer = strings.TrimSuffix(buffer, "\n")
	}
	return strings.Split(buffer, "\n"), trailing
}

// Buffer returns the LF-normalized content, the form the diff and conflict
// packages consume.
func (d *Document) Buffer() string {
	return d.join("\n")
}

// Content returns the file content with the original terminator. For files
// with a consistent terminator this is byte identical to what Load read
// until the document is modified.
func (d *Document) Content() string {
	return d.join(d.Terminator)
}

func (d *Document) join(terminator string) string {
	if len(d.Lines) == 0 {
		return ""
	}
	s := strings.Join(d.Lines, terminator)
	if d.TrailingNewline {
		s += terminator
	}
	return s
}

// SetBuffer replaces the document's lines from an LF-normalized buffer. The
// terminator chosen at load time still applies on Save.
func (d *Document) SetBuffer(buffer string) {
	d.Lines, d.TrailingNewline = splitLines(buffer)
}

// Save writes the document back to its path, preserving the existing file
// mode when the file is still there.
func (d *Document) Save() error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(d.Path, []byte(d.Content()), mode); err != nil {
		return rifterrors.FileWriteFailed(d.Path, err)
	}
	return nil
}

// Language guesses the document's language from its file name, for syntax
// highlighting. Empty when no lexer matches.
func (d *Document) Language() string {
	lexer := lexers.Match(filepath.Base(d.Path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
