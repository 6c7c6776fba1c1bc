// Package session manages conflict resolution sessions.
//
// # Overview
//
// A session groups the files being resolved in one sitting: each file is
// loaded, its conflict regions are parsed, and a resolution store tracks the
// choice made for every region. The session reports progress across files
// and writes resolved content back when a file is complete.
//
// # Session Lifecycle
//
// 1. New: When a session is created:
//   - A UUID is generated for the session ID
//   - Each file is loaded and parsed for conflict markers
//   - Files without conflict markers are skipped with a warning
//   - The enclosing git work tree, if any, is detected from the first file
//
// 2. Resolve: Choices are recorded per conflict through the session, which
// timestamps each change. A conflict can be re-resolved any number of times
// before the file is applied.
//
// 3. Apply: When every conflict in a file is resolved, Apply splices the
// chosen lines into the original buffer, writes the file with its original
// line terminator, and stages it when the session is inside a work tree.
//
// # Functions
//
// New: Creates a session from an ordered list of file paths.
//
// Resolve, ResolveCustom: Record a resolution for one conflict.
//
// Apply, ApplyAll: Write resolved files back to disk.
//
// SetGitService: Swaps the git backend, primarily for testing.
package session
