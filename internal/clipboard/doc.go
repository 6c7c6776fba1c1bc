// Package clipboard provides text reading and writing on the system
// clipboard. On macOS with cgo it talks to the native pasteboard; everywhere
// else it goes through golang.design/x/clipboard.
package clipboard
