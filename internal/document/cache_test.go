package document

import (
	"reflect"
	"testing"
	"time"

	"github.com/zhubert/rift/internal/diff"
)

// newTestCache returns a cache on a fake clock plus a function that moves
// the clock forward.
func newTestCache(ttl time.Duration) (*Cache, func(time.Duration)) {
	c := NewCache(ttl)
	current := time.Unix(1700000000, 0)
	c.now = func() time.Time { return current }
	return c, func(d time.Duration) { current = current.Add(d) }
}

func TestCache_DocumentRoundTrip(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	doc := FromString("/tmp/a.txt", "one\n")
	c.PutDocument(doc)

	got, ok := c.Document("/tmp/a.txt")
	if !ok {
		t.Fatal("Document() miss, want hit")
	}
	if got != doc {
		t.Error("Document() returned a different instance")
	}
}

func TestCache_DocumentMiss(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if _, ok := c.Document("/tmp/absent.txt"); ok {
		t.Error("Document() hit, want miss")
	}
}

func TestCache_DocumentExpires(t *testing.T) {
	c, advance := newTestCache(time.Minute)
	c.PutDocument(FromString("/tmp/a.txt", "one\n"))

	advance(59 * time.Second)
	if _, ok := c.Document("/tmp/a.txt"); !ok {
		t.Error("Document() miss before TTL, want hit")
	}

	advance(2 * time.Second)
	if _, ok := c.Document("/tmp/a.txt"); ok {
		t.Error("Document() hit after TTL, want miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired lookup, want 0", c.Len())
	}
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	c, advance := newTestCache(0)
	c.PutDocument(FromString("/tmp/a.txt", "one\n"))

	advance(1000 * time.Hour)
	if _, ok := c.Document("/tmp/a.txt"); !ok {
		t.Error("Document() miss with zero TTL, want hit")
	}
}

func TestCache_ScriptRoundTrip(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	script := []diff.Entry{
		{Kind: diff.KindUnchanged, Text: "a", OriginalLine: 1, RevisedLine: 1},
		{Kind: diff.KindAdded, Text: "b", RevisedLine: 2},
	}
	c.PutScript("/tmp/a.txt", "/tmp/b.txt", script)

	got, ok := c.Script("/tmp/a.txt", "/tmp/b.txt")
	if !ok {
		t.Fatal("Script() miss, want hit")
	}
	if !reflect.DeepEqual(got, script) {
		t.Errorf("Script() = %v, want %v", got, script)
	}

	// The pair is ordered; the reverse direction is a different diff.
	if _, ok := c.Script("/tmp/b.txt", "/tmp/a.txt"); ok {
		t.Error("Script() hit for reversed pair, want miss")
	}
}

func TestCache_ScriptExpires(t *testing.T) {
	c, advance := newTestCache(time.Minute)
	c.PutScript("/tmp/a.txt", "/tmp/b.txt", []diff.Entry{{Kind: diff.KindUnchanged, Text: "a"}})

	advance(2 * time.Minute)
	if _, ok := c.Script("/tmp/a.txt", "/tmp/b.txt"); ok {
		t.Error("Script() hit after TTL, want miss")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.PutDocument(FromString("/tmp/a.txt", "one\n"))
	c.PutDocument(FromString("/tmp/b.txt", "two\n"))
	c.PutScript("/tmp/a.txt", "/tmp/b.txt", nil)
	c.PutScript("/tmp/b.txt", "/tmp/c.txt", nil)

	c.Invalidate("/tmp/a.txt")

	if _, ok := c.Document("/tmp/a.txt"); ok {
		t.Error("invalidated document still cached")
	}
	if _, ok := c.Document("/tmp/b.txt"); !ok {
		t.Error("unrelated document dropped")
	}
	if _, ok := c.Script("/tmp/a.txt", "/tmp/b.txt"); ok {
		t.Error("script involving invalidated path still cached")
	}
	if _, ok := c.Script("/tmp/b.txt", "/tmp/c.txt"); !ok {
		t.Error("unrelated script dropped")
	}
}

func TestCache_Prune(t *testing.T) {
	c, advance := newTestCache(time.Minute)
	c.PutDocument(FromString("/tmp/old.txt", "one\n"))
	c.PutScript("/tmp/old.txt", "/tmp/older.txt", nil)

	advance(2 * time.Minute)
	c.PutDocument(FromString("/tmp/new.txt", "two\n"))

	if dropped := c.Prune(); dropped != 2 {
		t.Errorf("Prune() = %d, want 2", dropped)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Document("/tmp/new.txt"); !ok {
		t.Error("fresh document dropped by Prune")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.PutDocument(FromString("/tmp/a.txt", "one\n"))
	c.PutScript("/tmp/a.txt", "/tmp/b.txt", nil)

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}
