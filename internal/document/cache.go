package document

import (
	"time"

	"github.com/zhubert/rift/internal/diff"
)

// Cache holds loaded documents and computed line diffs with a fixed TTL.
// The app model owns one instance and touches it only from its update loop,
// so there is no internal locking. A ttl of zero or less means entries never
// expire; expired entries are dropped lazily on lookup and in bulk by Prune.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	docs  map[string]docEntry
	diffs map[diffKey]diffEntry
}

type docEntry struct {
	doc *Document
	at  time.Time
}

type diffKey struct {
	left  string
	right string
}

type diffEntry struct {
	script []diff.Entry
	at     time.Time
}

// NewCache returns an empty cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		now:   time.Now,
		docs:  make(map[string]docEntry),
		diffs: make(map[diffKey]diffEntry),
	}
}

func (c *Cache) expired(at time.Time) bool {
	return c.ttl > 0 && c.now().Sub(at) > c.ttl
}

// Document returns the cached document for path, if present and fresh.
func (c *Cache) Document(path string) (*Document, bool) {
	entry, ok := c.docs[path]
	if !ok {
		return nil, false
	}
	if c.expired(entry.at) {
		delete(c.docs, path)
		return nil, false
	}
	return entry.doc, true
}

// PutDocument stores doc under its path, resetting its age.
func (c *Cache) PutDocument(doc *Document) {
	c.docs[doc.Path] = docEntry{doc: doc, at: c.now()}
}

// Script returns the cached diff script for a pair of paths, if present and
// fresh.
func (c *Cache) Script(leftPath, rightPath string) ([]diff.Entry, bool) {
	key := diffKey{left: leftPath, right: rightPath}
	entry, ok := c.diffs[key]
	if !ok {
		return nil, false
	}
	if c.expired(entry.at) {
		delete(c.diffs, key)
		return nil, false
	}
	return entry.script, true
}

// PutScript stores a computed diff script for a pair of paths.
func (c *Cache) PutScript(leftPath, rightPath string, script []diff.Entry) {
	c.diffs[diffKey{left: leftPath, right: rightPath}] = diffEntry{script: script, at: c.now()}
}

// Invalidate drops the document at path and every diff script that involves
// it, so the next lookup reloads from disk.
func (c *Cache) Invalidate(path string) {
	delete(c.docs, path)
	for key := range c.diffs {
		if key.left == path || key.right == path {
			delete(c.diffs, key)
		}
	}
}

// Prune removes every expired entry and reports how many were dropped.
func (c *Cache) Prune() int {
	dropped := 0
	for path, entry := range c.docs {
		if c.expired(entry.at) {
			delete(c.docs, path)
			dropped++
		}
	}
	for key, entry := range c.diffs {
		if c.expired(entry.at) {
			delete(c.diffs, key)
			dropped++
		}
	}
	return dropped
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.docs = make(map[string]docEntry)
	c.diffs = make(map[diffKey]diffEntry)
}

// Len reports the number of live entries, documents and scripts combined.
func (c *Cache) Len() int {
	return len(c.docs) + len(c.diffs)
}
