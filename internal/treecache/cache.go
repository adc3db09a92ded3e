package treecache

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-scriptloc/internal/scripts"
)

// BuildFunc produces the tree for a path. A nil node with a nil error means
// there is nothing to cache.
type BuildFunc func(ctx context.Context) (*scripts.Node, error)

// RefreshFunc mutates a cached tree in place.
type RefreshFunc func(ctx context.Context, root *scripts.Node) error

// Cache holds merged script trees by asset path. Every path has its own lock
// so one writer at a time touches a tree; readers receive deep copies. A
// path only keeps a slot while it has a tree or a caller using it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	root *scripts.Node
	// refs counts callers between acquire and release; guarded by Cache.mu.
	refs int
}

// New constructs an empty cache.
func New() *Cache {
	return &Cache{entries: map[string]*entry{}}
}

func (c *Cache) acquire(path string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok {
		e = &entry{}
		c.entries[path] = e
	}
	e.refs++
	return e
}

// release must be called without holding e.mu.
func (c *Cache) release(path string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	e.mu.Lock()
	empty := e.root == nil
	e.mu.Unlock()
	if empty && c.entries[path] == e {
		delete(c.entries, path)
	}
}

// GetOrBuild returns a copy of the cached tree for path, building and storing
// it first when absent. hit reports whether the tree was already cached.
// Concurrent callers for the same path wait for a single build.
func (c *Cache) GetOrBuild(ctx context.Context, path string, build BuildFunc) (root *scripts.Node, hit bool, err error) {
	e := c.acquire(path)
	defer c.release(path, e)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root != nil {
		return e.root.Clone(), true, nil
	}
	built, err := build(ctx)
	if err != nil {
		return nil, false, err
	}
	if built == nil {
		return nil, false, nil
	}
	e.root = built
	return built.Clone(), false, nil
}

// Refresh runs fn against the cached tree for path while holding its lock.
// It reports false, without calling fn, when nothing is cached. fn works on
// a copy that replaces the cached tree only when fn succeeds.
func (c *Cache) Refresh(ctx context.Context, path string, fn RefreshFunc) (bool, error) {
	e := c.acquire(path)
	defer c.release(path, e)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root == nil {
		return false, nil
	}
	next := e.root.Clone()
	if err := fn(ctx, next); err != nil {
		return true, err
	}
	e.root = next
	return true, nil
}

// Peek returns a copy of the cached tree without building it.
func (c *Cache) Peek(path string) (*scripts.Node, bool) {
	c.mu.Lock()
	e, ok := c.entries[path]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root == nil {
		return nil, false
	}
	return e.root.Clone(), true
}

// Invalidate drops the tree cached for path.
func (c *Cache) Invalidate(path string) {
	e := c.acquire(path)
	defer c.release(path, e)

	e.mu.Lock()
	e.root = nil
	e.mu.Unlock()
}

// Paths lists the paths with a cached tree.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	entries := make(map[string]*entry, len(c.entries))
	for path, e := range c.entries {
		entries[path] = e
	}
	c.mu.Unlock()

	paths := make([]string, 0, len(entries))
	for path, e := range entries {
		e.mu.Lock()
		if e.root != nil {
			paths = append(paths, path)
		}
		e.mu.Unlock()
	}
	sort.Strings(paths)
	return paths
}
