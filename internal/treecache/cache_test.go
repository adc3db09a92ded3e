package treecache_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-scriptloc/internal/scripts"
	"github.com/goliatone/go-scriptloc/internal/treecache"
)

func tree(directive string) *scripts.Node {
	return &scripts.Node{Children: []*scripts.Node{{Directive: &directive}}}
}

func TestGetOrBuildCachesFirstBuild(t *testing.T) {
	cache := treecache.New()
	builds := 0
	build := func(context.Context) (*scripts.Node, error) {
		builds++
		return tree("line1"), nil
	}

	_, hit, err := cache.GetOrBuild(context.Background(), "a.sq", build)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	root, hit, err := cache.GetOrBuild(context.Background(), "a.sq", build)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if builds != 1 {
		t.Fatalf("expected one build, got %d", builds)
	}
	if root.Children[0].DirectiveKey() != "line1" {
		t.Fatalf("unexpected tree %+v", root)
	}
}

func TestGetOrBuildReturnsCopies(t *testing.T) {
	cache := treecache.New()
	build := func(context.Context) (*scripts.Node, error) { return tree("line1"), nil }

	first, _, _ := cache.GetOrBuild(context.Background(), "a.sq", build)
	first.Children[0].SetText("en", "mutated")

	cached, ok := cache.Peek("a.sq")
	if !ok {
		t.Fatal("expected cached tree")
	}
	if _, ok := cached.Children[0].TextFor("en"); ok {
		t.Fatal("expected cached tree to be isolated from returned copy")
	}
}

func TestGetOrBuildSkipsNilAndErrors(t *testing.T) {
	cache := treecache.New()

	root, _, err := cache.GetOrBuild(context.Background(), "empty.sq", func(context.Context) (*scripts.Node, error) {
		return nil, nil
	})
	if err != nil || root != nil {
		t.Fatalf("expected nothing cached, got %v err=%v", root, err)
	}
	boom := errors.New("boom")
	if _, _, err := cache.GetOrBuild(context.Background(), "bad.sq", func(context.Context) (*scripts.Node, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
	if paths := cache.Paths(); len(paths) != 0 {
		t.Fatalf("expected no cached paths, got %v", paths)
	}
}

func TestRefreshMutatesCachedTree(t *testing.T) {
	cache := treecache.New()
	ctx := context.Background()

	refreshed, err := cache.Refresh(ctx, "a.sq", func(context.Context, *scripts.Node) error {
		t.Fatal("refresh must not run without a cached tree")
		return nil
	})
	if err != nil || refreshed {
		t.Fatalf("expected no refresh, got %v err=%v", refreshed, err)
	}

	_, _, _ = cache.GetOrBuild(ctx, "a.sq", func(context.Context) (*scripts.Node, error) { return tree("line1"), nil })
	refreshed, err = cache.Refresh(ctx, "a.sq", func(_ context.Context, root *scripts.Node) error {
		root.Children[0].SetText("en", "Hello")
		return nil
	})
	if err != nil || !refreshed {
		t.Fatalf("expected refresh, got %v err=%v", refreshed, err)
	}
	cached, _ := cache.Peek("a.sq")
	if got, _ := cached.Children[0].TextFor("en"); got != "Hello" {
		t.Fatalf("expected refreshed text, got %q", got)
	}
}

func TestFailedRefreshKeepsCachedTree(t *testing.T) {
	cache := treecache.New()
	ctx := context.Background()
	_, _, _ = cache.GetOrBuild(ctx, "a.sq", func(context.Context) (*scripts.Node, error) { return tree("line1"), nil })

	storeErr := errors.New("store unavailable")
	refreshed, err := cache.Refresh(ctx, "a.sq", func(_ context.Context, root *scripts.Node) error {
		root.Children[0].SetText("en", "half merged")
		return storeErr
	})
	if !refreshed || !errors.Is(err, storeErr) {
		t.Fatalf("expected failed refresh, got %v err=%v", refreshed, err)
	}
	cached, _ := cache.Peek("a.sq")
	if _, ok := cached.Children[0].TextFor("en"); ok {
		t.Fatal("expected cached tree untouched by a failed refresh")
	}
}

func TestInvalidate(t *testing.T) {
	cache := treecache.New()
	ctx := context.Background()
	_, _, _ = cache.GetOrBuild(ctx, "a.sq", func(context.Context) (*scripts.Node, error) { return tree("x"), nil })
	_, _, _ = cache.GetOrBuild(ctx, "b.sq", func(context.Context) (*scripts.Node, error) { return tree("y"), nil })

	cache.Invalidate("a.sq")
	cache.Invalidate("missing.sq")

	if got := cache.Paths(); !slices.Equal(got, []string{"b.sq"}) {
		t.Fatalf("expected [b.sq], got %v", got)
	}
}

func TestConcurrentGetOrBuildBuildsOnce(t *testing.T) {
	cache := treecache.New()
	var builds atomic.Int32
	build := func(context.Context) (*scripts.Node, error) {
		builds.Add(1)
		return tree("line1"), nil
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := cache.GetOrBuild(context.Background(), "a.sq", build); err != nil {
				t.Errorf("get or build: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("expected one build, got %d", got)
	}
}
