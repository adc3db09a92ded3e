package treecache

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-scriptloc/internal/scripts"
)

func TestUnknownPathsLeaveNoSlots(t *testing.T) {
	cache := New()
	ctx := context.Background()
	missing := func(context.Context) (*scripts.Node, error) { return nil, nil }
	failing := func(context.Context) (*scripts.Node, error) { return nil, errors.New("load failed") }

	for _, path := range []string{"nope/1.sq", "nope/2.sq", "nope/3.sq"} {
		if _, _, err := cache.GetOrBuild(ctx, path, missing); err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		if refreshed, err := cache.Refresh(ctx, path, func(context.Context, *scripts.Node) error { return nil }); err != nil || refreshed {
			t.Fatalf("refresh %s: refreshed=%v err=%v", path, refreshed, err)
		}
	}
	_, _, _ = cache.GetOrBuild(ctx, "broken.sq", failing)

	if got := len(cache.entries); got != 0 {
		t.Fatalf("expected no slots for unknown paths, got %d", got)
	}
}

func TestInvalidateReleasesSlot(t *testing.T) {
	cache := New()
	ctx := context.Background()
	build := func(context.Context) (*scripts.Node, error) {
		return &scripts.Node{Children: []*scripts.Node{{}}}, nil
	}

	if _, _, err := cache.GetOrBuild(ctx, "map1/dlg.sq", build); err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := len(cache.entries); got != 1 {
		t.Fatalf("expected one slot, got %d", got)
	}
	cache.Invalidate("map1/dlg.sq")
	if got := len(cache.entries); got != 0 {
		t.Fatalf("expected slot released after invalidate, got %d", got)
	}
}
