package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type dispatchedEdit struct {
	Path string
	Key  string
}

func (dispatchedEdit) Type() string { return "scriptloc.test.dispatch.edit" }

func (m dispatchedEdit) Validate() error {
	if m.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

type dispatchedReseed struct{}

func (dispatchedReseed) Type() string { return "scriptloc.test.dispatch.reseed" }

func (dispatchedReseed) Validate() error { return nil }

func TestDispatcherRoutesByMessageType(t *testing.T) {
	var edits []dispatchedEdit
	var reseeds int

	editSub := dispatcher.SubscribeCommand(NewHandler(func(_ context.Context, msg dispatchedEdit) error {
		edits = append(edits, msg)
		return nil
	}))
	t.Cleanup(editSub.Unsubscribe)
	reseedSub := dispatcher.SubscribeCommand(NewHandler(func(context.Context, dispatchedReseed) error {
		reseeds++
		return nil
	}))
	t.Cleanup(reseedSub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), dispatchedEdit{Path: "map1/dlg.sq", Key: "line1"}); err != nil {
		t.Fatalf("dispatch edit: %v", err)
	}
	if err := dispatcher.Dispatch(context.Background(), dispatchedReseed{}); err != nil {
		t.Fatalf("dispatch reseed: %v", err)
	}

	if len(edits) != 1 || edits[0].Key != "line1" {
		t.Fatalf("expected one routed edit, got %+v", edits)
	}
	if reseeds != 1 {
		t.Fatalf("expected one reseed, got %d", reseeds)
	}
}

func TestDispatcherRetriesTransientStoreFailures(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, _ dispatchedReseed) error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	}, WithTimeout[dispatchedReseed](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), dispatchedReseed{}); err != nil {
		t.Fatalf("dispatch: expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", attempts)
	}
}

func TestDispatcherStopsAfterUnsubscribe(t *testing.T) {
	var calls int
	sub := dispatcher.SubscribeCommand(NewHandler(func(context.Context, dispatchedEdit) error {
		calls++
		return nil
	}))

	if err := dispatcher.Dispatch(context.Background(), dispatchedEdit{Path: "ui/menu.csv"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	sub.Unsubscribe()
	_ = dispatcher.Dispatch(context.Background(), dispatchedEdit{Path: "ui/menu.csv"})

	if calls != 1 {
		t.Fatalf("expected handler to stop receiving after unsubscribe, got %d calls", calls)
	}
}
