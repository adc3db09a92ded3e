package di

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	translationscmd "github.com/goliatone/go-scriptloc/internal/commands/translations"
)

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// RegistrationResult captures the registered handlers and their subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe releases every subscription in the result.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	r.Subscriptions = nil
}

// ErrUnsupportedHandler is returned by the go-command dispatcher adapter for
// handlers it does not know how to subscribe.
var ErrUnsupportedHandler = errors.New("di: unsupported command handler")

// GoCommandDispatcher subscribes handlers to the process wide go-command
// dispatcher so messages sent with dispatcher.Dispatch reach them.
type GoCommandDispatcher struct {
	MaxRetries int
}

// RegisterCommand satisfies CommandDispatcher.
func (d GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	opts := []runner.Option{}
	if d.MaxRetries > 0 {
		opts = append(opts, runner.WithMaxRetries(d.MaxRetries))
	}
	switch h := handler.(type) {
	case *translationscmd.SubmitTranslationHandler:
		return dispatcher.SubscribeCommand[translationscmd.SubmitTranslationCommand](h, opts...), nil
	case *translationscmd.SeedLocalePacksHandler:
		return dispatcher.SubscribeCommand[translationscmd.SeedLocalePacksCommand](h, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHandler, handler)
	}
}

// RegisterCommands hands the container's command handlers to d.
func (c *Container) RegisterCommands(d CommandDispatcher) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0, 2),
		Subscriptions: make([]CommandSubscription, 0, 2),
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)
		if d == nil {
			return
		}
		subscription, err := d.RegisterCommand(handler)
		if err != nil {
			errs = errors.Join(errs, err)
			return
		}
		if subscription != nil {
			result.Subscriptions = append(result.Subscriptions, subscription)
		}
	}

	register(c.submitHandler)
	register(c.seedHandler)

	return result, errs
}
