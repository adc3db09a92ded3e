package translationscmd

import (
	"context"

	"github.com/goliatone/go-scriptloc/internal/assets"
	"github.com/goliatone/go-scriptloc/internal/commands"
	"github.com/goliatone/go-scriptloc/internal/seeding"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const seedLocalePacksMessageType = "scriptloc.translations.seed"

// Seeder is the subset of seeding.Seeder used by the seed handler.
type Seeder interface {
	Seed(ctx context.Context, packs []*assets.LocalePack) (seeding.Result, error)
	Bootstrap(ctx context.Context, catalog assets.Catalog) (seeding.Result, error)
}

// SeedLocalePacksCommand imports every locale pack into the translation
// store. Without Force the seeder's mode decides whether anything is written.
type SeedLocalePacksCommand struct {
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (SeedLocalePacksCommand) Type() string { return seedLocalePacksMessageType }

// Validate implements command validation; the command has no required fields.
func (SeedLocalePacksCommand) Validate() error { return nil }

// SeedLocalePacksHandler runs the seeding process.
type SeedLocalePacksHandler struct {
	inner *commands.Handler[SeedLocalePacksCommand]
}

// SeedOption configures the seed handler.
type SeedOption func(*seedConfig)

type seedConfig struct {
	afterSeed func(context.Context, seeding.Result) error
	opts      []commands.HandlerOption[SeedLocalePacksCommand]
}

// WithAfterSeed registers a hook executed after a successful run, typically
// used to recompute the translatable paths.
func WithAfterSeed(fn func(context.Context, seeding.Result) error) SeedOption {
	return func(cfg *seedConfig) {
		cfg.afterSeed = fn
	}
}

// WithHandlerOptions forwards options to the shared command handler.
func WithHandlerOptions(opts ...commands.HandlerOption[SeedLocalePacksCommand]) SeedOption {
	return func(cfg *seedConfig) {
		cfg.opts = append(cfg.opts, opts...)
	}
}

// NewSeedLocalePacksHandler constructs a handler wired to the seeder and catalog.
func NewSeedLocalePacksHandler(seeder Seeder, catalog assets.Catalog, logger interfaces.Logger, opts ...SeedOption) *SeedLocalePacksHandler {
	baseLogger := commands.EnsureLogger(logger)
	cfg := seedConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	exec := func(ctx context.Context, msg SeedLocalePacksCommand) error {
		var (
			result seeding.Result
			err    error
		)
		if msg.Force {
			var packs []*assets.LocalePack
			packs, err = seeding.LoadPacks(ctx, catalog)
			if err != nil {
				return err
			}
			result, err = seeder.Seed(ctx, packs)
		} else {
			result, err = seeder.Bootstrap(ctx, catalog)
		}
		if err != nil {
			return err
		}
		if cfg.afterSeed != nil {
			return cfg.afterSeed(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SeedLocalePacksCommand]{
		commands.WithLogger[SeedLocalePacksCommand](baseLogger),
		commands.WithOperation[SeedLocalePacksCommand]("translations.seed"),
		commands.WithTimeout[SeedLocalePacksCommand](commands.LongCommandTimeout),
		commands.WithMessageFields(func(msg SeedLocalePacksCommand) map[string]any {
			if !msg.Force {
				return nil
			}
			return map[string]any{"force": true}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SeedLocalePacksCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, cfg.opts...)

	return &SeedLocalePacksHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SeedLocalePacksCommand].Execute.
func (h *SeedLocalePacksHandler) Execute(ctx context.Context, msg SeedLocalePacksCommand) error {
	return h.inner.Execute(ctx, msg)
}
