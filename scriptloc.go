package scriptloc

import (
	"context"
	"io/fs"
	"net/http"

	repocache "github.com/goliatone/go-repository-cache/cache"
	translationscmd "github.com/goliatone/go-scriptloc/internal/commands/translations"
	"github.com/goliatone/go-scriptloc/internal/di"
	"github.com/goliatone/go-scriptloc/internal/localization"
	"github.com/goliatone/go-scriptloc/internal/seeding"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
	"github.com/uptrace/bun"
)

// LocalizationService exports the request layer contract.
type LocalizationService = *localization.Service

// TranslationStore exports the translation store contract.
type TranslationStore = translations.Store

// Value exports the payload returned for a script or key table lookup.
type Value = localization.Value

// Submission exports a single translation edit.
type Submission = localization.Submission

// SeedResult exports the counters of a seeding run.
type SeedResult = seeding.Result

// Option configures the underlying container.
type Option = di.Option

// CommandDispatcher subscribes command handlers to a dispatcher.
type CommandDispatcher = di.CommandDispatcher

// RegistrationResult captures registered handlers and subscriptions.
type RegistrationResult = di.RegistrationResult

// GoCommandDispatcher registers handlers with the go-command dispatcher.
type GoCommandDispatcher = di.GoCommandDispatcher

// SubmitTranslationCommand exports the submit command message.
type SubmitTranslationCommand = translationscmd.SubmitTranslationCommand

// SeedLocalePacksCommand exports the seed command message.
type SeedLocalePacksCommand = translationscmd.SeedLocalePacksCommand

// WithBunDB uses db for the translation store.
func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

// WithCache overrides the store read cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

// WithLoggerProvider overrides the logger provider built from the config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithAssetsFS reads assets from fsys instead of Config.AssetRoot.
func WithAssetsFS(fsys fs.FS) Option { return di.WithAssetsFS(fsys) }

// WithStore overrides the translation store.
func WithStore(store TranslationStore) Option { return di.WithStore(store) }

// Module represents the top level localization runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Start seeds the locale packs when seeding is enabled and computes the
// translatable paths. It must run before the HTTP handler serves requests.
func (m *Module) Start(ctx context.Context) error {
	if m.container.Config.Seeding.Enabled {
		return m.Seed(ctx, false)
	}
	return m.container.LocalizationService().Init(ctx)
}

// Seed runs the seeding process through the seed command handler. force
// imports every pack regardless of the configured mode.
func (m *Module) Seed(ctx context.Context, force bool) error {
	return m.container.SeedLocalePacksHandler().Execute(ctx, SeedLocalePacksCommand{Force: force})
}

// SubmitTranslation applies an edit through the submit command handler.
func (m *Module) SubmitTranslation(ctx context.Context, msg SubmitTranslationCommand) error {
	return m.container.SubmitTranslationHandler().Execute(ctx, msg)
}

// Localization returns the request layer service.
func (m *Module) Localization() LocalizationService {
	return m.container.LocalizationService()
}

// Store returns the configured translation store.
func (m *Module) Store() TranslationStore {
	return m.container.TranslationStore()
}

// Handler returns the HTTP handler serving the localization routes.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.HTTPAPI().Handler()
}

// RegisterCommands subscribes the module's command handlers to d.
func (m *Module) RegisterCommands(d CommandDispatcher) (*RegistrationResult, error) {
	return m.container.RegisterCommands(d)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
