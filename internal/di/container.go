package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-scriptloc/internal/assets"
	commandlib "github.com/goliatone/go-scriptloc/internal/commands"
	translationscmd "github.com/goliatone/go-scriptloc/internal/commands/translations"
	scripthttp "github.com/goliatone/go-scriptloc/internal/http"
	"github.com/goliatone/go-scriptloc/internal/localization"
	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/logging/gologger"
	"github.com/goliatone/go-scriptloc/internal/merge"
	"github.com/goliatone/go-scriptloc/internal/runtimeconfig"
	"github.com/goliatone/go-scriptloc/internal/seeding"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/internal/treecache"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires the localization backend: storage, asset catalog, merge
// engine, seeder, request service, HTTP adapter and command handlers.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	assetsFS       fs.FS

	store           translations.Store
	catalog         assets.Catalog
	trees           *treecache.Cache
	engine          *merge.Engine
	seeder          *seeding.Seeder
	localizationSvc *localization.Service
	api             *scripthttp.API

	submitHandler *translationscmd.SubmitTranslationHandler
	seedHandler   *translationscmd.SeedLocalePacksHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB uses db for the translation store instead of opening
// Config.Storage.DSN. The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache provider.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAssetsFS reads assets from fsys instead of Config.AssetRoot.
func WithAssetsFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.assetsFS = fsys
	}
}

// WithStore overrides the translation store binding.
func WithStore(store translations.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithCatalog overrides the asset catalog binding.
func WithCatalog(catalog assets.Catalog) Option {
	return func(c *Container) {
		c.catalog = catalog
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		trees:    treecache.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureCatalog(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureCommands()
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "noop") {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logging: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.store != nil {
		return nil
	}
	if c.bunDB == nil && strings.EqualFold(strings.TrimSpace(c.Config.Storage.Driver), runtimeconfig.StorageDriverMemory) {
		c.store = translations.NewMemoryStore()
		return nil
	}
	if c.bunDB == nil {
		db, err := openSQLite(c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.cacheService != nil {
		c.store = translations.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return nil
	}
	c.store = translations.NewBunStore(c.bunDB)
	return nil
}

func openSQLite(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("di: open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func (c *Container) configureCatalog() error {
	if c.catalog != nil {
		return nil
	}
	fsys := c.assetsFS
	if fsys == nil {
		fsys = os.DirFS(c.Config.AssetRoot)
	}
	catalog, err := assets.NewFSCatalog(fsys, assets.WithCatalogLogger(logging.AssetsLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("di: index assets: %w", err)
	}
	c.catalog = catalog
	return nil
}

func (c *Container) configureServices() error {
	langs := c.Config.Languages
	engineOpts := []merge.Option{
		merge.WithCharacterPath(langs.CharacterPath),
		merge.WithLogger(logging.MergeLogger(c.loggerProvider)),
	}
	if len(langs.CharacterFallback) > 0 {
		engineOpts = append(engineOpts, merge.WithCharacterLanguages(langs.CharacterFallback...))
	}
	c.engine = merge.NewEngine(c.store, engineOpts...)

	mode := seeding.ModeOnce
	if c.Config.Seeding.Enabled {
		parsed, err := seeding.ParseMode(c.Config.Seeding.Mode)
		if err != nil {
			return err
		}
		mode = parsed
	}
	c.seeder = seeding.NewSeeder(c.store,
		seeding.WithMode(mode),
		seeding.WithLogger(logging.SeedingLogger(c.loggerProvider)),
	)

	svc, err := localization.NewService(c.store, c.catalog,
		localization.WithEngine(c.engine),
		localization.WithTreeCache(c.trees),
		localization.WithCreateMissing(c.Config.Submit.CreateMissing),
		localization.WithLogger(logging.LocalizationLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.localizationSvc = svc

	c.api = scripthttp.NewAPI(svc,
		scripthttp.WithBasePath(c.Config.HTTP.BasePath),
		scripthttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureCommands() {
	logger := commandlib.CommandLogger(c.loggerProvider, "translations")
	c.submitHandler = translationscmd.NewSubmitTranslationHandler(c.localizationSvc, logger)
	c.seedHandler = translationscmd.NewSeedLocalePacksHandler(c.seeder, c.catalog, logger,
		translationscmd.WithAfterSeed(func(ctx context.Context, _ seeding.Result) error {
			return c.localizationSvc.Init(ctx)
		}),
	)
}

// Close releases the database opened by the container. Databases supplied
// through WithBunDB are left open.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

// LoggerProvider exposes the configured logger provider, nil when logging
// is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the database backing the store, nil for memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// TranslationStore exposes the configured translation store.
func (c *Container) TranslationStore() translations.Store {
	return c.store
}

// Catalog exposes the asset catalog.
func (c *Container) Catalog() assets.Catalog {
	return c.catalog
}

// MergeEngine exposes the merge engine.
func (c *Container) MergeEngine() *merge.Engine {
	return c.engine
}

// Seeder exposes the locale pack seeder.
func (c *Container) Seeder() *seeding.Seeder {
	return c.seeder
}

// LocalizationService returns the request layer service.
func (c *Container) LocalizationService() *localization.Service {
	return c.localizationSvc
}

// HTTPAPI returns the HTTP adapter.
func (c *Container) HTTPAPI() *scripthttp.API {
	return c.api
}

// SubmitTranslationHandler returns the submit command handler.
func (c *Container) SubmitTranslationHandler() *translationscmd.SubmitTranslationHandler {
	return c.submitHandler
}

// SeedLocalePacksHandler returns the seed command handler.
func (c *Container) SeedLocalePacksHandler() *translationscmd.SeedLocalePacksHandler {
	return c.seedHandler
}
