package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAssetRootRequired = errors.New("scriptloc config: asset root is required")
var ErrStorageDriverUnknown = errors.New("scriptloc config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("scriptloc config: storage dsn is required for sqlite storage")

// ErrCacheTTLInvalid guards against negative cache lifetimes.
var ErrCacheTTLInvalid = errors.New("scriptloc config: cache ttl must be zero or positive")
var ErrCharacterPathRequired = errors.New("scriptloc config: character asset path is required")
var ErrSeedingModeInvalid = errors.New("scriptloc config: seeding mode is invalid")
var ErrHTTPAddrRequired = errors.New("scriptloc config: http address is required")
var ErrLoggingProviderRequired = errors.New("scriptloc config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("scriptloc config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("scriptloc config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("scriptloc config: logging format is invalid")

const (
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"

	SeedingModeOnce   = "once"
	SeedingModeAlways = "always"
)

// Config aggregates the settings for the localization backend.
type Config struct {
	AssetRoot string
	Storage   StorageConfig
	Cache     CacheConfig
	Languages LanguageConfig
	Seeding   SeedingConfig
	Submit    SubmitConfig
	HTTP      HTTPConfig
	Logging   LoggingConfig
}

// StorageConfig selects the translation store backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures cache behaviour toggles for the store read path.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LanguageConfig controls how speaker names are resolved during merges.
type LanguageConfig struct {
	CharacterPath     string
	CharacterFallback []string
}

type SeedingConfig struct {
	Enabled bool
	Mode    string
}

// SubmitConfig controls how edits to missing rows are handled.
type SubmitConfig struct {
	CreateMissing bool
}

type HTTPConfig struct {
	Addr     string
	BasePath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		AssetRoot: "assets",
		Storage: StorageConfig{
			Driver: StorageDriverSQLite,
			DSN:    "file:scriptloc.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Languages: LanguageConfig{
			CharacterPath:     "config/story/CharacterName.xls/Name",
			CharacterFallback: []string{"ko", "en"},
		},
		Seeding: SeedingConfig{
			Enabled: true,
			Mode:    SeedingModeOnce,
		},
		HTTP: HTTPConfig{
			Addr:     ":3000",
			BasePath: "/",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.AssetRoot) == "" {
		return ErrAssetRootRequired
	}
	switch driver := normalize(cfg.Storage.Driver); driver {
	case StorageDriverSQLite:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Languages.CharacterPath) == "" {
		return ErrCharacterPathRequired
	}
	if cfg.Seeding.Enabled {
		switch mode := normalize(cfg.Seeding.Mode); mode {
		case "", SeedingModeOnce, SeedingModeAlways:
		default:
			return fmt.Errorf("%w: %s", ErrSeedingModeInvalid, mode)
		}
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
