package scriptloc

import "github.com/goliatone/go-scriptloc/internal/runtimeconfig"

var (
	ErrAssetRootRequired       = runtimeconfig.ErrAssetRootRequired
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCharacterPathRequired   = runtimeconfig.ErrCharacterPathRequired
	ErrSeedingModeInvalid      = runtimeconfig.ErrSeedingModeInvalid
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	LanguageConfig = runtimeconfig.LanguageConfig
	SeedingConfig  = runtimeconfig.SeedingConfig
	SubmitConfig   = runtimeconfig.SubmitConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
