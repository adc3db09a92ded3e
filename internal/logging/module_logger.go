package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const (
	rootModule         = "scriptloc"
	mergeModule        = "scriptloc.merge"
	seedingModule      = "scriptloc.seeding"
	localizationModule = "scriptloc.localization"
	httpModule         = "scriptloc.http"
	assetsModule       = "scriptloc.assets"
)

const (
	fieldScriptPath = "script_path"
	fieldLang       = "lang"
	fieldKey        = "key"
)

// ModuleLogger returns a logger scoped to module. Without a provider the
// result is a no-op logger. The module name is attached as the "module"
// field on every entry.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MergeLogger returns the logger used by the merge engine.
func MergeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mergeModule)
}

// SeedingLogger returns the logger used while seeding locale packs.
func SeedingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedingModule)
}

// LocalizationLogger returns the logger used by the request layer service.
func LocalizationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localizationModule)
}

// HTTPLogger returns the logger used by the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// AssetsLogger returns the logger used by the asset catalog.
func AssetsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, assetsModule)
}

// WithTranslationContext adds the script path, language and key of a
// translation to logger. Empty values are skipped.
func WithTranslationContext(logger interfaces.Logger, path, lang, key string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldScriptPath] = trimmed
	}
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		fields[fieldLang] = trimmed
	}
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		fields[fieldKey] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
