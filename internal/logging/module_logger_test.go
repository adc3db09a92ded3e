package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "scriptloc.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	tests := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{name: "root", build: func(p interfaces.LoggerProvider) interfaces.Logger { return ModuleLogger(p, "") }, module: rootModule},
		{name: "merge", build: MergeLogger, module: mergeModule},
		{name: "seeding", build: SeedingLogger, module: seedingModule},
		{name: "localization", build: LocalizationLogger, module: localizationModule},
		{name: "http", build: HTTPLogger, module: httpModule},
		{name: "assets", build: AssetsLogger, module: assetsModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingLogger{}
			provider := &stubProvider{logger: rec}

			tt.build(provider)

			if len(provider.requested) != 1 || provider.requested[0] != tt.module {
				t.Fatalf("expected module %s, got %v", tt.module, provider.requested)
			}
			if len(rec.fields) != 1 || rec.fields[0]["module"] != tt.module {
				t.Fatalf("expected module field %s, got %v", tt.module, rec.fields)
			}
		})
	}
}

func TestWithTranslationContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithTranslationContext(rec, " map1/dlg.sq ", "", "line1")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldScriptPath] != "map1/dlg.sq" || got[fieldKey] != "line1" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldLang]; ok {
		t.Fatalf("expected empty lang to be skipped, got %v", got)
	}
}
