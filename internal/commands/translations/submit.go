package translationscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-scriptloc/internal/commands"
	"github.com/goliatone/go-scriptloc/internal/localization"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const submitTranslationMessageType = "scriptloc.translations.submit"

// Submitter applies a single translation edit.
type Submitter interface {
	SubmitTranslation(ctx context.Context, submission localization.Submission) error
}

// SubmitTranslationCommand overwrites the stored value of one key.
type SubmitTranslationCommand struct {
	Path  string `json:"path"`
	Lang  string `json:"lang"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Type implements command.Message.
func (SubmitTranslationCommand) Type() string { return submitTranslationMessageType }

// Validate ensures the edit addresses a concrete row before reaching handlers.
func (m SubmitTranslationCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Path) == "" {
		errs["path"] = validation.NewError("scriptloc.translations.submit.path_required", "path is required")
	}
	if strings.TrimSpace(m.Lang) == "" {
		errs["lang"] = validation.NewError("scriptloc.translations.submit.lang_required", "lang is required")
	}
	if strings.TrimSpace(m.Key) == "" {
		errs["key"] = validation.NewError("scriptloc.translations.submit.key_required", "key is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitTranslationHandler forwards edits to the localization service.
type SubmitTranslationHandler struct {
	inner *commands.Handler[SubmitTranslationCommand]
}

// NewSubmitTranslationHandler constructs a handler wired to the provided service.
func NewSubmitTranslationHandler(service Submitter, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitTranslationCommand]) *SubmitTranslationHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SubmitTranslationCommand) error {
		return service.SubmitTranslation(ctx, localization.Submission{
			Path:  msg.Path,
			Lang:  msg.Lang,
			Key:   msg.Key,
			Value: msg.Value,
		})
	}

	handlerOpts := []commands.HandlerOption[SubmitTranslationCommand]{
		commands.WithLogger[SubmitTranslationCommand](baseLogger),
		commands.WithOperation[SubmitTranslationCommand]("translations.submit"),
		commands.WithMessageFields(func(msg SubmitTranslationCommand) map[string]any {
			return map[string]any{
				"script_path": msg.Path,
				"lang":        msg.Lang,
				"key":         msg.Key,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SubmitTranslationCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitTranslationHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SubmitTranslationCommand].Execute.
func (h *SubmitTranslationHandler) Execute(ctx context.Context, msg SubmitTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}
