package merge

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/scripts"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const (
	// DefaultCharacterPath is the asset path holding character display names.
	DefaultCharacterPath = "config/story/CharacterName.xls/Name"
	// CharacterKeyPrefix prefixes the character reference to form its key.
	CharacterKeyPrefix = "name::"
)

// DefaultCharacterLanguages is the lookup order for character names.
var DefaultCharacterLanguages = []string{"ko", "en"}

// Engine writes stored translations into script trees.
type Engine struct {
	store          translations.Store
	characterPath  string
	characterLangs []string
	logger         interfaces.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCharacterPath overrides the asset path used for character names.
func WithCharacterPath(path string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			e.characterPath = trimmed
		}
	}
}

// WithCharacterLanguages overrides the character name fallback chain.
func WithCharacterLanguages(langs ...string) Option {
	return func(e *Engine) {
		chain := make([]string, 0, len(langs))
		for _, lang := range langs {
			if trimmed := strings.TrimSpace(lang); trimmed != "" {
				chain = append(chain, trimmed)
			}
		}
		if len(chain) > 0 {
			e.characterLangs = chain
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Report summarises one Merge call.
type Report struct {
	Nodes      int `json:"nodes"`
	Translated int `json:"translated"`
	Characters int `json:"characters"`
}

// NewEngine constructs an engine reading from store.
func NewEngine(store translations.Store, opts ...Option) *Engine {
	engine := &Engine{
		store:          store,
		characterPath:  DefaultCharacterPath,
		characterLangs: append([]string(nil), DefaultCharacterLanguages...),
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	return engine
}

// Merge translates node and its descendants in place using the rows stored
// for contextPath. Missing translations leave the tree untouched; store
// failures abort the merge.
func (e *Engine) Merge(ctx context.Context, contextPath string, node *scripts.Node) error {
	_, err := e.MergeWithReport(ctx, contextPath, node)
	return err
}

// MergeWithReport is Merge returning counts of visited and modified nodes.
func (e *Engine) MergeWithReport(ctx context.Context, contextPath string, node *scripts.Node) (Report, error) {
	var report Report
	if node == nil {
		return report, nil
	}

	langs, err := e.store.Languages(ctx, contextPath)
	if err != nil {
		return report, fmt.Errorf("merge: languages for %q: %w", contextPath, err)
	}

	err = node.Walk(func(current *scripts.Node) error {
		report.Nodes++
		if !current.Translatable() {
			return nil
		}
		renamed, err := e.mergeCharacter(ctx, current)
		if err != nil {
			return err
		}
		if renamed {
			report.Characters++
		}
		translated, err := e.mergeDirective(ctx, contextPath, langs, current)
		if err != nil {
			return err
		}
		if translated {
			report.Translated++
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	e.logger.Debug("merge.tree.completed",
		"script_path", contextPath,
		"languages", len(langs),
		"nodes", report.Nodes,
		"translated", report.Translated,
		"characters", report.Characters,
	)
	return report, nil
}

func (e *Engine) mergeCharacter(ctx context.Context, node *scripts.Node) (bool, error) {
	character := node.CharacterKey()
	if character == "" {
		return false, nil
	}
	key := CharacterKeyPrefix + character
	for _, lang := range e.characterLangs {
		name, ok, err := e.store.Get(ctx, e.characterPath, lang, key)
		if err != nil {
			return false, fmt.Errorf("merge: character %q: %w", character, err)
		}
		if ok {
			node.SetCharacter(name)
			return true, nil
		}
	}
	return false, nil
}

func (e *Engine) mergeDirective(ctx context.Context, contextPath string, langs []string, node *scripts.Node) (bool, error) {
	directive := node.DirectiveKey()
	if directive == "" {
		return false, nil
	}
	translated := false
	for _, lang := range langs {
		text, ok, err := e.store.Get(ctx, contextPath, lang, directive)
		if err != nil {
			return false, fmt.Errorf("merge: directive %q (%s): %w", directive, lang, err)
		}
		if !ok {
			continue
		}
		node.SetText(lang, text)
		translated = true
	}
	if translated {
		node.ClearFallback()
	}
	return translated, nil
}
