package localization

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-scriptloc/internal/assets"
	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/merge"
	"github.com/goliatone/go-scriptloc/internal/scripts"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/internal/treecache"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const (
	langEN = "en"
	langKO = "ko"
)

var (
	ErrStoreRequired   = errors.New("localization: translation store required")
	ErrCatalogRequired = errors.New("localization: asset catalog required")
)

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEngine replaces the merge engine.
func WithEngine(engine *merge.Engine) ServiceOption {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithTreeCache shares a tree cache with the service.
func WithTreeCache(cache *treecache.Cache) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.trees = cache
		}
	}
}

// WithCreateMissing makes SubmitTranslation insert a row when none matches
// instead of ignoring the edit.
func WithCreateMissing(enabled bool) ServiceOption {
	return func(s *Service) {
		s.createMissing = enabled
	}
}

// Service answers the localization requests: listing translatable paths,
// serving merged scripts or key tables, and applying edits.
type Service struct {
	store         translations.Store
	catalog       assets.Catalog
	engine        *merge.Engine
	trees         *treecache.Cache
	logger        interfaces.Logger
	createMissing bool

	mu    sync.RWMutex
	paths []string
}

// NewService constructs the request layer service.
func NewService(store translations.Store, catalog assets.Catalog, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	svc := &Service{
		store:   store,
		catalog: catalog,
		trees:   treecache.New(),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	if svc.engine == nil {
		svc.engine = merge.NewEngine(store, merge.WithLogger(svc.logger))
	}
	return svc, nil
}

// Init computes the translatable paths: every locale pack item path with at
// least one stored row, in pack and item order.
func (s *Service) Init(ctx context.Context) error {
	paths := []string{}
	seen := map[string]struct{}{}

	for _, node := range s.catalog.Nodes(assets.KindLocalePack) {
		pack, err := s.catalog.LoadLocalePack(ctx, node.Path)
		if err != nil {
			return fmt.Errorf("localization: load %s: %w", node.Path, err)
		}
		for _, item := range pack.Config.Items {
			if _, ok := seen[item.Path]; ok {
				continue
			}
			exists, err := s.store.Exists(ctx, item.Path)
			if err != nil {
				return err
			}
			if !exists {
				continue
			}
			seen[item.Path] = struct{}{}
			paths = append(paths, item.Path)
		}
	}

	s.mu.Lock()
	s.paths = paths
	s.mu.Unlock()

	s.logger.Info("localization.paths.computed", "count", len(paths))
	return nil
}

// TranslatablePaths returns the paths computed by Init.
func (s *Service) TranslatablePaths(context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.paths == nil {
		return []string{}
	}
	return slices.Clone(s.paths)
}

// ScriptOrCSV returns the merged script tree for path when path names a
// script with content, or the en/ko key table when no script exists there.
// A script without content yields an empty Value.
func (s *Service) ScriptOrCSV(ctx context.Context, path string) (*Value, error) {
	if strings.TrimSpace(path) == "" {
		return nil, pathRequired()
	}

	root, err := s.tree(ctx, path)
	if err != nil {
		return nil, err
	}
	if root != nil {
		return &Value{Script: root}, nil
	}
	if s.hasScript(path) {
		return &Value{}, nil
	}

	table, err := s.csv(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Value{CSV: table}, nil
}

// SubmitTranslation overwrites a stored value and re-merges the cached tree
// for its path. Edits to rows that do not exist are ignored unless the
// service was built WithCreateMissing.
func (s *Service) SubmitTranslation(ctx context.Context, submission Submission) error {
	if strings.TrimSpace(submission.Path) == "" {
		return pathRequired()
	}
	logger := logging.WithTranslationContext(s.logger, submission.Path, submission.Lang, submission.Key)

	if _, err := s.tree(ctx, submission.Path); err != nil {
		return err
	}

	updated, err := s.store.UpdateValue(ctx, submission.Path, submission.Lang, submission.Key, submission.Value)
	if err != nil {
		return err
	}
	if !updated && s.createMissing {
		if err := s.store.Insert(ctx, translations.Record{
			Path:  submission.Path,
			Lang:  submission.Lang,
			Key:   submission.Key,
			Value: submission.Value,
		}); err != nil {
			return err
		}
		updated = true
		logger.Debug("localization.translation.created")
	}
	if !updated {
		logger.Debug("localization.translation.unmatched")
	}

	refreshed, err := s.trees.Refresh(ctx, submission.Path, func(ctx context.Context, root *scripts.Node) error {
		return s.engine.Merge(ctx, submission.Path, root)
	})
	if err != nil {
		return err
	}
	logger.Info("localization.translation.submitted", "updated", updated, "refreshed", refreshed)
	return nil
}

// tree returns a copy of the merged tree for path, building and caching it
// on first use. It returns nil when path has no script or the script has no
// content.
func (s *Service) tree(ctx context.Context, path string) (*scripts.Node, error) {
	root, _, err := s.trees.GetOrBuild(ctx, path, func(ctx context.Context) (*scripts.Node, error) {
		doc, err := s.catalog.LoadScript(ctx, path)
		if errors.Is(err, assets.ErrAssetNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !doc.Built() {
			return nil, nil
		}
		report, err := s.engine.MergeWithReport(ctx, path, doc.Root)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("localization.script.loaded",
			"script_path", path,
			"nodes", report.Nodes,
			"translated", report.Translated,
		)
		return doc.Root, nil
	})
	return root, err
}

func (s *Service) hasScript(path string) bool {
	return slices.ContainsFunc(s.catalog.Nodes(assets.KindScript), func(node assets.Node) bool {
		return node.Path == path
	})
}

func (s *Service) csv(ctx context.Context, path string) (map[string]CSVEntry, error) {
	en, err := s.store.List(ctx, path, langEN)
	if err != nil {
		return nil, err
	}
	ko, err := s.store.List(ctx, path, langKO)
	if err != nil {
		return nil, err
	}

	table := make(map[string]CSVEntry, len(en))
	for _, entry := range en {
		row := table[entry.Key]
		row.EN = &entry.Value
		table[entry.Key] = row
	}
	for _, entry := range ko {
		row := table[entry.Key]
		row.KO = &entry.Value
		table[entry.Key] = row
	}
	return table, nil
}
