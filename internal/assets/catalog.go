package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/scripts"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

// ErrAssetNotFound is returned when no asset of the requested kind exists at
// a path.
var ErrAssetNotFound = errors.New("assets: asset not found")

// Catalog lists assets by kind and loads the ones the localization core
// reads.
type Catalog interface {
	Nodes(kind Kind) []Node
	LoadScript(ctx context.Context, path string) (*scripts.Document, error)
	LoadLocalePack(ctx context.Context, path string) (*LocalePack, error)
}

// FSCatalog indexes an fs.FS once and reads assets from it on demand.
type FSCatalog struct {
	fsys   fs.FS
	byKind map[Kind][]Node
	byPath map[Kind]map[string]Node
	logger interfaces.Logger
}

// CatalogOption configures an FSCatalog.
type CatalogOption func(*FSCatalog)

// WithCatalogLogger sets the catalog logger.
func WithCatalogLogger(logger interfaces.Logger) CatalogOption {
	return func(c *FSCatalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

var _ Catalog = (*FSCatalog)(nil)

// NewFSCatalog walks fsys and records every asset it recognises.
func NewFSCatalog(fsys fs.FS, opts ...CatalogOption) (*FSCatalog, error) {
	if fsys == nil {
		return nil, errors.New("assets: filesystem is required")
	}
	catalog := &FSCatalog{
		fsys:   fsys,
		byKind: map[Kind][]Node{},
		byPath: map[Kind]map[string]Node{},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(catalog)
		}
	}

	err := fs.WalkDir(fsys, ".", func(file string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		node, ok := classify(file)
		if !ok {
			return nil
		}
		catalog.add(node)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: index filesystem: %w", err)
	}

	for kind := range catalog.byKind {
		slices.SortFunc(catalog.byKind[kind], func(a, b Node) int {
			return strings.Compare(a.Path, b.Path)
		})
	}
	catalog.logger.Debug("assets.catalog.indexed",
		"scripts", len(catalog.byKind[KindScript]),
		"locale_packs", len(catalog.byKind[KindLocalePack]),
		"textures", len(catalog.byKind[KindTexture]),
	)
	return catalog, nil
}

func (c *FSCatalog) add(node Node) {
	paths, ok := c.byPath[node.Kind]
	if !ok {
		paths = map[string]Node{}
		c.byPath[node.Kind] = paths
	}
	if _, exists := paths[node.Path]; exists {
		return
	}
	paths[node.Path] = node
	c.byKind[node.Kind] = append(c.byKind[node.Kind], node)
}

// Nodes returns the assets of kind sorted by path.
func (c *FSCatalog) Nodes(kind Kind) []Node {
	return slices.Clone(c.byKind[kind])
}

// Lookup returns the asset of kind at path.
func (c *FSCatalog) Lookup(kind Kind, path string) (Node, bool) {
	node, ok := c.byPath[kind][path]
	return node, ok
}

// LoadScript reads and validates the script at path.
func (c *FSCatalog) LoadScript(ctx context.Context, path string) (*scripts.Document, error) {
	data, err := c.read(ctx, KindScript, path)
	if err != nil {
		return nil, err
	}
	doc, err := scripts.Decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("assets: load script %q: %w", path, err)
	}
	return doc, nil
}

// LoadLocalePack reads and validates the locale pack at path.
func (c *FSCatalog) LoadLocalePack(ctx context.Context, path string) (*LocalePack, error) {
	data, err := c.read(ctx, KindLocalePack, path)
	if err != nil {
		return nil, err
	}
	var pack LocalePack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("assets: load locale pack %q: %w", path, err)
	}
	pack.Path = path
	return &pack, nil
}

func (c *FSCatalog) read(ctx context.Context, kind Kind, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node, ok := c.Lookup(kind, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrAssetNotFound, kind, path)
	}
	data, err := fs.ReadFile(c.fsys, node.File)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", node.File, err)
	}
	if err := validateDocument(kind, path, data); err != nil {
		c.logger.Warn("assets.document.invalid", "kind", kind, "path", path, "error", err)
		return nil, err
	}
	return data, nil
}
