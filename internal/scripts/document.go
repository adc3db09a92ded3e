package scripts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrRootRequired is returned when a script document has no root node.
var ErrRootRequired = errors.New("scripts: document root is required")

// Document is a parsed script asset.
type Document struct {
	Path string `json:"path"`
	Root *Node  `json:"root"`
}

// Built reports whether the document produced a tree with at least one
// child under its root. Empty builds are not served.
func (d *Document) Built() bool {
	return d != nil && d.Root != nil && len(d.Root.Children) > 0
}

// Decode reads a JSON script document. path overrides the path stored in
// the document when it is not empty.
func Decode(r io.Reader, path string) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("scripts: decode document: %w", err)
	}
	if doc.Root == nil {
		return nil, ErrRootRequired
	}
	if path != "" {
		doc.Path = path
	}
	return &doc, nil
}
