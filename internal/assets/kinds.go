package assets

import "strings"

// Kind names an asset loader.
type Kind string

const (
	KindScript     Kind = "sq_script"
	KindLocalePack Kind = "locale_pack"
	// KindTexture is catalogued so texture paths are known, but never
	// loaded by the localization core.
	KindTexture Kind = "texture"
)

// Node is one catalogued asset.
type Node struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	File string `json:"file"`
}

type suffixRule struct {
	suffix string
	kind   Kind
	// trim is removed from the file name to form the asset path.
	trim string
}

var defaultSuffixRules = []suffixRule{
	{suffix: ".sq.json", kind: KindScript, trim: ".json"},
	{suffix: ".locale_pack.json", kind: KindLocalePack, trim: ".json"},
	{suffix: ".png", kind: KindTexture},
	{suffix: ".ktx", kind: KindTexture},
}

func classify(file string) (Node, bool) {
	for _, rule := range defaultSuffixRules {
		if !strings.HasSuffix(file, rule.suffix) {
			continue
		}
		return Node{
			Path: strings.TrimSuffix(file, rule.trim),
			Kind: rule.kind,
			File: file,
		}, true
	}
	return Node{}, false
}
