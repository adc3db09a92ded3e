package assets

import (
	"maps"
	"slices"
)

// LocalePackItem maps a locale table name to the asset path its rows
// translate.
type LocalePackItem struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// LocalePackConfig lists the tables shipped in a pack.
type LocalePackConfig struct {
	Items []LocalePackItem `json:"items"`
}

// LocalePack is a shipped bundle of translations:
// Data[lang][name][key] = value.
type LocalePack struct {
	Path   string                                  `json:"-"`
	Config LocalePackConfig                        `json:"config"`
	Langs  []string                                `json:"langs"`
	Data   map[string]map[string]map[string]string `json:"data"`
}

// Entries returns the key/value table for (lang, name) and whether the pack
// carries one.
func (p *LocalePack) Entries(lang, name string) (map[string]string, bool) {
	if p == nil {
		return nil, false
	}
	tables, ok := p.Data[lang]
	if !ok {
		return nil, false
	}
	entries, ok := tables[name]
	if !ok || entries == nil {
		return nil, false
	}
	return entries, true
}

// SortedKeys returns the keys of entries in ascending order.
func SortedKeys(entries map[string]string) []string {
	return slices.Sorted(maps.Keys(entries))
}
