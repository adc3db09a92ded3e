package scripts

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

const (
	fieldCharacter = "chara"
	fieldDirective = "directive"
	fieldText      = "text"
	fieldFallback  = "fallback"
	fieldChildren  = "children"
)

// Node is one element of a built script tree.
//
// Character and Directive are optional references into the translation
// store. Text holds the resolved text per language code. Fallback marks
// nodes whose text is still the untranslated source. Attributes keeps every
// other member of the source node so it round-trips unchanged.
type Node struct {
	Character  *string
	Directive  *string
	Text       map[string]string
	Fallback   bool
	Children   []*Node
	Attributes map[string]any
}

// Translatable reports whether the node carries a non-empty character
// reference or directive key.
func (n *Node) Translatable() bool {
	return n.CharacterKey() != "" || n.DirectiveKey() != ""
}

// CharacterKey returns the character reference, or "" when unset.
func (n *Node) CharacterKey() string {
	if n == nil || n.Character == nil {
		return ""
	}
	return *n.Character
}

// DirectiveKey returns the directive key, or "" when unset.
func (n *Node) DirectiveKey() string {
	if n == nil || n.Directive == nil {
		return ""
	}
	return *n.Directive
}

// SetCharacter overwrites the character reference.
func (n *Node) SetCharacter(name string) {
	n.Character = &name
}

// SetText writes text into the slot for lang.
func (n *Node) SetText(lang, text string) {
	if n.Text == nil {
		n.Text = map[string]string{}
	}
	n.Text[lang] = text
}

// TextFor returns the text stored for lang.
func (n *Node) TextFor(lang string) (string, bool) {
	if n == nil || n.Text == nil {
		return "", false
	}
	text, ok := n.Text[lang]
	return text, ok
}

// ClearFallback removes the fallback marker.
func (n *Node) ClearFallback() {
	n.Fallback = false
}

// Walk visits n and its descendants depth-first in pre-order. A non-nil
// error from fn stops the walk.
func (n *Node) Walk(fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cloned := &Node{
		Character:  cloneString(n.Character),
		Directive:  cloneString(n.Directive),
		Text:       maps.Clone(n.Text),
		Fallback:   n.Fallback,
		Attributes: cloneAttributes(n.Attributes),
	}
	if n.Children != nil {
		cloned.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			cloned.Children[i] = child.Clone()
		}
	}
	return cloned
}

// MarshalJSON flattens attributes and the typed fields into one object.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Attributes)+5)
	maps.Copy(out, n.Attributes)
	if n.Character != nil {
		out[fieldCharacter] = *n.Character
	}
	if n.Directive != nil {
		out[fieldDirective] = *n.Directive
	}
	if len(n.Text) > 0 {
		out[fieldText] = n.Text
	}
	if n.Fallback {
		out[fieldFallback] = true
	}
	if n.Children != nil {
		out[fieldChildren] = n.Children
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the typed fields and keeps the remaining members as
// attributes.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("scripts: decode node: %w", err)
	}

	decoded := Node{}
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		var err error
		switch key {
		case fieldCharacter:
			decoded.Character, err = decodeOptionalString(value)
		case fieldDirective:
			decoded.Directive, err = decodeOptionalString(value)
		case fieldText:
			err = json.Unmarshal(value, &decoded.Text)
		case fieldFallback:
			var flag *bool
			err = json.Unmarshal(value, &flag)
			decoded.Fallback = flag != nil && *flag
		case fieldChildren:
			err = json.Unmarshal(value, &decoded.Children)
		default:
			var attr any
			err = json.Unmarshal(value, &attr)
			if err == nil {
				if decoded.Attributes == nil {
					decoded.Attributes = map[string]any{}
				}
				decoded.Attributes[key] = attr
			}
		}
		if err != nil {
			return fmt.Errorf("scripts: decode node field %q: %w", key, err)
		}
	}

	*n = decoded
	return nil
}

func decodeOptionalString(raw json.RawMessage) (*string, error) {
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneAttributes(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneAttributes(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
