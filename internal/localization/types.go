package localization

import (
	"encoding/json"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-scriptloc/internal/scripts"
)

// Value is the payload served for an asset path: a merged script tree, or a
// key table for assets without a script.
type Value struct {
	Script *scripts.Node       `json:"script,omitempty"`
	CSV    map[string]CSVEntry `json:"csv,omitempty"`
}

// MarshalJSON keeps an empty key table in the payload; only a nil table is
// omitted.
func (v Value) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)
	if v.Script != nil {
		out["script"] = v.Script
	}
	if v.CSV != nil {
		out["csv"] = v.CSV
	}
	return json.Marshal(out)
}

// CSVEntry holds the en and ko strings stored for one key. A language with
// no row for the key is nil.
type CSVEntry struct {
	EN *string `json:"en,omitempty"`
	KO *string `json:"ko,omitempty"`
}

// Submission is an edit to one stored translation.
type Submission struct {
	Path  string `json:"path"`
	Lang  string `json:"lang"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TextCodePathRequired tags requests without an asset path.
const TextCodePathRequired = "PATH_REQUIRED"

// ErrPathRequired is returned when a request carries no asset path.
var ErrPathRequired = errors.New("localization: path is required")

func pathRequired() error {
	return goerrors.Wrap(ErrPathRequired, goerrors.CategoryValidation, "path is required").
		WithTextCode(TextCodePathRequired)
}

// IsPathRequired reports whether err is a missing path failure.
func IsPathRequired(err error) bool {
	return errors.Is(err, ErrPathRequired)
}
