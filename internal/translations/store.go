package translations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// Store reads and writes translation records keyed by (path, lang, key).
// Absence is never an error: lookups report it through their boolean result.
type Store interface {
	Get(ctx context.Context, path, lang, key string) (string, bool, error)
	List(ctx context.Context, path, lang string) ([]Entry, error)
	// Languages returns the distinct languages with at least one row for
	// path, sorted ascending.
	Languages(ctx context.Context, path string) ([]string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Insert(ctx context.Context, record Record) error
	// UpdateValue overwrites the value of every row matching (path, lang,
	// key). It reports false, with a nil error, when nothing matched.
	UpdateValue(ctx context.Context, path, lang, key, value string) (bool, error)
	// EnsureSchema creates the locale table. created is false when the table
	// could not be created, usually because it already exists.
	EnsureSchema(ctx context.Context) (created bool, err error)
}

// TextCodeStoreUnavailable tags errors raised by the backing database.
const TextCodeStoreUnavailable = "TRANSLATION_STORE_UNAVAILABLE"

var (
	// ErrRecordPathRequired indicates a record without an asset path.
	ErrRecordPathRequired = errors.New("translations: record path is required")
	// ErrRecordLangRequired indicates a record without a language.
	ErrRecordLangRequired = errors.New("translations: record lang is required")
	// ErrRecordKeyRequired indicates a record without a key.
	ErrRecordKeyRequired = errors.New("translations: record key is required")
)

// IsStoreUnavailable reports whether err came from an unreachable or failing
// store.
func IsStoreUnavailable(err error) bool {
	var wrapped *goerrors.Error
	if !goerrors.As(err, &wrapped) {
		return false
	}
	return wrapped.Category == goerrors.CategoryExternal && wrapped.TextCode == TextCodeStoreUnavailable
}

// IsConflict reports whether err is a constraint violation, such as a
// duplicate record id.
func IsConflict(err error) bool {
	return repository.IsConstraintViolation(err)
}

func storeUnavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	if repository.IsConstraintViolation(err) {
		return fmt.Errorf("translations: %s: %w", op, err)
	}
	wrapped := goerrors.Wrap(err, goerrors.CategoryExternal, "translations: "+op)
	// Wrap keeps the category of go-errors sources, which the repository
	// layer returns for database failures.
	wrapped.Category = goerrors.CategoryExternal
	return wrapped.WithTextCode(TextCodeStoreUnavailable)
}

func validateRecord(record Record) error {
	switch {
	case strings.TrimSpace(record.Path) == "":
		return ErrRecordPathRequired
	case strings.TrimSpace(record.Lang) == "":
		return ErrRecordLangRequired
	case record.Key == "":
		return ErrRecordKeyRequired
	}
	return nil
}
