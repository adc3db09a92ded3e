package seeding

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-scriptloc/internal/assets"
	"github.com/goliatone/go-scriptloc/internal/identity"
	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

// Mode controls when Bootstrap seeds the store.
type Mode string

const (
	// ModeOnce seeds only when the locale table was created by this run.
	ModeOnce Mode = "once"
	// ModeAlways seeds on every run. Re-runs append duplicate rows.
	ModeAlways Mode = "always"
)

// ParseMode normalises a configured mode, defaulting to ModeOnce.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeOnce:
		return ModeOnce, nil
	case ModeAlways:
		return ModeAlways, nil
	default:
		return "", fmt.Errorf("seeding: unknown mode %q", value)
	}
}

// Result counts the work done by one seeding run.
type Result struct {
	Packs   int  `json:"packs"`
	Items   int  `json:"items"`
	Records int  `json:"records"`
	Skipped bool `json:"skipped"`
}

// Seeder copies locale pack tables into a translation store.
type Seeder struct {
	store  translations.Store
	mode   Mode
	logger interfaces.Logger
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithMode sets the bootstrap policy.
func WithMode(mode Mode) Option {
	return func(s *Seeder) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithLogger sets the seeder logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSeeder constructs a seeder writing into store.
func NewSeeder(store translations.Store, opts ...Option) *Seeder {
	seeder := &Seeder{
		store:  store,
		mode:   ModeOnce,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(seeder)
		}
	}
	return seeder
}

// Mode reports the configured bootstrap policy.
func (s *Seeder) Mode() Mode {
	return s.mode
}

// Seed inserts one record per key for every (item, lang) table the packs
// carry. Packs, items and languages are visited in declaration order and keys
// in ascending order. Records get random ids, so seeding a populated store
// appends duplicates.
func (s *Seeder) Seed(ctx context.Context, packs []*assets.LocalePack) (Result, error) {
	return s.seed(ctx, packs, false)
}

// stableIDs derives record ids from (path, lang, key, occurrence). Only safe
// on an empty table.
func (s *Seeder) seed(ctx context.Context, packs []*assets.LocalePack, stableIDs bool) (Result, error) {
	var result Result
	occurrences := map[string]int{}

	for _, pack := range packs {
		if pack == nil {
			continue
		}
		result.Packs++
		for _, item := range pack.Config.Items {
			result.Items++
			for _, lang := range pack.Langs {
				entries, ok := pack.Entries(lang, item.Name)
				if !ok {
					continue
				}
				for _, key := range assets.SortedKeys(entries) {
					record := translations.Record{
						Path:  item.Path,
						Name:  item.Name,
						Lang:  lang,
						Key:   key,
						Value: entries[key],
					}
					if stableIDs {
						slot := item.Path + "\x00" + lang + "\x00" + key
						record.ID = identity.RecordUUID(item.Path, lang, key, occurrences[slot])
						occurrences[slot]++
					}
					if err := s.store.Insert(ctx, record); err != nil {
						return result, fmt.Errorf("seeding: insert %s/%s/%s: %w", item.Path, lang, key, err)
					}
					result.Records++
				}
			}
		}
	}

	s.logger.Info("seeding.packs.completed",
		"packs", result.Packs,
		"items", result.Items,
		"records", result.Records,
	)
	return result, nil
}

// Bootstrap prepares the locale table and seeds it from every locale pack in
// catalog. Table creation failures are logged and ignored; in ModeOnce they
// also skip seeding, and a fresh table gets deterministic record ids.
func (s *Seeder) Bootstrap(ctx context.Context, catalog assets.Catalog) (Result, error) {
	created, err := s.store.EnsureSchema(ctx)
	if err != nil {
		s.logger.Debug("seeding.schema.skipped", "error", err)
	}
	if !created && s.mode == ModeOnce {
		s.logger.Info("seeding.packs.skipped", "mode", string(s.mode))
		return Result{Skipped: true}, nil
	}

	packs, err := LoadPacks(ctx, catalog)
	if err != nil {
		return Result{}, err
	}
	return s.seed(ctx, packs, created && s.mode == ModeOnce)
}

// LoadPacks loads every locale pack listed by catalog.
func LoadPacks(ctx context.Context, catalog assets.Catalog) ([]*assets.LocalePack, error) {
	nodes := catalog.Nodes(assets.KindLocalePack)
	packs := make([]*assets.LocalePack, 0, len(nodes))
	for _, node := range nodes {
		pack, err := catalog.LoadLocalePack(ctx, node.Path)
		if err != nil {
			return nil, fmt.Errorf("seeding: load %s: %w", node.Path, err)
		}
		packs = append(packs, pack)
	}
	return packs, nil
}
