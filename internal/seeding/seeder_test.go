package seeding_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/goliatone/go-scriptloc/internal/assets"
	"github.com/goliatone/go-scriptloc/internal/seeding"
	"github.com/goliatone/go-scriptloc/internal/translations"
	"github.com/goliatone/go-scriptloc/pkg/testsupport"
	"github.com/google/uuid"
)

func fixtureCatalog(t *testing.T) *assets.FSCatalog {
	t.Helper()
	catalog, err := assets.NewFSCatalog(os.DirFS("../assets/testdata/assets"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func TestSeedInsertsInDeclarationAndKeyOrder(t *testing.T) {
	store := translations.NewMemoryStore()
	pack := &assets.LocalePack{
		Config: assets.LocalePackConfig{Items: []assets.LocalePackItem{
			{Path: "a.sq", Name: "A"},
			{Path: "b.sq", Name: "B"},
		}},
		Langs: []string{"ko", "en"},
		Data: map[string]map[string]map[string]string{
			"en": {"A": {"z": "Z", "m": "M"}, "B": {"k": "K"}},
			"ko": {"A": {"m": "엠"}},
		},
	}

	result, err := seeding.NewSeeder(store).Seed(context.Background(), []*assets.LocalePack{pack})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if result.Packs != 1 || result.Items != 2 || result.Records != 4 {
		t.Fatalf("unexpected result %+v", result)
	}

	want := []string{"a.sq/ko/m", "a.sq/en/m", "a.sq/en/z", "b.sq/en/k"}
	records := store.Records()
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, rec := range records {
		if got := rec.Path + "/" + rec.Lang + "/" + rec.Key; got != want[i] {
			t.Fatalf("record %d: expected %s, got %s", i, want[i], got)
		}
	}
	if records[0].Name != "A" || records[0].Value != "엠" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
}

func TestSeedSkipsMissingTables(t *testing.T) {
	store := translations.NewMemoryStore()
	pack := &assets.LocalePack{
		Config: assets.LocalePackConfig{Items: []assets.LocalePackItem{{Path: "a.sq", Name: "A"}}},
		Langs:  []string{"en", "fr"},
		Data:   map[string]map[string]map[string]string{"en": {"A": {"k": "v"}}},
	}

	result, err := seeding.NewSeeder(store).Seed(context.Background(), []*assets.LocalePack{pack, nil})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if result.Records != 1 {
		t.Fatalf("expected a single record, got %+v", result)
	}
}

func TestBootstrapAssignsStableIDsToFreshTable(t *testing.T) {
	bootstrap := func() []translations.Record {
		store := translations.NewMemoryStore()
		if _, err := seeding.NewSeeder(store).Bootstrap(context.Background(), fixtureCatalog(t)); err != nil {
			t.Fatalf("bootstrap: %v", err)
		}
		return store.Records()
	}
	first, second := bootstrap(), bootstrap()
	if len(first) != 8 || len(second) != 8 {
		t.Fatalf("expected 8 records per run, got %d and %d", len(first), len(second))
	}
	seen := map[uuid.UUID]struct{}{}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("record %d: expected stable id, got %s and %s", i, first[i].ID, second[i].ID)
		}
		seen[first[i].ID] = struct{}{}
	}
	if len(seen) != len(first) {
		t.Fatal("expected distinct ids per record")
	}
}

func TestSeedUsesRandomIDs(t *testing.T) {
	pack := &assets.LocalePack{
		Config: assets.LocalePackConfig{Items: []assets.LocalePackItem{{Path: "a.sq", Name: "A"}}},
		Langs:  []string{"en"},
		Data:   map[string]map[string]map[string]string{"en": {"A": {"k": "v"}}},
	}
	seed := func() translations.Record {
		store := translations.NewMemoryStore()
		if _, err := seeding.NewSeeder(store).Seed(context.Background(), []*assets.LocalePack{pack}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return store.Records()[0]
	}
	if seed().ID == seed().ID {
		t.Fatal("expected explicit seeding to assign fresh ids")
	}
}

func TestSeedAppendsToPopulatedBunStore(t *testing.T) {
	ctx := context.Background()
	store := translations.NewBunStore(testsupport.NewBunMemoryDB(t))
	seeder := seeding.NewSeeder(store)
	catalog := fixtureCatalog(t)

	if _, err := seeder.Bootstrap(ctx, catalog); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	packs, err := seeding.LoadPacks(ctx, catalog)
	if err != nil {
		t.Fatalf("load packs: %v", err)
	}
	result, err := seeder.Seed(ctx, packs)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if result.Records != 8 {
		t.Fatalf("expected 8 appended records, got %+v", result)
	}
	entries, err := store.List(ctx, "map1/dlg.sq", "en")
	if err != nil || len(entries) != 4 {
		t.Fatalf("expected duplicated rows, got %v err=%v", entries, err)
	}
}

func TestBootstrapSeedsFreshStore(t *testing.T) {
	ctx := context.Background()
	store := translations.NewBunStore(testsupport.NewBunMemoryDB(t))
	seeder := seeding.NewSeeder(store)

	result, err := seeder.Bootstrap(ctx, fixtureCatalog(t))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if result.Skipped || result.Records != 8 {
		t.Fatalf("unexpected result %+v", result)
	}

	value, ok, err := store.Get(ctx, "config/story/CharacterName.xls/Name", "ko", "name::hero")
	if err != nil || !ok || value != "용사" {
		t.Fatalf("expected seeded character name, got %q ok=%v err=%v", value, ok, err)
	}

	again, err := seeder.Bootstrap(ctx, fixtureCatalog(t))
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if !again.Skipped {
		t.Fatalf("expected second bootstrap to skip, got %+v", again)
	}
	entries, err := store.List(ctx, "map1/dlg.sq", "en")
	if err != nil || len(entries) != 2 {
		t.Fatalf("expected no duplicate rows, got %v err=%v", entries, err)
	}
}

func TestBootstrapAlwaysModeAppendsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := translations.NewMemoryStore()
	seeder := seeding.NewSeeder(store, seeding.WithMode(seeding.ModeAlways))

	for range 2 {
		if _, err := seeder.Bootstrap(ctx, fixtureCatalog(t)); err != nil {
			t.Fatalf("bootstrap: %v", err)
		}
	}
	if got := len(store.Records()); got != 16 {
		t.Fatalf("expected 16 records after two runs, got %d", got)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]seeding.Mode{"": seeding.ModeOnce, "ONCE": seeding.ModeOnce, " always ": seeding.ModeAlways}
	for input, want := range cases {
		got, err := seeding.ParseMode(input)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := seeding.ParseMode("never"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

type failingStore struct {
	translations.Store
}

func (failingStore) Insert(context.Context, translations.Record) error {
	return errors.New("disk full")
}

func TestSeedPropagatesInsertErrors(t *testing.T) {
	pack := &assets.LocalePack{
		Config: assets.LocalePackConfig{Items: []assets.LocalePackItem{{Path: "a.sq", Name: "A"}}},
		Langs:  []string{"en"},
		Data:   map[string]map[string]map[string]string{"en": {"A": {"k": "v"}}},
	}
	_, err := seeding.NewSeeder(failingStore{Store: translations.NewMemoryStore()}).Seed(context.Background(), []*assets.LocalePack{pack})
	if err == nil {
		t.Fatal("expected insert error")
	}
}

func TestSeedShippedPackFixture(t *testing.T) {
	var pack assets.LocalePack
	if err := testsupport.LoadGolden("../assets/testdata/assets/locale/main.locale_pack.json", &pack); err != nil {
		t.Fatalf("load pack: %v", err)
	}
	store := translations.NewMemoryStore()

	result, err := seeding.NewSeeder(store).Seed(context.Background(), []*assets.LocalePack{&pack})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if result.Records != 8 || result.Packs != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if value, ok, _ := store.Get(context.Background(), "config/story/CharacterName.xls/Name", "ko", "name::hero"); !ok || value != "용사" {
		t.Fatalf("expected korean character name, got %q", value)
	}
}
