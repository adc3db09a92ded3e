package translationscmd

import (
	"context"
	"errors"
	"os"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-scriptloc/internal/assets"
	"github.com/goliatone/go-scriptloc/internal/localization"
	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/internal/seeding"
	"github.com/goliatone/go-scriptloc/internal/translations"
)

type stubSubmitter struct {
	submissions []localization.Submission
	err         error
}

func (s *stubSubmitter) SubmitTranslation(_ context.Context, submission localization.Submission) error {
	s.submissions = append(s.submissions, submission)
	return s.err
}

type stubSeeder struct {
	seedCalls      int
	bootstrapCalls int
	packs          []*assets.LocalePack
	result         seeding.Result
	err            error
}

func (s *stubSeeder) Seed(_ context.Context, packs []*assets.LocalePack) (seeding.Result, error) {
	s.seedCalls++
	s.packs = packs
	return s.result, s.err
}

func (s *stubSeeder) Bootstrap(context.Context, assets.Catalog) (seeding.Result, error) {
	s.bootstrapCalls++
	return s.result, s.err
}

func testCatalog(t *testing.T) *assets.FSCatalog {
	t.Helper()
	catalog, err := assets.NewFSCatalog(os.DirFS("../../assets/testdata/assets"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func TestSubmitTranslationHandlerExecutesService(t *testing.T) {
	service := &stubSubmitter{}
	handler := NewSubmitTranslationHandler(service, logging.NoOp())

	msg := SubmitTranslationCommand{Path: "map1/dlg.sq", Lang: "en", Key: "line1", Value: "Hi"}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(service.submissions) != 1 {
		t.Fatalf("expected one submission, got %d", len(service.submissions))
	}
	got := service.submissions[0]
	if got.Path != "map1/dlg.sq" || got.Lang != "en" || got.Key != "line1" || got.Value != "Hi" {
		t.Fatalf("unexpected submission %+v", got)
	}
}

func TestSubmitTranslationHandlerValidationError(t *testing.T) {
	service := &stubSubmitter{}
	handler := NewSubmitTranslationHandler(service, nil)

	err := handler.Execute(context.Background(), SubmitTranslationCommand{Value: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.submissions) != 0 {
		t.Fatalf("expected no submissions, got %d", len(service.submissions))
	}
}

func TestSubmitTranslationCommandAllowsEmptyValue(t *testing.T) {
	msg := SubmitTranslationCommand{Path: "ui/menu.csv", Lang: "ko", Key: "quit"}
	if err := msg.Validate(); err != nil {
		t.Fatalf("expected empty value to be accepted, got %v", err)
	}
}

func TestSubmitTranslationHandlerWrapsServiceError(t *testing.T) {
	service := &stubSubmitter{err: errors.New("boom")}
	handler := NewSubmitTranslationHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), SubmitTranslationCommand{Path: "p", Lang: "en", Key: "k"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSubmitTranslationHandlerContextCancellation(t *testing.T) {
	service := &stubSubmitter{}
	handler := NewSubmitTranslationHandler(service, logging.NoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, SubmitTranslationCommand{Path: "p", Lang: "en", Key: "k"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for cancellation, got %v", err)
	}
	if len(service.submissions) != 0 {
		t.Fatalf("expected no submissions, got %d", len(service.submissions))
	}
}

func TestSeedLocalePacksHandlerBootstrapsByDefault(t *testing.T) {
	seeder := &stubSeeder{result: seeding.Result{Skipped: true}}
	var hooked []seeding.Result
	handler := NewSeedLocalePacksHandler(seeder, testCatalog(t), logging.NoOp(),
		WithAfterSeed(func(_ context.Context, result seeding.Result) error {
			hooked = append(hooked, result)
			return nil
		}),
	)

	if err := handler.Execute(context.Background(), SeedLocalePacksCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seeder.bootstrapCalls != 1 || seeder.seedCalls != 0 {
		t.Fatalf("expected bootstrap only, got bootstrap=%d seed=%d", seeder.bootstrapCalls, seeder.seedCalls)
	}
	if len(hooked) != 1 || !hooked[0].Skipped {
		t.Fatalf("expected after-seed hook with skipped result, got %+v", hooked)
	}
}

func TestSeedLocalePacksHandlerForceSeedsAllPacks(t *testing.T) {
	seeder := &stubSeeder{}
	handler := NewSeedLocalePacksHandler(seeder, testCatalog(t), logging.NoOp())

	if err := handler.Execute(context.Background(), SeedLocalePacksCommand{Force: true}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seeder.seedCalls != 1 || seeder.bootstrapCalls != 0 {
		t.Fatalf("expected seed only, got bootstrap=%d seed=%d", seeder.bootstrapCalls, seeder.seedCalls)
	}
	if len(seeder.packs) != 1 || seeder.packs[0].Path != "locale/main.locale_pack" {
		t.Fatalf("unexpected packs %+v", seeder.packs)
	}
}

func TestSeedLocalePacksHandlerSkipsHookOnError(t *testing.T) {
	seeder := &stubSeeder{err: errors.New("insert failed")}
	hooked := false
	handler := NewSeedLocalePacksHandler(seeder, testCatalog(t), logging.NoOp(),
		WithAfterSeed(func(context.Context, seeding.Result) error {
			hooked = true
			return nil
		}),
	)

	if err := handler.Execute(context.Background(), SeedLocalePacksCommand{}); err == nil {
		t.Fatal("expected error")
	}
	if hooked {
		t.Fatal("expected after-seed hook to be skipped")
	}
}

func TestSeedThenSubmitAgainstMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := translations.NewMemoryStore()
	catalog := testCatalog(t)
	service, err := localization.NewService(store, catalog)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	seed := NewSeedLocalePacksHandler(seeding.NewSeeder(store), catalog, logging.NoOp(),
		WithAfterSeed(func(ctx context.Context, _ seeding.Result) error {
			return service.Init(ctx)
		}),
	)
	if err := seed.Execute(ctx, SeedLocalePacksCommand{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if paths := service.TranslatablePaths(ctx); len(paths) != 3 {
		t.Fatalf("expected 3 translatable paths, got %v", paths)
	}

	submit := NewSubmitTranslationHandler(service, logging.NoOp())
	msg := SubmitTranslationCommand{Path: "ui/menu.csv", Lang: "ko", Key: "start", Value: "출발"}
	if err := submit.Execute(ctx, msg); err != nil {
		t.Fatalf("submit: %v", err)
	}
	value, ok, err := store.Get(ctx, "ui/menu.csv", "ko", "start")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "출발" {
		t.Fatalf("expected updated value, got %q (found=%v)", value, ok)
	}
}
