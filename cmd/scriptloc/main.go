package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-scriptloc"
)

const shutdownTimeout = 10 * time.Second

var moduleBuilder = scriptloc.New

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("scriptloc: %v", err)
	}
}

func run(args []string) error {
	name := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch name {
	case "serve":
		return runServe(ctx, args)
	case "seed":
		return runSeed(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (expected serve or seed)", name)
	}
}

// bindConfigFlags registers the flags shared by every command and returns a
// function producing the resulting configuration after parsing.
func bindConfigFlags(fs *flag.FlagSet) func() scriptloc.Config {
	defaults := scriptloc.DefaultConfig()

	assetRoot := fs.String("assets", defaults.AssetRoot, "Root directory of the script and locale pack assets")
	driver := fs.String("storage", defaults.Storage.Driver, "Translation store driver (sqlite or memory)")
	dsn := fs.String("dsn", defaults.Storage.DSN, "SQLite data source name")
	cacheEnabled := fs.Bool("cache", defaults.Cache.Enabled, "Cache store reads")
	cacheTTL := fs.Duration("cache-ttl", defaults.Cache.DefaultTTL, "Store read cache lifetime")
	characterPath := fs.String("character-path", defaults.Languages.CharacterPath, "Asset path holding character display names")
	characterLangs := fs.String("character-langs", strings.Join(defaults.Languages.CharacterFallback, ","), "Comma separated character name language fallback chain")
	seedMode := fs.String("seed-mode", defaults.Seeding.Mode, "Seeding policy: once or always")
	createMissing := fs.Bool("create-missing", defaults.Submit.CreateMissing, "Insert rows for edits that match nothing")
	logLevel := fs.String("log-level", defaults.Logging.Level, "Log level")
	logFormat := fs.String("log-format", defaults.Logging.Format, "Log format (json, console or pretty)")

	return func() scriptloc.Config {
		cfg := defaults
		cfg.AssetRoot = *assetRoot
		cfg.Storage.Driver = *driver
		cfg.Storage.DSN = *dsn
		cfg.Cache.Enabled = *cacheEnabled
		cfg.Cache.DefaultTTL = *cacheTTL
		cfg.Languages.CharacterPath = *characterPath
		cfg.Languages.CharacterFallback = splitList(*characterLangs)
		cfg.Seeding.Mode = *seedMode
		cfg.Submit.CreateMissing = *createMissing
		cfg.Logging.Level = *logLevel
		cfg.Logging.Format = *logFormat
		return cfg
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scriptloc-serve", flag.ContinueOnError)
	config := bindConfigFlags(fs)
	addr := fs.String("addr", scriptloc.DefaultConfig().HTTP.Addr, "HTTP listen address")
	basePath := fs.String("base-path", scriptloc.DefaultConfig().HTTP.BasePath, "Prefix for the HTTP routes")
	noSeed := fs.Bool("no-seed", false, "Skip seeding at startup")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config()
	cfg.HTTP.Addr = *addr
	cfg.HTTP.BasePath = *basePath
	cfg.Seeding.Enabled = !*noSeed

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if err := module.Start(ctx); err != nil {
		return fmt.Errorf("start module: %w", err)
	}
	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("scriptloc: listening on %s", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scriptloc-seed", flag.ContinueOnError)
	config := bindConfigFlags(fs)
	force := fs.Bool("force", false, "Seed every pack regardless of the seeding mode")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config()
	cfg.Seeding.Enabled = true

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if err := module.Seed(ctx, *force); err != nil {
		return fmt.Errorf("execute seed command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "locale packs seeded")
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
