package translations

import (
	"context"
	"slices"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const recordNamespace = "locale"

// BunStore implements Store on a bun database, optionally caching reads.
// Cached reads are keyed on their scalar arguments; every write drops the
// whole locale namespace.
type BunStore struct {
	db           *bun.DB
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	cachePrefix  string
	now          func() time.Time
}

type lookup struct {
	Value string
	Found bool
}

// NewBunStore creates a store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates a store whose lookups go through the given
// cache service.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStore {
	store := &BunStore{
		db:   db,
		repo: NewRecordRepository(db),
		now:  func() time.Time { return time.Now().UTC() },
	}
	if cacheService != nil && serializer != nil {
		store.cacheService = cacheService
		store.serializer = serializer
		store.cachePrefix = cachePrefix(recordNamespace)
	}
	return store
}

func (s *BunStore) Get(ctx context.Context, path, lang, key string) (string, bool, error) {
	found, err := cached(ctx, s, "get", func(ctx context.Context) (lookup, error) {
		records, _, err := s.repo.List(ctx,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.path = ?", path).
					Where("?TableAlias.lang = ?", lang).
					Where("?TableAlias.key = ?", key).
					OrderExpr("?TableAlias.created_at ASC, ?TableAlias.rowid ASC")
			}),
			repository.SelectPaginate(1, 0),
		)
		if err != nil || len(records) == 0 {
			return lookup{}, err
		}
		return lookup{Value: records[0].Value, Found: true}, nil
	}, path, lang, key)
	if err != nil {
		return "", false, storeUnavailable(err, "get translation")
	}
	return found.Value, found.Found, nil
}

func (s *BunStore) List(ctx context.Context, path, lang string) ([]Entry, error) {
	entries, err := cached(ctx, s, "list", func(ctx context.Context) ([]Entry, error) {
		records, _, err := s.repo.List(ctx,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.path = ?", path).
					Where("?TableAlias.lang = ?", lang).
					OrderExpr("?TableAlias.created_at ASC, ?TableAlias.rowid ASC")
			}),
		)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, Entry{Key: rec.Key, Value: rec.Value})
		}
		return entries, nil
	}, path, lang)
	if err != nil {
		return nil, storeUnavailable(err, "list translations")
	}
	return slices.Clone(entries), nil
}

func (s *BunStore) Languages(ctx context.Context, path string) ([]string, error) {
	langs, err := cached(ctx, s, "languages", func(ctx context.Context) ([]string, error) {
		var langs []string
		err := s.db.NewSelect().
			Model((*Record)(nil)).
			Column("lang").
			Where("?TableAlias.path = ?", path).
			Group("lang").
			Order("lang ASC").
			Scan(ctx, &langs)
		return langs, err
	}, path)
	if err != nil {
		return nil, storeUnavailable(err, "list languages")
	}
	return slices.Clone(langs), nil
}

func (s *BunStore) Exists(ctx context.Context, path string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*Record)(nil)).
		Where("?TableAlias.path = ?", path).
		Exists(ctx)
	if err != nil {
		return false, storeUnavailable(err, "check translations")
	}
	return exists, nil
}

func (s *BunStore) Insert(ctx context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	rec := cloneRecord(&record)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := s.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		return storeUnavailable(err, "insert translation")
	}
	return s.invalidate(ctx)
}

func (s *BunStore) UpdateValue(ctx context.Context, path, lang, key, value string) (bool, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.path = ?", path).
				Where("?TableAlias.lang = ?", lang).
				Where("?TableAlias.key = ?", key)
		}),
	)
	if err != nil {
		return false, storeUnavailable(err, "find translation")
	}
	if len(records) == 0 {
		return false, nil
	}

	now := s.now()
	for _, rec := range records {
		rec.Value = value
		rec.UpdatedAt = now
		if _, err := s.repo.Update(ctx, rec,
			repository.UpdateByID(rec.ID.String()),
			repository.UpdateColumns("value", "updated_at"),
		); err != nil {
			return false, storeUnavailable(err, "update translation")
		}
	}
	return true, s.invalidate(ctx)
}

func (s *BunStore) EnsureSchema(ctx context.Context) (bool, error) {
	if _, err := s.db.NewCreateTable().Model((*Record)(nil)).Exec(ctx); err != nil {
		return false, storeUnavailable(err, "create locale table")
	}
	return true, nil
}

// InvalidateCache drops every cached locale read.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	return s.invalidate(ctx)
}

func (s *BunStore) invalidate(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

// cached runs fetch through the cache service under a key built from the
// namespace, op and args. Without a cache it calls fetch directly.
func cached[T any](ctx context.Context, s *BunStore, op string, fetch cache.FetchFn[T], args ...any) (T, error) {
	if s.cacheService == nil {
		return fetch(ctx)
	}
	key := s.serializer.SerializeKey(recordNamespace, append([]any{op}, args...)...)
	return cache.GetOrFetch(ctx, s.cacheService, key, fetch)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
