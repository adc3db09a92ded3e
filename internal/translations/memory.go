package translations

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps records in insertion order behind a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	schema  bool
	now     func() time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryStore) Get(_ context.Context, path, lang, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.Path == path && rec.Lang == lang && rec.Key == key {
			return rec.Value, true, nil
		}
	}
	return "", false, nil
}

func (m *MemoryStore) List(_ context.Context, path, lang string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0)
	for _, rec := range m.records {
		if rec.Path == path && rec.Lang == lang {
			entries = append(entries, Entry{Key: rec.Key, Value: rec.Value})
		}
	}
	return entries, nil
}

func (m *MemoryStore) Languages(_ context.Context, path string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	langs := make([]string, 0)
	for _, rec := range m.records {
		if rec.Path != path {
			continue
		}
		if _, ok := seen[rec.Lang]; ok {
			continue
		}
		seen[rec.Lang] = struct{}{}
		langs = append(langs, rec.Lang)
	}
	slices.Sort(langs)
	return langs, nil
}

func (m *MemoryStore) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.ContainsFunc(m.records, func(rec *Record) bool {
		return rec.Path == path
	}), nil
}

func (m *MemoryStore) Insert(_ context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := cloneRecord(&record)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryStore) UpdateValue(_ context.Context, path, lang, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := false
	for _, rec := range m.records {
		if rec.Path == path && rec.Lang == lang && rec.Key == key {
			rec.Value = value
			rec.UpdatedAt = m.now()
			updated = true
		}
	}
	return updated, nil
}

// EnsureSchema reports true only on its first call, like creating a table
// that does not exist yet.
func (m *MemoryStore) EnsureSchema(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.schema {
		return false, nil
	}
	m.schema = true
	return true, nil
}

// Records returns a copy of every stored record in insertion order.
func (m *MemoryStore) Records() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, *rec)
	}
	return out
}
