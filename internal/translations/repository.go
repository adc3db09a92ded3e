package translations

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewRecordRepository creates a repository for locale records.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(rec *Record) uuid.UUID {
			return rec.ID
		},
		SetID: func(rec *Record, id uuid.UUID) {
			rec.ID = id
		},
		// (path, lang, key) is not unique, so rows are only addressable by id.
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(rec *Record) string {
			return rec.ID.String()
		},
	})
}
