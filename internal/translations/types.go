package translations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is one translated string: the value of key for an asset path in a
// language. (Path, Lang, Key) is not unique; duplicate rows are legal.
type Record struct {
	bun.BaseModel `bun:"table:locale,alias:loc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Path      string    `bun:"path,notnull" json:"path"`
	Name      string    `bun:"name" json:"name"`
	Lang      string    `bun:"lang,notnull" json:"lang"`
	Key       string    `bun:"key,notnull" json:"key"`
	Value     string    `bun:"value" json:"value"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Entry is a key/value pair returned by Store.List.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func cloneRecord(rec *Record) *Record {
	if rec == nil {
		return nil
	}
	cloned := *rec
	return &cloned
}
