package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are hashed verbatim: translation keys are case sensitive, so
// normalization is disabled.
func UUID(key string) uuid.UUID {
	if strings.TrimSpace(key) == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// RecordUUID identifies the occurrence-th seeded row for (path, lang, key).
func RecordUUID(path, lang, key string, occurrence int) uuid.UUID {
	return UUID(strings.Join([]string{
		"scriptloc:locale",
		path,
		lang,
		key,
		strconv.Itoa(occurrence),
	}, "\x1f"))
}
