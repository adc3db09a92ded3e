package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecordUUIDIsStable(t *testing.T) {
	first := RecordUUID("map1/dlg.sq", "en", "line1", 0)
	second := RecordUUID("map1/dlg.sq", "en", "line1", 0)
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
}

func TestRecordUUIDSeparatesInputs(t *testing.T) {
	base := RecordUUID("map1/dlg.sq", "en", "line1", 0)
	cases := map[string]uuid.UUID{
		"occurrence": RecordUUID("map1/dlg.sq", "en", "line1", 1),
		"lang":       RecordUUID("map1/dlg.sq", "ko", "line1", 0),
		"key case":   RecordUUID("map1/dlg.sq", "en", "Line1", 0),
		"path":       RecordUUID("map2/dlg.sq", "en", "line1", 0),
	}
	for name, id := range cases {
		if id == base {
			t.Fatalf("%s: expected distinct uuid", name)
		}
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s", got)
	}
}
