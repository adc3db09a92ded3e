package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// MustLoadFixture reads a fixture or fails the test.
func MustLoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := LoadFixture(path)
	if err != nil {
		tb.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}
