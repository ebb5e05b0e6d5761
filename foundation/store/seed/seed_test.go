package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/storechain/storechain/foundation/store/seed"
)

func TestLoad(t *testing.T) {
	doc := `{
  "date": "2025-01-01T00:00:00Z",
  "name": "test-net",
  "stores": {
    "counter": {
      "owner": "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
      "value": "123"
    }
  }
}`

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}

	sd, err := seed.Load(path)
	if err != nil {
		t.Fatalf("loading seed file: %v", err)
	}

	if sd.Name != "test-net" {
		t.Errorf("wrong name: got %q, exp %q", sd.Name, "test-net")
	}

	st, exists := sd.Stores["counter"]
	if !exists {
		t.Fatal("expected the counter store to exist")
	}

	if st.Owner != "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4" || st.Value != "123" {
		t.Errorf("wrong store data: got %s/%s", st.Owner, st.Value)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := seed.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing seed file")
	}
}
