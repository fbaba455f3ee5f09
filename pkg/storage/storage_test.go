package storage

import (
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGet(t *testing.T) {
	store := setupStore(t)

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	want := record{Name: "tomato", Count: 3}
	if err := store.Set("test:1", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got record
	if err := store.Get("test:1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := setupStore(t)

	var value string
	err := store.Get("missing", &value)
	if err != ErrNotFound {
		t.Errorf("Get on missing key = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store := setupStore(t)

	if err := store.Set("test:1", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete("test:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var value string
	if err := store.Get("test:1", &value); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestListPrefix(t *testing.T) {
	store := setupStore(t)

	keys := []string{"pantry:1", "pantry:2", "cook:1:100"}
	for _, key := range keys {
		if err := store.Set(key, "value"); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	got, err := store.List("pantry:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List returned %d keys, want 2: %v", len(got), got)
	}
	for _, key := range got {
		if key != "pantry:1" && key != "pantry:2" {
			t.Errorf("unexpected key %s", key)
		}
	}
}
