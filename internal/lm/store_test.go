package lm

import (
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Upsert("k1", "甲"); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert("k1", "乙"); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert("k1", "甲"); err != nil { // refresh recency
		t.Fatal(err)
	}
	if err := store.Upsert("k2", "丙"); err != nil {
		t.Fatal(err)
	}

	phrases, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(phrases["k1"]) != 2 {
		t.Errorf("k1 has %d phrases, want 2", len(phrases["k1"]))
	}
	if len(phrases["k2"]) != 1 || phrases["k2"][0] != "丙" {
		t.Errorf("k2 = %v", phrases["k2"])
	}
}

func TestUserPhrasesWithStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}

	user, err := NewUserPhrasesWithStore(store)
	if err != nil {
		t.Fatal(err)
	}
	user.Add("k", "詞")
	store.Close()

	// A fresh model over the same store sees the persisted phrase.
	store2, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	user2, err := NewUserPhrasesWithStore(store2)
	if err != nil {
		t.Fatal(err)
	}
	if !user2.Has("k", "詞") {
		t.Error("phrase should persist across stores")
	}
}
