package localstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type record struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestFileBlobStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b := NewFileBlobStore(dir)

	in := record{Name: "goals", Items: []string{"a", "b"}}
	if err := b.Put("spendingGoals", in); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var out record
	ok, err := b.Get("spendingGoals", &out)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if out.Name != in.Name || strings.Join(out.Items, ",") != "a,b" {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}

	// overwrite replaces the whole value
	if err := b.Put("spendingGoals", record{Name: "other"}); err != nil {
		t.Fatal(err)
	}
	out = record{}
	if _, err := b.Get("spendingGoals", &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "other" || len(out.Items) != 0 {
		t.Errorf("after overwrite got %+v", out)
	}
}

func TestFileBlobStore_MissingKey(t *testing.T) {
	b := NewFileBlobStore(t.TempDir())
	var out record
	ok, err := b.Get("nothing", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() reported a missing key as present")
	}
}

func TestFileBlobStore_InvalidKey(t *testing.T) {
	b := NewFileBlobStore(t.TempDir())
	for _, key := range []string{"", "../escape", `a\b`, ".hidden"} {
		if err := b.Put(key, 1); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
		var v int
		if _, err := b.Get(key, &v); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
}

func TestFileBlobStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBlobStore(dir)
	for i := 0; i < 3; i++ {
		if err := b.Put("subscriptions", []int{i}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "subscriptions.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected files: %v", names)
	}
}

func TestFileBlobStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "subscriptions.json"), []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	var v []int
	if _, err := NewFileBlobStore(dir).Get("subscriptions", &v); err == nil {
		t.Error("expected parse error")
	}
}
