package kvstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *File {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "secrets.toml"))
}

func TestReadMissingFile(t *testing.T) {
	store := newTestStore(t)

	value, found, err := store.Read("ApiToken")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if found {
		t.Error("Expected found=false for missing file")
	}
	if value != "" {
		t.Errorf("Expected empty value, got %q", value)
	}
}

func TestWriteAndRead(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("ApiToken", "blob-1"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, found, err := store.Read("ApiToken")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found {
		t.Fatal("Expected found=true")
	}
	if value != "blob-1" {
		t.Errorf("Expected %q, got %q", "blob-1", value)
	}
}

func TestWriteReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("ApiToken", "blob-1"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("ApiToken", "blob-2"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, _, err := store.Read("ApiToken")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if value != "blob-2" {
		t.Errorf("Expected %q, got %q", "blob-2", value)
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")

	if err := New(path).Write("DbPassword", "blob"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, found, err := New(path).Read("DbPassword")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found || value != "blob" {
		t.Errorf("Expected persisted value, got %q (found=%t)", value, found)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("ApiToken", "blob"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if err := store.Delete("ApiToken"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, found, err := store.Read("ApiToken")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if found {
		t.Error("Expected record to be deleted")
	}

	// Deleting a missing record is not an error.
	if err := store.Delete("ApiToken"); err != nil {
		t.Errorf("Delete of missing record failed: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"Zeta", "Alpha", "MyPwd"} {
		if err := store.Write(name, "blob"); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"Alpha", "MyPwd", "Zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Expected %v, got %v", want, names)
	}
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)

	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no names, got %v", names)
	}
}

func TestFilePermissions(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("ApiToken", "blob"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}
}

func TestCorruptFile(t *testing.T) {
	store := newTestStore(t)

	if err := os.MkdirAll(filepath.Dir(store.Path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Read("ApiToken"); err == nil {
		t.Error("Expected error reading corrupt store")
	}
}
