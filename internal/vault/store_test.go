package vault

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
)

// fakeProtector simulates a principal-bound protect capability: blobs
// carry the identity they were sealed under, and unprotecting under a
// different identity fails. It records every buffer it hands out so
// tests can verify they were wiped.
type fakeProtector struct {
	identity    string
	failProtect bool
	returned    [][]byte
}

func (p *fakeProtector) Protect(plaintext []byte) ([]byte, error) {
	if p.failProtect {
		return nil, errors.New("protect capability unavailable")
	}
	return append([]byte(p.identity+"|"), plaintext...), nil
}

func (p *fakeProtector) Unprotect(blob []byte) ([]byte, error) {
	prefix := []byte(p.identity + "|")
	if !bytes.HasPrefix(blob, prefix) {
		return nil, errors.New("blob sealed under a different principal")
	}
	plaintext := append([]byte(nil), blob[len(prefix):]...)
	p.returned = append(p.returned, plaintext)
	return plaintext, nil
}

// fakeKV is an in-memory KeyValueStore with injectable failures.
type fakeKV struct {
	data      map[string]string
	failRead  bool
	failWrite bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (kv *fakeKV) Read(name string) (string, bool, error) {
	if kv.failRead {
		return "", false, errors.New("store unavailable")
	}
	value, found := kv.data[name]
	return value, found, nil
}

func (kv *fakeKV) Write(name, value string) error {
	if kv.failWrite {
		return errors.New("store unavailable")
	}
	kv.data[name] = value
	return nil
}

func (kv *fakeKV) Delete(name string) error {
	delete(kv.data, name)
	return nil
}

func (kv *fakeKV) List() ([]string, error) {
	if kv.failRead {
		return nil, errors.New("store unavailable")
	}
	names := make([]string, 0, len(kv.data))
	for name := range kv.data {
		names = append(names, name)
	}
	return names, nil
}

func newTestStore() (*Store, *fakeProtector, *fakeKV) {
	p := &fakeProtector{identity: "alice@machine-1"}
	kv := newFakeKV()
	return New(p, kv, Options{}), p, kv
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _, _ := newTestStore()

	ok, err := store.PutSecret("MyPwd", "Welcome123", true)
	if err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected PutSecret to report success")
	}

	got, err := store.GetSecret("MyPwd")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if got != "Welcome123" {
		t.Errorf("Expected %q, got %q", "Welcome123", got)
	}
}

func TestPutSecretInvalidName(t *testing.T) {
	store, _, kv := newTestStore()

	tests := []string{"", "1abc", "my-name", "with space", "a.b", "naïve", "semi;colon"}

	for _, name := range tests {
		t.Run(fmt.Sprintf("name=%q", name), func(t *testing.T) {
			ok, err := store.PutSecret(name, "value", true)
			if !errors.Is(err, kerrors.ErrInvalidName) {
				t.Errorf("Expected ErrInvalidName, got %v", err)
			}
			if ok {
				t.Error("Expected PutSecret to report failure")
			}
		})
	}

	if len(kv.data) != 0 {
		t.Errorf("Expected no writes after validation failures, store has %d records", len(kv.data))
	}
}

func TestPutSecretValidNames(t *testing.T) {
	store, _, _ := newTestStore()

	for _, name := range []string{"_x", "A", "MyPwd", "snake_case_9", "ALLCAPS"} {
		if _, err := store.PutSecret(name, "value", true); err != nil {
			t.Errorf("PutSecret(%q) failed: %v", name, err)
		}
	}
}

func TestPutSecretEmptyContent(t *testing.T) {
	store, _, kv := newTestStore()

	_, err := store.PutSecret("MyPwd", "", true)
	if !errors.Is(err, kerrors.ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Error("Expected no write after empty-content failure")
	}
}

func TestPutSecretDeclinedLeavesValueUnchanged(t *testing.T) {
	store, _, _ := newTestStore()

	if _, err := store.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}

	ok, err := store.PutSecret("MyPwd", "New1", false)
	if !errors.Is(err, kerrors.ErrDeclined) {
		t.Fatalf("Expected ErrDeclined, got %v", err)
	}
	if ok {
		t.Error("Expected PutSecret to report failure")
	}

	got, err := store.GetSecret("MyPwd")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if got != "Welcome123" {
		t.Errorf("Expected original value %q, got %q", "Welcome123", got)
	}
}

func TestPutSecretOverwriteReplaces(t *testing.T) {
	store, _, _ := newTestStore()

	if _, err := store.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}
	if _, err := store.PutSecret("MyPwd", "New1", true); err != nil {
		t.Fatalf("PutSecret with overwrite failed: %v", err)
	}

	got, err := store.GetSecret("MyPwd")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if got != "New1" {
		t.Errorf("Expected %q, got %q", "New1", got)
	}
}

func TestPutSecretFirstWriteIgnoresOverwriteFlag(t *testing.T) {
	store, _, _ := newTestStore()

	// No existing record, so overwrite=false must still write.
	ok, err := store.PutSecret("Fresh", "value", false)
	if err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}
	if !ok {
		t.Error("Expected PutSecret to succeed on first write")
	}
}

func TestPutSecretConfirmCallback(t *testing.T) {
	p := &fakeProtector{identity: "alice@machine-1"}
	kv := newFakeKV()

	asked := 0
	grant := false
	store := New(p, kv, Options{
		Confirm: func(name string) bool {
			asked++
			if name != "MyPwd" {
				t.Errorf("Confirm called with %q", name)
			}
			return grant
		},
	})

	if _, err := store.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}

	// Confirmation withheld.
	if _, err := store.PutSecret("MyPwd", "New1", false); !errors.Is(err, kerrors.ErrDeclined) {
		t.Errorf("Expected ErrDeclined, got %v", err)
	}
	if asked != 1 {
		t.Errorf("Expected 1 confirmation prompt, got %d", asked)
	}

	// Confirmation granted.
	grant = true
	if _, err := store.PutSecret("MyPwd", "New1", false); err != nil {
		t.Fatalf("PutSecret with granted confirmation failed: %v", err)
	}

	got, err := store.GetSecret("MyPwd")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if got != "New1" {
		t.Errorf("Expected %q, got %q", "New1", got)
	}
}

func TestPutSecretEncryptionFailure(t *testing.T) {
	p := &fakeProtector{identity: "alice@machine-1", failProtect: true}
	kv := newFakeKV()
	store := New(p, kv, Options{})

	_, err := store.PutSecret("MyPwd", "Welcome123", true)
	if !errors.Is(err, kerrors.ErrEncryptFailed) {
		t.Errorf("Expected ErrEncryptFailed, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Error("Expected no write after encryption failure")
	}
}

func TestPutSecretStoreWriteFailure(t *testing.T) {
	p := &fakeProtector{identity: "alice@machine-1"}
	kv := newFakeKV()
	kv.failWrite = true
	store := New(p, kv, Options{})

	_, err := store.PutSecret("MyPwd", "Welcome123", true)
	if !errors.Is(err, kerrors.ErrStoreWrite) {
		t.Errorf("Expected ErrStoreWrite, got %v", err)
	}
}

func TestGetSecretNotFound(t *testing.T) {
	store, _, _ := newTestStore()

	got, err := store.GetSecret("Missing")
	if !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}

func TestGetSecretDifferentPrincipalFails(t *testing.T) {
	kv := newFakeKV()

	alice := New(&fakeProtector{identity: "alice@machine-1"}, kv, Options{})
	if _, err := alice.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}

	// Same store contents, different principal's protector.
	bob := New(&fakeProtector{identity: "bob@machine-2"}, kv, Options{})
	got, err := bob.GetSecret("MyPwd")
	if !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got %v", err)
	}
	if got != "" {
		t.Errorf("Expected no plaintext, got %q", got)
	}
}

func TestGetSecretCorruptRecord(t *testing.T) {
	store, _, kv := newTestStore()

	kv.data["MyPwd"] = "not base64 !!!"

	if _, err := store.GetSecret("MyPwd"); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for corrupt record, got %v", err)
	}
}

func TestGetSecretStoreReadFailure(t *testing.T) {
	store, _, kv := newTestStore()
	kv.failRead = true

	if _, err := store.GetSecret("MyPwd"); !errors.Is(err, kerrors.ErrStoreRead) {
		t.Errorf("Expected ErrStoreRead, got %v", err)
	}
}

func TestGetSecretWipesTransientBuffer(t *testing.T) {
	store, p, _ := newTestStore()

	if _, err := store.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}

	got, err := store.GetSecret("MyPwd")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if got != "Welcome123" {
		t.Fatalf("Expected %q, got %q", "Welcome123", got)
	}

	if len(p.returned) == 0 {
		t.Fatal("Fake protector recorded no returned buffers")
	}
	for _, buf := range p.returned {
		for i, b := range buf {
			if b != 0 {
				t.Fatalf("Transient buffer not wiped at index %d", i)
			}
		}
	}
}

func TestDeleteSecret(t *testing.T) {
	store, _, _ := newTestStore()

	if _, err := store.PutSecret("MyPwd", "Welcome123", true); err != nil {
		t.Fatalf("PutSecret failed: %v", err)
	}

	if err := store.DeleteSecret("MyPwd"); err != nil {
		t.Fatalf("DeleteSecret failed: %v", err)
	}

	if _, err := store.GetSecret("MyPwd"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := store.DeleteSecret("MyPwd"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting a missing record, got %v", err)
	}
}

func TestListSecrets(t *testing.T) {
	store, _, _ := newTestStore()

	for _, name := range []string{"Alpha", "Beta"} {
		if _, err := store.PutSecret(name, "value", true); err != nil {
			t.Fatalf("PutSecret failed: %v", err)
		}
	}

	names, err := store.ListSecrets()
	if err != nil {
		t.Fatalf("ListSecrets failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 names, got %v", names)
	}
}
