package store

import (
	"path/filepath"
	"testing"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("Get missing = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set(CreditKey("teacher1"), "10"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := kv.Get(CreditKey("teacher1"))
	if err != nil || !ok || v != "10" {
		t.Fatalf("Get = %q ok=%v err=%v, want 10", v, ok, err)
	}

	// Overwrite replaces the whole value.
	if err := kv.Set(CreditKey("teacher1"), "9"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = kv.Get(CreditKey("teacher1"))
	if v != "9" {
		t.Fatalf("Get after overwrite = %q, want 9", v)
	}
}

func TestKVDelete(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get("k"); ok {
		t.Fatalf("key should be gone after delete")
	}
	// Deleting an absent key must not error.
	if err := kv.Delete("k"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestAPIKeyAbsenceIsNotAnError(t *testing.T) {
	kv := openTestKV(t)

	key, ok, err := kv.APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if ok || key != "" {
		t.Fatalf("expected absent credential, got %q ok=%v", key, ok)
	}

	if err := kv.SetAPIKey("sk-test"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	key, ok, err = kv.APIKey()
	if err != nil || !ok || key != "sk-test" {
		t.Fatalf("APIKey = %q ok=%v err=%v", key, ok, err)
	}

	if err := kv.ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey: %v", err)
	}
	if _, ok, _ := kv.APIKey(); ok {
		t.Fatalf("credential should be cleared")
	}
}
