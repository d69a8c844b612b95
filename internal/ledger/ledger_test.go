package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	m map[string]string
}

func newMemStore() *memStore { return &memStore{m: make(map[string]string)} }

func (s *memStore) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func creditKey(username string) string { return "credits/" + username }

func testLedger() (*Ledger, *memStore) {
	st := newMemStore()
	accounts := []Account{
		{Username: "admin", Password: "123", InitialCredits: 999, FullName: "Administrator"},
		{Username: "teacher1", Password: "123", InitialCredits: 10, FullName: "Ms. Lan"},
		{Username: "broke", Password: "x", InitialCredits: 0, FullName: "No Credits"},
	}
	return New(accounts, st, creditKey), st
}

func TestAuthenticateSeedsInitialBalance(t *testing.T) {
	l, st := testLedger()

	sess, err := l.Authenticate("teacher1", "123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess.Credits != 10 {
		t.Fatalf("Credits = %d, want 10", sess.Credits)
	}
	if sess.DisplayName != "Ms. Lan" {
		t.Fatalf("DisplayName = %q", sess.DisplayName)
	}
	if st.m[creditKey("teacher1")] != "10" {
		t.Fatalf("balance not seeded to store: %v", st.m)
	}
}

func TestAuthenticateCaseInsensitiveIdentityExactSecret(t *testing.T) {
	l, _ := testLedger()

	if _, err := l.Authenticate("  TEACHER1 ", "123"); err != nil {
		t.Fatalf("case-insensitive identity match failed: %v", err)
	}
	if _, err := l.Authenticate("teacher1", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := l.Authenticate("nobody", "123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown identity: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestConsumeCreditDecrementsExactlyOne(t *testing.T) {
	l, st := testLedger()

	// First-ever session: seeded at 10, one consume leaves 9.
	sess, err := l.Authenticate("teacher1", "123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess.Credits != 10 {
		t.Fatalf("initial balance = %d, want 10", sess.Credits)
	}
	got, err := l.ConsumeCredit("teacher1")
	if err != nil {
		t.Fatalf("ConsumeCredit: %v", err)
	}
	if got != 9 {
		t.Fatalf("balance after consume = %d, want 9", got)
	}
	if st.m[creditKey("teacher1")] != "9" {
		t.Fatalf("persisted balance = %q, want 9", st.m[creditKey("teacher1")])
	}
}

func TestConsumeCreditNeverGoesNegative(t *testing.T) {
	l, st := testLedger()

	sess, err := l.Authenticate("broke", "x")
	if err != nil {
		t.Fatalf("Authenticate with zero balance should succeed: %v", err)
	}
	if sess.Credits != 0 {
		t.Fatalf("Credits = %d, want 0", sess.Credits)
	}

	// Caller denies the session here; a consume anyway must fail cleanly.
	if _, err := l.ConsumeCredit("broke"); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("err = %v, want ErrInsufficientCredit", err)
	}
	if st.m[creditKey("broke")] != "0" {
		t.Fatalf("balance mutated on failed consume: %q", st.m[creditKey("broke")])
	}

	// Drain a real balance all the way down and past zero.
	l2, _ := testLedger()
	if _, err := l2.Authenticate("teacher1", "123"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	for i := 9; i >= 0; i-- {
		bal, err := l2.ConsumeCredit("teacher1")
		if err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
		if bal != i {
			t.Fatalf("balance = %d, want %d", bal, i)
		}
	}
	if _, err := l2.ConsumeCredit("teacher1"); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("exhausted consume: err = %v, want ErrInsufficientCredit", err)
	}
}

func TestConsumeCreditReseedsAfterExternalClear(t *testing.T) {
	l, st := testLedger()

	if _, err := l.Authenticate("teacher1", "123"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := l.ConsumeCredit("teacher1"); err != nil {
		t.Fatalf("ConsumeCredit: %v", err)
	}

	// Storage cleared externally: next consume re-seeds from the registry.
	delete(st.m, creditKey("teacher1"))
	bal, err := l.ConsumeCredit("teacher1")
	if err != nil {
		t.Fatalf("ConsumeCredit after clear: %v", err)
	}
	if bal != 9 {
		t.Fatalf("balance = %d, want re-seeded 10 minus 1", bal)
	}
}

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.yaml")

	content := `users:
  - username: principal
    password: secret
    initial_credits: 42
    full_name: The Principal
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	accounts, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Username != "principal" || accounts[0].InitialCredits != 42 {
		t.Fatalf("accounts = %+v", accounts)
	}
}

func TestLoadRegistryFallsBackToDefaults(t *testing.T) {
	accounts, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(accounts) == 0 {
		t.Fatalf("expected built-in default accounts")
	}
	found := false
	for _, a := range accounts {
		if a.Username == "teacher1" && a.InitialCredits == 10 {
			found = true
		}
	}
	if !found {
		t.Fatalf("default registry missing teacher1 seed account: %+v", accounts)
	}
}
