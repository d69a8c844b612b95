package ledger

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"reportcraft/internal/logging"
)

var (
	// ErrInvalidCredentials is returned when no registry account matches.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInsufficientCredit is returned when a consume is attempted at a
	// zero balance. The balance is left untouched.
	ErrInsufficientCredit = errors.New("no session credits remaining")
)

// Store is the persistence the ledger needs: a string key-value surface.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// CreditKeyFunc namespaces a username into a storage key.
type CreditKeyFunc func(username string) string

// Session is the outcome of a successful authentication.
type Session struct {
	Username    string
	DisplayName string
	Credits     int
}

// Ledger binds the identity registry to persisted balances.
//
// The mutex serializes check-then-set sequences so two goroutines in this
// process cannot interleave a read and a decrement. Concurrent sessions
// from separate processes remain unguarded.
type Ledger struct {
	mu        sync.Mutex
	accounts  []Account
	store     Store
	creditKey CreditKeyFunc
}

// New creates a ledger over the given accounts and store.
func New(accounts []Account, store Store, creditKey CreditKeyFunc) *Ledger {
	return &Ledger{accounts: accounts, store: store, creditKey: creditKey}
}

// Count returns the number of registered accounts.
func (l *Ledger) Count() int {
	return len(l.accounts)
}

// lookup finds the account for a username: trimmed, case-insensitive.
func (l *Ledger) lookup(username string) (Account, bool) {
	needle := strings.ToLower(strings.TrimSpace(username))
	for _, a := range l.accounts {
		if strings.ToLower(strings.TrimSpace(a.Username)) == needle {
			return a, true
		}
	}
	return Account{}, false
}

// Authenticate matches the identity (case-insensitive) and secret (exact,
// trimmed) against the registry, then resolves the persisted balance,
// seeding it from the account's configured initial credits on first-ever
// lookup. No credit is consumed here.
func (l *Ledger) Authenticate(username, password string) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.lookup(username)
	if !ok || account.Password != strings.TrimSpace(password) {
		logging.SessionWarn("authentication failed for %q", username)
		return Session{}, ErrInvalidCredentials
	}

	balance, err := l.resolveBalance(account)
	if err != nil {
		return Session{}, err
	}

	logging.Session("authenticated %s (balance=%d)", account.Username, balance)
	return Session{
		Username:    account.Username,
		DisplayName: account.FullName,
		Credits:     balance,
	}, nil
}

// ConsumeCredit decrements the persisted balance by exactly one and
// returns the new balance. A zero balance fails with ErrInsufficientCredit
// and performs no mutation; the balance never goes negative.
func (l *Ledger) ConsumeCredit(username string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.lookup(username)
	if !ok {
		// Unknown identity: charge against whatever the raw key holds.
		account = Account{Username: strings.TrimSpace(username)}
	}

	balance, err := l.resolveBalance(account)
	if err != nil {
		return 0, err
	}

	if balance <= 0 {
		logging.LedgerWarn("consume denied for %s: balance exhausted", account.Username)
		return 0, ErrInsufficientCredit
	}

	newBalance := balance - 1
	if err := l.store.Set(l.creditKey(account.Username), strconv.Itoa(newBalance)); err != nil {
		return 0, err
	}
	logging.Ledger("consumed credit for %s: %d -> %d", account.Username, balance, newBalance)
	return newBalance, nil
}

// resolveBalance reads the stored balance, re-seeding from the registry's
// initial credits when storage holds nothing (first lookup, or the store
// was cleared externally). Callers hold l.mu.
func (l *Ledger) resolveBalance(account Account) (int, error) {
	key := l.creditKey(account.Username)
	raw, ok, err := l.store.Get(key)
	if err != nil {
		return 0, err
	}
	if ok {
		balance, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr == nil && balance >= 0 {
			return balance, nil
		}
		logging.LedgerWarn("corrupt balance %q for %s, reseeding", raw, account.Username)
	}

	balance := account.InitialCredits
	if err := l.store.Set(key, strconv.Itoa(balance)); err != nil {
		return 0, err
	}
	logging.LedgerDebug("seeded balance for %s: %d", account.Username, balance)
	return balance, nil
}
