// Package ledger resolves user identities against a fixed local registry
// and meters per-identity session credits through the key-value store.
// It is a single-process, best-effort ledger: balances are advisory and
// never go negative, but there is no cross-process locking.
package ledger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Account is one record of the identity registry.
type Account struct {
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	InitialCredits int    `yaml:"initial_credits"`
	FullName       string `yaml:"full_name"`
}

// defaultAccounts seeds the registry when no users.yaml is present.
var defaultAccounts = []Account{
	{Username: "admin", Password: "123", InitialCredits: 999, FullName: "Administrator"},
	{Username: "teacher1", Password: "123", InitialCredits: 10, FullName: "Ms. Lan (Mathematics)"},
	{Username: "teacher2", Password: "456", InitialCredits: 1, FullName: "Mr. Hung (Literature)"},
}

// registryFile is the on-disk shape of users.yaml.
type registryFile struct {
	Users []Account `yaml:"users"`
}

// LoadRegistry reads the account list from the given YAML path. A missing
// file falls back to the built-in default accounts; a present but invalid
// file is an error.
func LoadRegistry(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultAccounts, nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	if len(rf.Users) == 0 {
		return nil, fmt.Errorf("registry %s contains no users", path)
	}
	return rf.Users, nil
}
