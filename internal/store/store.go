// Package store persists generated credentials as a local JSON array so the
// provisioning runner can pick them up. Remote upload of the file is someone
// else's job.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Account is one generated alias/password pair.
type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Accounts is a file-backed append-only account list.
type Accounts struct {
	path string
}

// NewAccounts returns a store backed by path. The file is created on first
// append.
func NewAccounts(path string) *Accounts {
	return &Accounts{path: path}
}

// Append adds one account and rewrites the file. A legacy file holding a
// single object instead of an array is folded into the array.
func (a *Accounts) Append(acct Account) error {
	accounts, err := a.Load()
	if err != nil {
		return err
	}
	accounts = append(accounts, acct)

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create accounts dir: %w", err)
		}
	}
	// 0600: the file holds live credentials.
	if err := os.WriteFile(a.path, data, 0o600); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

// Load returns all stored accounts. A missing file is an empty list.
func (a *Accounts) Load() ([]Account, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err == nil {
		return accounts, nil
	}
	var single Account
	if err := json.Unmarshal(data, &single); err == nil {
		return []Account{single}, nil
	}
	return nil, fmt.Errorf("accounts file %s is not valid JSON", a.path)
}
