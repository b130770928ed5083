package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	accounts := NewAccounts(path)

	require.NoError(t, accounts.Append(Account{Email: "a@example.com", Password: "pw1"}))
	require.NoError(t, accounts.Append(Account{Email: "b@example.com", Password: "pw2"}))

	loaded, err := accounts.Load()
	require.NoError(t, err)
	require.Equal(t, []Account{
		{Email: "a@example.com", Password: "pw1"},
		{Email: "b@example.com", Password: "pw2"},
	}, loaded)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	accounts := NewAccounts(filepath.Join(t.TempDir(), "accounts.json"))
	loaded, err := accounts.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestAppendFoldsLegacySingleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	legacy := `{"email": "old@example.com", "password": "oldpw"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	accounts := NewAccounts(path)
	require.NoError(t, accounts.Append(Account{Email: "new@example.com", Password: "newpw"}))

	loaded, err := accounts.Load()
	require.NoError(t, err)
	require.Equal(t, []Account{
		{Email: "old@example.com", Password: "oldpw"},
		{Email: "new@example.com", Password: "newpw"},
	}, loaded)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewAccounts(path).Load()
	require.Error(t, err)
}

func TestAppendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "accounts.json")
	require.NoError(t, NewAccounts(path).Append(Account{Email: "a@example.com", Password: "pw"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
