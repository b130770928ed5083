package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
mailbox:
  protocol: imap
  host: imap.example.com
  port: 993
  username: otp@example.com
  password: secret
  use_tls: true
alias:
  domain: example.com
  names_file: name.txt
scan:
  strategy: sender
  sender: registration@facebookmail.com
  candidate_limit: 5
  folders: ["INBOX", "Spam"]
accounts_file: accounts.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "imap.example.com", cfg.Mailbox.Host)
	require.Equal(t, 993, cfg.Mailbox.GetPort())
	require.Equal(t, []string{"INBOX", "Spam"}, cfg.Scan.GetFolders())
	require.Equal(t, 5, cfg.Scan.GetCandidateLimit())
	require.Equal(t, "accounts.json", cfg.AccountsFile)
	require.NoError(t, cfg.ValidateMailbox())
	require.NoError(t, cfg.ValidateAlias())
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
mailbox:
  host: imap.example.com
  username: otp@example.com
  password: secret
  use_tls: true
scan:
  sender: registration@facebookmail.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "imap", cfg.Mailbox.Protocol)
	require.Equal(t, "sender", cfg.Scan.Strategy)
	require.Equal(t, 993, cfg.Mailbox.GetPort())
	require.Equal(t, []string{"INBOX"}, cfg.Scan.GetFolders())
	require.Equal(t, 10, cfg.Scan.GetCandidateLimit())
	require.Equal(t, 5*time.Second, cfg.Mailbox.DialTimeout())
}

func TestLoadPasswordFromEnv(t *testing.T) {
	t.Setenv("MAILOTP_PASSWORD", "env-secret")
	path := writeConfig(t, `
mailbox:
  host: imap.example.com
  username: otp@example.com
scan:
  sender: registration@facebookmail.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-secret", cfg.Mailbox.Password)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad protocol", "mailbox:\n  protocol: smtp\n"},
		{"bad strategy", "scan:\n  strategy: everything\n"},
		{"bad log level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestValidateMailboxRequirements(t *testing.T) {
	path := writeConfig(t, `
mailbox:
  host: imap.example.com
  username: otp@example.com
  password: secret
scan:
  strategy: sender
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	// The sender strategy is unusable without a sender address.
	require.Error(t, cfg.ValidateMailbox())

	cfg.Scan.Strategy = "newest"
	require.NoError(t, cfg.ValidateMailbox())
}

func TestValidateAliasRequirements(t *testing.T) {
	path := writeConfig(t, "alias:\n  domain: example.com\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Error(t, cfg.ValidateAlias())

	cfg.Alias.NamesFile = "name.txt"
	require.NoError(t, cfg.ValidateAlias())
}

func TestPOP3PortDefaults(t *testing.T) {
	mb := Mailbox{Protocol: "pop3", UseTLS: true}
	require.Equal(t, 995, mb.GetPort())
	mb.UseTLS = false
	require.Equal(t, 110, mb.GetPort())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
