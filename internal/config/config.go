package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

// Config is the top-level application configuration. Secrets never live in
// the source; they come from the config file or the environment.
type Config struct {
	LogLevel     string  `yaml:"log_level"`
	Mailbox      Mailbox `yaml:"mailbox"`
	Alias        Alias   `yaml:"alias"`
	Scan         Scan    `yaml:"scan"`
	AccountsFile string  `yaml:"accounts_file"`
}

// Mailbox holds the account the OTP emails are delivered to.
type Mailbox struct {
	Protocol           string `yaml:"protocol"` // "imap" or "pop3"
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	UseTLS             bool   `yaml:"use_tls"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	DialTimeoutSeconds int    `yaml:"dial_timeout_seconds"`
}

// Alias configures generated addresses.
type Alias struct {
	Domain    string `yaml:"domain"`
	NamesFile string `yaml:"names_file"`
}

// Scan selects the candidate-matching policy.
type Scan struct {
	Strategy       string   `yaml:"strategy"` // "sender" or "newest"
	Sender         string   `yaml:"sender"`
	CandidateLimit int      `yaml:"candidate_limit"`
	Folders        []string `yaml:"folders"`
}

// DialTimeout returns the socket dial timeout, defaulting to 5s.
func (m *Mailbox) DialTimeout() time.Duration {
	if m.DialTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(m.DialTimeoutSeconds) * time.Second
}

// GetPort returns the configured port, defaulting to the protocol's TLS or
// plaintext standard port.
func (m *Mailbox) GetPort() int {
	if m.Port != 0 {
		return m.Port
	}
	if m.Protocol == "pop3" {
		if m.UseTLS {
			return 995
		}
		return 110
	}
	if m.UseTLS {
		return 993
	}
	return 143
}

// GetFolders returns the ordered folder scan list, defaulting to INBOX only.
func (s *Scan) GetFolders() []string {
	if len(s.Folders) == 0 {
		return []string{"INBOX"}
	}
	return s.Folders
}

// GetCandidateLimit returns how many recent sender matches to examine,
// defaulting to 10.
func (s *Scan) GetCandidateLimit() int {
	if s.CandidateLimit <= 0 {
		return 10
	}
	return s.CandidateLimit
}

// Load reads and parses a YAML configuration file. The mailbox password
// falls back to the MAILOTP_PASSWORD environment variable so it can stay out
// of the file entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		LogLevel: "info",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Mailbox.Password == "" {
		cfg.Mailbox.Password = os.Getenv("MAILOTP_PASSWORD")
	}
	if cfg.Mailbox.Protocol == "" {
		cfg.Mailbox.Protocol = "imap"
	}
	if cfg.Scan.Strategy == "" {
		cfg.Scan.Strategy = "sender"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// validate checks the shape of the file. Per-command requirements (mailbox
// credentials for inbox, alias settings for new) are checked by the command
// that needs them so `new` works without a mailbox account and vice versa.
func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error")
	}
	if c.Mailbox.Protocol != "imap" && c.Mailbox.Protocol != "pop3" {
		return fmt.Errorf("mailbox.protocol must be imap or pop3")
	}
	switch c.Scan.Strategy {
	case "sender", "newest":
	default:
		return fmt.Errorf("scan.strategy must be sender or newest")
	}
	return nil
}

// ValidateMailbox checks everything the inbox command needs.
func (c *Config) ValidateMailbox() error {
	if c.Mailbox.Host == "" {
		return fmt.Errorf("mailbox.host is required")
	}
	if c.Mailbox.Username == "" {
		return fmt.Errorf("mailbox.username is required")
	}
	if c.Mailbox.Password == "" {
		return fmt.Errorf("mailbox password must be set in the config file or MAILOTP_PASSWORD")
	}
	if c.Scan.Strategy == "sender" && c.Scan.Sender == "" {
		return fmt.Errorf("scan.sender is required for the sender strategy")
	}
	return nil
}

// ValidateAlias checks everything the new command needs.
func (c *Config) ValidateAlias() error {
	if c.Alias.Domain == "" {
		return fmt.Errorf("alias.domain is required")
	}
	if c.Alias.NamesFile == "" {
		return fmt.Errorf("alias.names_file is required")
	}
	return nil
}
