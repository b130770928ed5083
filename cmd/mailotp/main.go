package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qring/mailotp/internal/config"
	"github.com/qring/mailotp/internal/credgen"
	"github.com/qring/mailotp/internal/mailbox"
	"github.com/qring/mailotp/internal/scan"
	"github.com/qring/mailotp/internal/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "mailotp",
		Short:         "Generate mailbox aliases and pull verification codes from their inbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a fresh alias address and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(configPath)
			if err != nil {
				return err
			}
			return runNew(cfg, logger)
		},
	}

	inboxCmd := &cobra.Command{
		Use:   "inbox <email>",
		Short: `Print the OTP delivered to the given alias, or "OTP not found"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(configPath)
			if err != nil {
				return err
			}
			return runInbox(cfg, logger, args[0])
		},
	}

	rootCmd.AddCommand(newCmd, inboxCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

// setupLogger writes diagnostics to stderr; stdout carries only the command
// output contract (two lines for new, one line for inbox).
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func runNew(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.ValidateAlias(); err != nil {
		return err
	}

	names, err := credgen.LoadNames(cfg.Alias.NamesFile)
	if err != nil {
		return err
	}
	address, err := credgen.GenerateAddress(names, cfg.Alias.Domain)
	if err != nil {
		return err
	}
	password := credgen.GeneratePassword()

	if cfg.AccountsFile != "" {
		accounts := store.NewAccounts(cfg.AccountsFile)
		if err := accounts.Append(store.Account{Email: address, Password: password}); err != nil {
			logger.Warn("account store append failed", "file", cfg.AccountsFile, "error", err)
		} else {
			logger.Debug("account stored", "file", cfg.AccountsFile)
		}
	}

	fmt.Println(address)
	fmt.Println(password)
	return nil
}

func runInbox(cfg *config.Config, logger *slog.Logger, target string) error {
	if err := cfg.ValidateMailbox(); err != nil {
		return err
	}

	retriever := &scan.Retriever{
		Dial: func() (mailbox.Session, error) {
			return dialSession(cfg, logger)
		},
		Strategy: newStrategy(cfg),
		Folders:  cfg.Scan.GetFolders(),
		Logger:   logger,
	}

	code, found := retriever.Retrieve(target)
	if !found {
		fmt.Println("OTP not found")
		return nil
	}
	fmt.Println(code)
	return nil
}

func dialSession(cfg *config.Config, logger *slog.Logger) (mailbox.Session, error) {
	opts := mailbox.Options{
		Host:               cfg.Mailbox.Host,
		Port:               cfg.Mailbox.GetPort(),
		Username:           cfg.Mailbox.Username,
		Password:           cfg.Mailbox.Password,
		UseTLS:             cfg.Mailbox.UseTLS,
		InsecureSkipVerify: cfg.Mailbox.InsecureSkipVerify,
		DialTimeout:        cfg.Mailbox.DialTimeout(),
	}
	if cfg.Mailbox.Protocol == "pop3" {
		return mailbox.DialPOP3(opts, logger)
	}
	return mailbox.DialIMAP(opts, logger)
}

func newStrategy(cfg *config.Config) scan.Strategy {
	if cfg.Scan.Strategy == "newest" {
		return scan.NewestOnly{}
	}
	return scan.SenderFiltered{
		Sender: cfg.Scan.Sender,
		Limit:  cfg.Scan.GetCandidateLimit(),
	}
}
