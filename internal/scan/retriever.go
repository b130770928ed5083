package scan

import (
	"log/slog"

	"github.com/qring/mailotp/internal/mailbox"
)

// Retriever owns one retrieval invocation: a single authenticated session
// walked across an ordered folder list (primary inbox first, spam-equivalent
// second) until the strategy reports a code.
type Retriever struct {
	// Dial opens a fresh session. Each Retrieve call dials exactly once
	// and holds the session exclusively until logout.
	Dial     func() (mailbox.Session, error)
	Strategy Strategy
	Folders  []string
	Logger   *slog.Logger
}

// Retrieve reports the first OTP found for target across the configured
// folders. Session and strategy failures collapse to a not-found result:
// the original tool never distinguished an unreachable mailbox from an
// absent email, and the CLI keeps that output contract. The error kind is
// logged here at the boundary so operators can still tell the two apart.
func (r *Retriever) Retrieve(target string) (string, bool) {
	session, err := r.Dial()
	if err != nil {
		r.Logger.Error("mailbox session failed",
			"kind", mailbox.ErrKind(err).String(), "error", err)
		return "", false
	}
	defer func() {
		// Logout on every exit path; a failed logout cannot change the
		// result that has already been produced.
		if err := session.Logout(); err != nil {
			r.Logger.Debug("logout failed", "error", err)
		}
	}()

	for _, folder := range r.Folders {
		if err := session.SelectFolder(folder); err != nil {
			r.Logger.Warn("folder not selectable, trying next",
				"folder", folder, "kind", mailbox.ErrKind(err).String(), "error", err)
			continue
		}

		code, found, err := r.Strategy.Scan(session, target)
		if err != nil {
			r.Logger.Error("scan failed",
				"folder", folder, "kind", mailbox.ErrKind(err).String(), "error", err)
			return "", false
		}
		if found {
			r.Logger.Info("otp located", "folder", folder)
			return code, true
		}
		r.Logger.Debug("no match in folder", "folder", folder)
	}
	return "", false
}
