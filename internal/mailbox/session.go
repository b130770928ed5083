// Package mailbox manages the connect/authenticate/select/search/fetch/logout
// lifecycle against a remote mailbox. Sessions are read-only: scanning never
// changes message flags or deletes anything on the server.
package mailbox

import "time"

// Session is one authenticated connection to a remote mailbox. A session is
// single-use and owned exclusively by one retrieval: dial, scan, logout.
type Session interface {
	// SelectFolder opens the named folder read-only.
	SelectFolder(name string) error

	// SearchUIDs returns message identifiers in arrival order (oldest
	// first). An empty fromSender means all messages; otherwise the result
	// is restricted to messages from that sender address. An empty result
	// is not an error.
	SearchUIDs(fromSender string) ([]uint32, error)

	// FetchMessage returns the raw RFC 5322 bytes of one message.
	FetchMessage(uid uint32) ([]byte, error)

	// Logout ends the session. Best-effort: callers swallow the error.
	Logout() error
}

// Options carries the connection settings shared by both protocols.
type Options struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool
	InsecureSkipVerify bool
	DialTimeout        time.Duration
}
