package mailbox

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	pop3client "github.com/knadh/go-pop3"

	"github.com/qring/mailotp/internal/extract"
)

// POP3Session adapts a POP3/POP3S mailbox to the Session interface. POP3 has
// neither folders nor server-side search: only INBOX is selectable and sender
// filtering happens client-side on the decoded From header.
type POP3Session struct {
	conn   *pop3client.Conn
	logger *slog.Logger
}

// DialPOP3 connects and authenticates. The caller owns the session and must
// call Logout.
func DialPOP3(opts Options, logger *slog.Logger) (*POP3Session, error) {
	client := pop3client.New(pop3client.Opt{
		Host:          opts.Host,
		Port:          opts.Port,
		TLSEnabled:    opts.UseTLS,
		TLSSkipVerify: opts.InsecureSkipVerify,
		DialTimeout:   opts.DialTimeout,
	})

	conn, err := client.NewConn()
	if err != nil {
		return nil, wrapErr(KindConnection, fmt.Sprintf("pop3 connect %s:%d", opts.Host, opts.Port), err)
	}

	if err := conn.Auth(opts.Username, opts.Password); err != nil {
		_ = conn.Quit()
		return nil, wrapErr(KindAuth, fmt.Sprintf("pop3 auth %s", opts.Username), err)
	}

	logger.Debug("pop3 session established", "host", opts.Host, "user", opts.Username, "tls", opts.UseTLS)
	return &POP3Session{conn: conn, logger: logger}, nil
}

func (s *POP3Session) SelectFolder(name string) error {
	if !strings.EqualFold(name, "INBOX") {
		return wrapErr(KindFolder, fmt.Sprintf("pop3 select %s", name), errors.New("pop3 only exposes INBOX"))
	}
	return nil
}

// SearchUIDs lists message numbers in arrival order. With a sender given,
// each message's From header is checked via TOP so only headers cross the
// wire for the filter.
func (s *POP3Session) SearchUIDs(fromSender string) ([]uint32, error) {
	msgs, err := s.conn.List(0)
	if err != nil {
		return nil, wrapErr(KindFetch, "pop3 list", err)
	}

	want := strings.ToLower(strings.TrimSpace(fromSender))
	var uids []uint32
	for _, msg := range msgs {
		if want != "" {
			header, err := s.conn.Top(msg.ID, 0)
			if err != nil {
				s.logger.Warn("pop3 top failed, skipping message", "id", msg.ID, "error", err)
				continue
			}
			from := extract.NormalizeAddress(extract.DecodeHeader(header.Header.Get("From")))
			if !strings.Contains(from, want) {
				continue
			}
		}
		uids = append(uids, uint32(msg.ID))
	}
	s.logger.Debug("pop3 list complete", "sender", fromSender, "count", len(uids))
	return uids, nil
}

func (s *POP3Session) FetchMessage(uid uint32) ([]byte, error) {
	buf, err := s.conn.RetrRaw(int(uid))
	if err != nil {
		return nil, wrapErr(KindFetch, fmt.Sprintf("pop3 retr %d", uid), err)
	}
	return buf.Bytes(), nil
}

func (s *POP3Session) Logout() error {
	return s.conn.Quit()
}
