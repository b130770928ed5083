package mailbox

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/charset"
)

// IMAPSession is a Session over IMAP/IMAPS.
type IMAPSession struct {
	client *imapclient.Client
	logger *slog.Logger
}

// DialIMAP connects and authenticates, returning a session ready for folder
// selection. The caller owns the session and must call Logout.
func DialIMAP(opts Options, logger *slog.Logger) (*IMAPSession, error) {
	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))

	clientOpts := &imapclient.Options{
		WordDecoder: &mime.WordDecoder{CharsetReader: charset.Reader},
	}

	var client *imapclient.Client
	var err error
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{
			ServerName:         opts.Host,
			InsecureSkipVerify: opts.InsecureSkipVerify,
		}
		client, err = imapclient.DialTLS(addr, clientOpts)
	} else {
		client, err = imapclient.DialInsecure(addr, clientOpts)
	}
	if err != nil {
		return nil, wrapErr(KindConnection, fmt.Sprintf("imap dial %s", addr), err)
	}

	if err := client.Login(opts.Username, opts.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, wrapErr(KindAuth, fmt.Sprintf("imap login %s", opts.Username), err)
	}

	logger.Debug("imap session established", "addr", addr, "user", opts.Username, "tls", opts.UseTLS)
	return &IMAPSession{client: client, logger: logger}, nil
}

// SelectFolder opens the folder read-only so scanning leaves flags untouched.
func (s *IMAPSession) SelectFolder(name string) error {
	if _, err := s.client.Select(name, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return wrapErr(KindFolder, fmt.Sprintf("imap select %s", name), err)
	}
	return nil
}

func (s *IMAPSession) SearchUIDs(fromSender string) ([]uint32, error) {
	criteria := &imap.SearchCriteria{}
	if fromSender != "" {
		criteria.Header = []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: fromSender},
		}
	}

	data, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, wrapErr(KindFetch, "imap search", err)
	}

	found := data.AllUIDs()
	uids := make([]uint32, len(found))
	for i, uid := range found {
		uids[i] = uint32(uid)
	}
	s.logger.Debug("imap search complete", "sender", fromSender, "count", len(uids))
	return uids, nil
}

func (s *IMAPSession) FetchMessage(uid uint32) ([]byte, error) {
	// Peek keeps the fetch from setting \Seen.
	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := s.client.Fetch(imap.UIDSetNum(imap.UID(uid)), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})

	buffers, err := fetchCmd.Collect()
	if err != nil {
		return nil, wrapErr(KindFetch, fmt.Sprintf("imap fetch uid %d", uid), err)
	}
	for _, buf := range buffers {
		if body := buf.FindBodySection(bodySection); len(body) > 0 {
			return body, nil
		}
	}
	return nil, wrapErr(KindFetch, fmt.Sprintf("imap fetch uid %d", uid), errors.New("no body returned"))
}

func (s *IMAPSession) Logout() error {
	err := s.client.Logout().Wait()
	_ = s.client.Close()
	return err
}
