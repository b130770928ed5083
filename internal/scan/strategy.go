// Package scan decides which messages in a folder are OTP candidates and
// walks an ordered folder list until a code turns up.
package scan

import (
	"strings"

	"github.com/qring/mailotp/internal/extract"
	"github.com/qring/mailotp/internal/mailbox"
)

// Strategy answers "what OTP, if any, was sent to target in the currently
// selected folder". Implementations never mutate remote state.
type Strategy interface {
	Scan(session mailbox.Session, target string) (code string, found bool, err error)
}

const defaultCandidateLimit = 10

// SenderFiltered restricts the search to a known sender address and examines
// up to Limit of the most recently arrived matches, newest first. A message
// only counts when its decoded To header mentions the target.
type SenderFiltered struct {
	Sender string
	Limit  int
}

func (p SenderFiltered) Scan(session mailbox.Session, target string) (string, bool, error) {
	uids, err := session.SearchUIDs(p.Sender)
	if err != nil {
		return "", false, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	if len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	want := extract.NormalizeAddress(target)
	for i := len(uids) - 1; i >= 0; i-- {
		raw, err := session.FetchMessage(uids[i])
		if err != nil {
			// One stale candidate must not abort the scan.
			continue
		}
		msg := extract.ParseMessage(raw)
		if !strings.Contains(extract.NormalizeAddress(msg.Header("To")), want) {
			continue
		}
		if code, ok := extract.ExtractOTP(msg.Body()); ok {
			return code, true, nil
		}
	}
	return "", false, nil
}

// NewestOnly searches the whole folder and examines only the single newest
// message. The target may appear in To, Delivered-To or X-Original-To, each
// of which can hold several comma- or newline-separated addresses.
type NewestOnly struct{}

var recipientHeaders = []string{"To", "Delivered-To", "X-Original-To"}

func (NewestOnly) Scan(session mailbox.Session, target string) (string, bool, error) {
	uids, err := session.SearchUIDs("")
	if err != nil {
		return "", false, err
	}
	if len(uids) == 0 {
		return "", false, nil
	}

	raw, err := session.FetchMessage(uids[len(uids)-1])
	if err != nil {
		return "", false, err
	}

	msg := extract.ParseMessage(raw)
	if !mentionsRecipient(msg, extract.NormalizeAddress(target)) {
		return "", false, nil
	}
	if code, ok := extract.ExtractOTP(msg.Body()); ok {
		return code, true, nil
	}
	return "", false, nil
}

func mentionsRecipient(msg *extract.Message, want string) bool {
	for _, key := range recipientHeaders {
		for _, value := range msg.HeaderValues(key) {
			for _, fragment := range splitRecipients(value) {
				if strings.Contains(extract.NormalizeAddress(fragment), want) {
					return true
				}
			}
		}
	}
	return false
}

func splitRecipients(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	})
}
