package extract

import (
	"mime"
	"strings"

	"github.com/emersion/go-message/charset"
)

// headerDecoder handles RFC 2047 encoded words, with the go-message charset
// registry covering the legacy encodings (iso-8859-*, windows-125x, gbk, ...)
// that verification emails still show up in.
var headerDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// DecodeHeader turns a possibly-encoded header value into plain text.
// Undecodable segments degrade to their raw form instead of failing; OTP
// matching only needs approximately readable text.
func DecodeHeader(raw string) string {
	if raw == "" {
		return ""
	}
	decoded, err := headerDecoder.DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// NormalizeAddress canonicalizes an email address or recipient header value
// for comparison: lower-cased, trimmed, and reduced to the bracketed address
// when a display name is present ("Jane Doe" <jane@x.com> -> jane@x.com).
func NormalizeAddress(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if start := strings.Index(s, "<"); start != -1 {
		if end := strings.Index(s[start:], ">"); end != -1 {
			s = s[start+1 : start+end]
		}
	}
	return strings.Trim(s, `"<> `)
}
