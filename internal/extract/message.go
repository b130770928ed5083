// Package extract holds the pure text transforms of the scan pipeline:
// header decoding, address normalization, MIME body extraction and OTP
// pattern matching. Nothing here performs I/O or returns protocol errors;
// malformed input degrades to best-effort text.
package extract

import (
	"bytes"
	"io"

	"github.com/emersion/go-message"
)

// Message is one fetched mail message decoded for scanning. It is built per
// scan from the raw RFC 5322 bytes and discarded afterwards.
type Message struct {
	entity *message.Entity
	raw    []byte
}

// ParseMessage builds a Message from raw message bytes. Parsing never fails:
// unknown charsets are tolerated and a structurally broken message falls back
// to treating the whole payload as plain text.
func ParseMessage(raw []byte) *Message {
	entity, err := message.Read(bytes.NewReader(raw))
	if entity == nil || (err != nil && !message.IsUnknownCharset(err)) {
		return &Message{raw: raw}
	}
	return &Message{entity: entity, raw: raw}
}

// Header returns the decoded value of the first header field with the given
// key, or "" when absent.
func (m *Message) Header(key string) string {
	if m.entity == nil {
		return ""
	}
	return DecodeHeader(m.entity.Header.Get(key))
}

// HeaderValues returns the decoded values of every header field with the
// given key. Headers like Delivered-To may legitimately repeat.
func (m *Message) HeaderValues(key string) []string {
	if m.entity == nil {
		return nil
	}
	var values []string
	fields := m.entity.Header.FieldsByKey(key)
	for fields.Next() {
		values = append(values, DecodeHeader(fields.Value()))
	}
	return values
}

// Body returns the best-available plain text of the message. Single-part
// messages yield their decoded payload. Multipart messages prefer the first
// text/plain part and fall back to the first text/html part's raw decoded
// content; downstream matching is regex-based, so tags are left alone.
func (m *Message) Body() string {
	if m.entity == nil {
		return string(m.raw)
	}
	mr := m.entity.MultipartReader()
	if mr == nil {
		body, _ := io.ReadAll(m.entity.Body)
		return string(body)
	}

	var plain, html string
	var visit func(mr message.MultipartReader)
	visit = func(mr message.MultipartReader) {
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return
			}
			if err != nil && !message.IsUnknownCharset(err) {
				// Undecodable part boundary; whatever text was
				// collected so far still counts.
				return
			}
			if nested := part.MultipartReader(); nested != nil {
				visit(nested)
				continue
			}
			mediaType, _, _ := part.Header.ContentType()
			switch {
			case mediaType == "text/plain" && plain == "":
				body, _ := io.ReadAll(part.Body)
				plain = string(body)
			case mediaType == "text/html" && html == "":
				body, _ := io.ReadAll(part.Body)
				html = string(body)
			}
		}
	}
	visit(mr)

	if plain != "" {
		return plain
	}
	return html
}
