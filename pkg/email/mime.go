package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base64LineLength = 76

// BuildMIME renders params as an RFC 5322 message suitable for SMTP DATA or
// SES SendRawEmail. from is the already formatted From header value.
//
// Layout:
//   - no attachments: single text/html part
//   - inline attachments only: multipart/related (html + images)
//   - regular attachments: multipart/mixed wrapping the above
func BuildMIME(from string, params SendEmailParams, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, "From", from)
	writeHeader(&buf, "To", params.SendTo)
	writeHeader(&buf, "Subject", mime.BEncoding.Encode("UTF-8", params.Subject))
	writeHeader(&buf, "Date", now.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID(params.envelopeFrom(from)))
	writeHeader(&buf, "MIME-Version", "1.0")

	var inline, regular []Attachment
	for _, a := range params.Attachments {
		if a.Inline() {
			inline = append(inline, a)
		} else {
			regular = append(regular, a)
		}
	}

	switch {
	case len(regular) > 0:
		mw := multipart.NewWriter(&buf)
		writeHeader(&buf, "Content-Type", mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mw.Boundary()}))
		buf.WriteString("\r\n")

		if err := writeBodyPart(mw, params.BodyHTML, inline); err != nil {
			return nil, err
		}
		for _, a := range regular {
			if err := writeAttachmentPart(mw, a); err != nil {
				return nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
	case len(inline) > 0:
		related, boundary, err := buildRelated(params.BodyHTML, inline)
		if err != nil {
			return nil, err
		}
		writeHeader(&buf, "Content-Type", relatedContentType(boundary))
		buf.WriteString("\r\n")
		buf.Write(related)
	default:
		writeHeader(&buf, "Content-Type", "text/html; charset=UTF-8")
		writeHeader(&buf, "Content-Transfer-Encoding", "base64")
		buf.WriteString("\r\n")
		if err := writeBase64(&buf, []byte(params.BodyHTML)); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// writeBodyPart writes the html body (with its inline images when present)
// as one part of mw.
func writeBodyPart(mw *multipart.Writer, html string, inline []Attachment) error {
	if len(inline) == 0 {
		return writeHTMLPart(mw, html)
	}

	related, boundary, err := buildRelated(html, inline)
	if err != nil {
		return err
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", relatedContentType(boundary))
	pw, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = pw.Write(related)
	return err
}

func buildRelated(html string, inline []Attachment) ([]byte, string, error) {
	var buf bytes.Buffer
	rw := multipart.NewWriter(&buf)
	if err := writeHTMLPart(rw, html); err != nil {
		return nil, "", err
	}
	for _, a := range inline {
		if err := writeAttachmentPart(rw, a); err != nil {
			return nil, "", err
		}
	}
	if err := rw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), rw.Boundary(), nil
}

func relatedContentType(boundary string) string {
	return mime.FormatMediaType("multipart/related", map[string]string{
		"boundary": boundary,
		"type":     "text/html",
	})
}

func writeHTMLPart(mw *multipart.Writer, html string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", "text/html; charset=UTF-8")
	h.Set("Content-Transfer-Encoding", "base64")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	return writeBase64(pw, []byte(html))
}

func writeAttachmentPart(mw *multipart.Writer, a Attachment) error {
	disposition := "attachment"
	if a.Inline() {
		disposition = "inline"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", mime.FormatMediaType(contentTypeOrDefault(a.ContentType), map[string]string{"name": a.Filename}))
	h.Set("Content-Transfer-Encoding", "base64")
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": a.Filename}))
	if a.Inline() {
		h.Set("Content-ID", "<"+a.ContentID+">")
	}

	pw, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	return writeBase64(pw, a.Content)
}

// writeBase64 writes data base64 encoded and wrapped at 76 columns.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > base64LineLength {
		if _, err := io.WriteString(w, encoded[:base64LineLength]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[base64LineLength:]
	}
	_, err := io.WriteString(w, encoded+"\r\n")
	return err
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	fmt.Fprintf(buf, "%s: %s\r\n", key, value)
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.TrimSuffix(from[at+1:], ">")
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
