package email

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	From        string       `json:"from,omitempty"`        // Optional, falls back to the configured sender
	FromName    string       `json:"from_name,omitempty"`   // Optional display name for From
	SendTo      string       `json:"send_to"`               // Email address of the recipient
	Subject     string       `json:"subject"`               // Subject of the email
	BodyHTML    string       `json:"body_html"`             // HTML body of the email
	Tag         string       `json:"tag,omitempty"`         // Optional
	Attachments []Attachment `json:"attachments,omitempty"` // Optional
}

// Attachment is a binary file carried by a message.
// When ContentID is set the attachment is inline and can be referenced
// from the HTML body as "cid:<ContentID>".
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id,omitempty"`
	Content     []byte `json:"-"`
}

// Inline reports whether the attachment is referenced from the body.
func (a Attachment) Inline() bool {
	return a.ContentID != ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidAddress reports whether s looks like a deliverable email address.
func IsValidAddress(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// Validate checks the parameters before handing them to a transport.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !IsValidAddress(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.From != "" && !IsValidAddress(p.From) {
		return fmt.Errorf("%w: From must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}

	seen := make(map[string]struct{}, len(p.Attachments))
	for i, a := range p.Attachments {
		if strings.TrimSpace(a.Filename) == "" {
			return fmt.Errorf("%w: attachment %d has no filename", ErrInvalidParams, i)
		}
		if len(a.Content) == 0 {
			return fmt.Errorf("%w: attachment %q is empty", ErrInvalidParams, a.Filename)
		}
		if !a.Inline() {
			continue
		}
		if _, dup := seen[a.ContentID]; dup {
			return fmt.Errorf("%w: duplicate content id %q", ErrInvalidParams, a.ContentID)
		}
		seen[a.ContentID] = struct{}{}
	}
	return nil
}

// sender returns the effective From header for the message.
func (p SendEmailParams) sender(fallback string) string {
	addr := p.From
	if addr == "" {
		addr = fallback
	}
	if p.FromName == "" {
		return addr
	}
	return (&mail.Address{Name: p.FromName, Address: addr}).String()
}

// envelopeFrom returns the bare From address used for SMTP/SES envelopes.
func (p SendEmailParams) envelopeFrom(fallback string) string {
	if p.From != "" {
		return p.From
	}
	return fallback
}

func validateSender(cfg Config) error {
	if cfg.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !IsValidAddress(cfg.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
