package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development.
// It saves every message as an HTML file, a JSON metadata file and one file
// per attachment instead of sending it.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory will be created if it doesn't exist.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir, now: time.Now}
}

type emailMetadata struct {
	Timestamp   string       `json:"timestamp"`
	From        string       `json:"from,omitempty"`
	FromName    string       `json:"from_name,omitempty"`
	SendTo      string       `json:"send_to"`
	Subject     string       `json:"subject"`
	Tag         string       `json:"tag,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SendEmail writes the message to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}
	// Recipient keeps the operator and customer copies of one submission apart.
	baseFilename := fmt.Sprintf("%s_%s_%s",
		now.Format("2006_01_02_150405.000000"),
		sanitizeFilename(identifier),
		sanitizeFilename(params.SendTo),
	)

	htmlPath := filepath.Join(d.dir, baseFilename+".html")
	if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	for _, a := range params.Attachments {
		path := filepath.Join(d.dir, baseFilename+"_"+sanitizeFilename(a.Filename))
		if err := os.WriteFile(path, a.Content, 0644); err != nil {
			return fmt.Errorf("%w: failed to write attachment %s: %v", ErrFailedToSendEmail, a.Filename, err)
		}
	}

	metadata := emailMetadata{
		Timestamp:   now.Format(time.RFC3339),
		From:        params.From,
		FromName:    params.FromName,
		SendTo:      params.SendTo,
		Subject:     params.Subject,
		Tag:         params.Tag,
		Attachments: params.Attachments,
	}
	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe, lowercase filename of at
// most 100 characters.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "@", "_at_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
