// Package email sends transactional HTML emails with optional inline
// attachments through a provider-agnostic EmailSender interface.
//
// # Transports
//
//   - NewPostmarkClient: Postmark API (github.com/mrz1836/postmark)
//   - NewSESSender: Amazon SES raw messages (aws-sdk-go-v2)
//   - NewSMTPSender: plain SMTP with STARTTLS, Gmail defaults
//   - NewDevSender: writes HTML, JSON metadata and attachments to disk
//
// New picks one of them from Config.Transport and wraps it with WithTimeout.
//
// # Usage
//
//	sender, err := email.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    FromName: "Website Form",
//	    SendTo:   "owner@example.com",
//	    Subject:  "New inquiry",
//	    BodyHTML: `<p>see image</p><img src="cid:logo">`,
//	    Attachments: []email.Attachment{{
//	        Filename:    "logo.png",
//	        ContentType: "image/png",
//	        ContentID:   "logo",
//	        Content:     pngBytes,
//	    }},
//	})
//
// Attachments with a ContentID are delivered inline and can be referenced
// from the body as "cid:<ContentID>".
//
// # Error Handling
//
//   - ErrInvalidConfig: a transport constructor rejected Config
//   - ErrInvalidParams: SendEmailParams.Validate failed
//   - ErrFailedToSendEmail: delivery failed
//   - ErrSendTimeout: delivery exceeded the send timeout (joined with ErrFailedToSendEmail)
package email
