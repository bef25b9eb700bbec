package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

// SESAPI is the subset of the SES client used by SESSender.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender delivers messages through Amazon SES raw email API so inline
// attachments survive untouched.
type SESSender struct {
	client SESAPI
	config Config
	now    func() time.Time
}

// SESOption configures SESSender.
type SESOption func(*SESSender)

// WithSESClient sets a pre-configured SES client. Useful for testing.
func WithSESClient(client SESAPI) SESOption {
	return func(s *SESSender) {
		s.client = client
	}
}

// NewSESSender creates an SES-backed sender. Static credentials are used when
// both key fields are set, otherwise the default AWS credential chain applies.
func NewSESSender(ctx context.Context, cfg Config, opts ...SESOption) (*SESSender, error) {
	if err := validateSender(cfg); err != nil {
		return nil, err
	}
	if cfg.SESRegion == "" {
		return nil, fmt.Errorf("%w: SESRegion is required", ErrInvalidConfig)
	}

	s := &SESSender{config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.client != nil {
		return s, nil
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.SESRegion)}
	if cfg.SESAccessKeyID != "" && cfg.SESSecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKeyID, cfg.SESSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	s.client = ses.NewFromConfig(awsCfg)
	return s, nil
}

// SendEmail implements EmailSender.
func (s *SESSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	raw, err := BuildMIME(params.sender(s.config.SenderEmail), params, s.now())
	if err != nil {
		return fmt.Errorf("%w: failed to build message: %v", ErrFailedToSendEmail, err)
	}

	_, err = s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(params.envelopeFrom(s.config.SenderEmail)),
		Destinations: []string{params.SendTo},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: ses %s: %s", ErrFailedToSendEmail, apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
