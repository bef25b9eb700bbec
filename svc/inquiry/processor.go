package inquiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/hadis/inquiry/pkg/email"
	"github.com/hadis/inquiry/pkg/email/templates"
	"github.com/hadis/inquiry/pkg/logger"
	"github.com/hadis/inquiry/pkg/metrics"
)

// Message tags, also used as metric labels.
const (
	TagOperatorNotification   = "operator-notification"
	TagCustomerAcknowledgment = "customer-acknowledgment"
)

const (
	operatorSubjectPrefix = "新しいお問い合わせ: "
	customerSubject       = "お問い合わせありがとうございます"
)

type Config struct {
	OperatorEmail    string `env:"SENDER_EMAIL,required"`
	OperatorFromName string `env:"OPERATOR_FROM_NAME" envDefault:"Website Form"`
	BrandName        string `env:"BRAND_NAME" envDefault:"ハディズ"`

	SignatureTagline string `env:"SIGNATURE_TAGLINE" envDefault:"機械工具 高価買取"`
	CompanyName      string `env:"COMPANY_NAME" envDefault:"有限会社　ハディズ・インターナショナル"`
	PostalAddress    string `env:"COMPANY_ADDRESS" envDefault:"〒350-1327 埼玉県狭山市笹井1-33-5"`
	Phone            string `env:"COMPANY_PHONE" envDefault:"0120-842-881　04-2955-5276"`
	Fax              string `env:"COMPANY_FAX" envDefault:"04-2954-7136"`
	WebsiteURL       string `env:"COMPANY_WEBSITE" envDefault:"https://mac-hadis.com/"`
}

func (c Config) signature() Signature {
	return Signature{
		Tagline:       c.SignatureTagline,
		CompanyName:   c.CompanyName,
		PostalAddress: c.PostalAddress,
		Phone:         c.Phone,
		Fax:           c.Fax,
		WebsiteURL:    c.WebsiteURL,
	}
}

// Option configures a Processor.
type Option func(*Processor)

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// Processor turns a submission into the operator notification and the
// customer acknowledgment. It holds no per-request state and is safe for
// concurrent use.
type Processor struct {
	sender email.EmailSender
	cfg    Config
	log    *slog.Logger
}

func NewProcessor(sender email.EmailSender, cfg Config, opts ...Option) (*Processor, error) {
	if sender == nil {
		return nil, errors.Join(email.ErrInvalidConfig, errors.New("email sender is required"))
	}
	if !email.IsValidAddress(cfg.OperatorEmail) {
		return nil, errors.Join(email.ErrInvalidConfig, errors.New("operator email must be a valid address"))
	}
	p := &Processor{sender: sender, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Component("inquiry"))
	return p, nil
}

// Process validates s, decodes its images and sends the operator notification
// followed by the customer acknowledgment. The acknowledgment is attempted
// only after the notification was accepted by the transport. Any failure is
// returned as *Error and stops the pipeline; nothing is retried.
func (p *Processor) Process(ctx context.Context, s Submission) error {
	id := uuid.NewString()
	log := p.log.With(logger.SubmissionID(id))

	err := p.process(ctx, log, s.Normalize())
	if err != nil {
		kind := KindOf(err)
		metrics.ObserveSubmission(string(kind))
		log.WarnContext(ctx, "submission failed", logger.ErrorKind(string(kind)), logger.Error(err))
		return err
	}
	metrics.ObserveSubmission(metrics.ResultSuccess)
	log.InfoContext(ctx, "submission processed")
	return nil
}

func (p *Processor) process(ctx context.Context, log *slog.Logger, s Submission) error {
	if err := s.Validate(); err != nil {
		return newError(KindValidation, err)
	}

	attachments, err := ExtractAttachments(s.Products)
	if err != nil {
		return err
	}

	v := newView(s, attachments)

	operatorBody, err := p.render(ctx, operatorNotification(v))
	if err != nil {
		return err
	}
	customerBody, err := p.render(ctx, customerAcknowledgment(v, p.cfg.BrandName, p.cfg.signature()))
	if err != nil {
		return err
	}

	if err := p.send(ctx, log, email.SendEmailParams{
		From:        p.cfg.OperatorEmail,
		FromName:    p.cfg.OperatorFromName,
		SendTo:      p.cfg.OperatorEmail,
		Subject:     operatorSubjectPrefix + s.Name,
		BodyHTML:    operatorBody,
		Tag:         TagOperatorNotification,
		Attachments: attachments.All(),
	}); err != nil {
		return err
	}

	return p.send(ctx, log, email.SendEmailParams{
		From:     p.cfg.OperatorEmail,
		FromName: p.cfg.BrandName,
		SendTo:   s.Email,
		Subject:  customerSubject,
		BodyHTML: customerBody,
		Tag:      TagCustomerAcknowledgment,
	})
}

func (p *Processor) render(ctx context.Context, c templ.Component) (string, error) {
	body, err := templates.Render(ctx, c)
	if err != nil {
		return "", newError(KindInternal, err)
	}
	return body, nil
}

func (p *Processor) send(ctx context.Context, log *slog.Logger, params email.SendEmailParams) error {
	started := time.Now()
	err := p.sender.SendEmail(ctx, params)
	metrics.ObserveEmail(params.Tag, started, err)

	attrs := []any{
		slog.String("message", params.Tag),
		logger.Recipient(params.SendTo),
		logger.Attachments(len(params.Attachments)),
		logger.Duration(time.Since(started)),
	}
	if err != nil {
		log.ErrorContext(ctx, "email send failed", append(attrs, logger.Error(err))...)
		return newError(KindTransport, err)
	}
	log.InfoContext(ctx, "email sent", attrs...)
	return nil
}
