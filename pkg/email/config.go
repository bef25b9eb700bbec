package email

import "time"

// Transport names accepted by Config.Transport.
const (
	TransportPostmark = "postmark"
	TransportSES      = "ses"
	TransportSMTP     = "smtp"
	TransportDev      = "dev"
)

// Config holds email service configuration.
// SenderEmail is the operator mailbox: it is the From address of every
// outbound message and the recipient of operator notifications.
// Provider credentials are only checked by the constructor of the selected transport.
type Config struct {
	Transport   string        `env:"MAIL_TRANSPORT" envDefault:"dev"`
	SenderEmail string        `env:"SENDER_EMAIL,required"`
	SendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"15s"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SESRegion          string `env:"SES_REGION" envDefault:"ap-northeast-1"`
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	DevOutputDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
