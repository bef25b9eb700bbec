package email

import (
	"context"
	"errors"
	"time"
)

type timeoutSender struct {
	next    EmailSender
	timeout time.Duration
}

// WithTimeout bounds every SendEmail call of next by d.
// An expired deadline is reported as ErrSendTimeout joined with
// ErrFailedToSendEmail. A non-positive d returns next unchanged.
func WithTimeout(next EmailSender, d time.Duration) EmailSender {
	if d <= 0 {
		return next
	}
	return &timeoutSender{next: next, timeout: d}
}

func (t *timeoutSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- t.next.SendEmail(ctx, params) }()

	select {
	case err := <-errCh:
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Join(ErrFailedToSendEmail, ErrSendTimeout, err)
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Join(ErrFailedToSendEmail, ErrSendTimeout)
		}
		return errors.Join(ErrFailedToSendEmail, ctx.Err())
	}
}

// New builds the sender selected by cfg.Transport, wrapped with the
// configured send timeout.
func New(ctx context.Context, cfg Config) (EmailSender, error) {
	var (
		sender EmailSender
		err    error
	)
	switch cfg.Transport {
	case TransportPostmark:
		sender, err = NewPostmarkClient(cfg)
	case TransportSES:
		sender, err = NewSESSender(ctx, cfg)
	case TransportSMTP:
		sender, err = NewSMTPSender(cfg)
	case TransportDev, "":
		if err = validateSender(cfg); err == nil {
			sender = NewDevSender(cfg.DevOutputDir)
		}
	default:
		err = errors.Join(ErrInvalidConfig, errors.New("unknown mail transport "+cfg.Transport))
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(sender, cfg.SendTimeout), nil
}
