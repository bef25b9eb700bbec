package email_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hadis/inquiry/pkg/email"
)

type blockingSender struct{}

func (blockingSender) SendEmail(ctx context.Context, _ email.SendEmailParams) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	params := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "subject",
		BodyHTML: "<p>body</p>",
	}

	t.Run("passes through success", func(t *testing.T) {
		t.Parallel()

		m := new(MockEmailSender)
		m.On("SendEmail", mock.Anything, params).Return(nil).Once()

		err := email.WithTimeout(m, time.Second).SendEmail(context.Background(), params)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("passes through transport error", func(t *testing.T) {
		t.Parallel()

		boom := errors.Join(email.ErrFailedToSendEmail, errors.New("535 auth failed"))
		m := new(MockEmailSender)
		m.On("SendEmail", mock.Anything, params).Return(boom).Once()

		err := email.WithTimeout(m, time.Second).SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.NotErrorIs(t, err, email.ErrSendTimeout)
		assert.Contains(t, err.Error(), "535 auth failed")
	})

	t.Run("deadline becomes transport failure", func(t *testing.T) {
		t.Parallel()

		err := email.WithTimeout(blockingSender{}, 20*time.Millisecond).SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, email.ErrSendTimeout)
	})

	t.Run("non-positive timeout returns sender unchanged", func(t *testing.T) {
		t.Parallel()

		m := new(MockEmailSender)
		assert.Same(t, m, email.WithTimeout(m, 0))
	})
}
