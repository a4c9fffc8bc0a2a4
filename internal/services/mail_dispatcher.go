package services

import (
	"context"
	"errors"
	"log/slog"
	"net/textproto"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/xsiva15/Auth/domain"
)

// MailDispatcher implements domain.Mailer. It builds the signed link for the
// requested purpose and pushes it through the email transport with a bounded
// fixed-delay retry. Delivery failures are logged, never returned to the
// business operation that triggered them.
type MailDispatcher struct {
	sender        domain.EmailSender
	confirmTokens domain.LinkTokenService
	resetTokens   domain.LinkTokenService
	attempts      int
	delay         time.Duration
}

// NewMailDispatcher creates a new mail dispatcher. attempts is the total
// number of send attempts, delay the fixed pause between them.
func NewMailDispatcher(
	sender domain.EmailSender,
	confirmTokens domain.LinkTokenService,
	resetTokens domain.LinkTokenService,
	attempts int,
	delay time.Duration,
) domain.Mailer {
	if attempts < 1 {
		attempts = 1
	}
	if delay <= 0 {
		delay = time.Second
	}
	return &MailDispatcher{
		sender:        sender,
		confirmTokens: confirmTokens,
		resetTokens:   resetTokens,
		attempts:      attempts,
		delay:         delay,
	}
}

// SendConfirmationEmail implements domain.Mailer
func (d *MailDispatcher) SendConfirmationEmail(ctx context.Context, email, userID string) error {
	link, err := d.confirmTokens.GenerateLink(userID, email)
	if err != nil {
		return err
	}
	return d.send(ctx, email, "Email confirmation", link)
}

// SendResetEmail implements domain.Mailer
func (d *MailDispatcher) SendResetEmail(ctx context.Context, email, userID string) error {
	link, err := d.resetTokens.GenerateLink(userID, email)
	if err != nil {
		return err
	}
	return d.send(ctx, email, "Reset password", link)
}

func (d *MailDispatcher) send(ctx context.Context, to, subject, body string) error {
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(d.attempts-1), retry.NewConstant(d.delay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		sendErr := d.sender.SendEmail(to, subject, body)
		if sendErr == nil {
			return nil
		}
		if isPermanent(sendErr) {
			return sendErr
		}
		if attempt == 1 {
			slog.Warn("email delivery failed, retrying", "to", to, "subject", subject, "error", sendErr)
		}
		return retry.RetryableError(sendErr)
	})
	if err != nil {
		slog.Error("email delivery gave up", "to", to, "subject", subject, "attempts", attempt, "error", err)
		return err
	}
	return nil
}

// isPermanent reports whether the SMTP server definitively rejected the
// message. 5xx responses do not get retried; connection-class failures do.
func isPermanent(err error) bool {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return protoErr.Code >= 500
	}
	return false
}
