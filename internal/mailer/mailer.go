package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"storefront/internal/logging"
)

// perMessageDelay mimics the latency of a real bulk send when no SMTP server
// is configured.
const perMessageDelay = 10 * time.Second

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NotifyCustomers sends one message to every recipient. Without an SMTP host
// the send is simulated: the worker sleeps for the duration a bulk send would
// take and logs the outcome.
func (m *Mailer) NotifyCustomers(ctx context.Context, subject, message string, recipients []string) error {
	l := logging.FromContext(ctx)

	if m.Host == "" {
		l.Info("bulk_email_simulated", "recipients", len(recipients), "message", message)
		select {
		case <-time.After(perMessageDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		l.Info("bulk_email_sent", "recipients", len(recipients))
		return nil
	}

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("mailer: client init failed: %w", err)
	}

	msgs := make([]*mail.Msg, 0, len(recipients))
	for _, to := range recipients {
		msg := mail.NewMsg()
		if err := msg.From(m.From); err != nil {
			return fmt.Errorf("mailer: invalid sender %q: %w", m.From, err)
		}
		if err := msg.To(to); err != nil {
			l.Warn("bulk_email_bad_recipient", "recipient", to, "error", err)
			continue
		}
		msg.Subject(subject)
		msg.SetBodyString(mail.TypeTextPlain, message)
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, msgs...); err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	l.Info("bulk_email_sent", "recipients", len(msgs))
	return nil
}
