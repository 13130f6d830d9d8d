package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/omindustries/backoffice/internal/config"
)

// Notification is one plain-text message for the operator.
type Notification struct {
	Subject string
	Body    string
}

// Mailer delivers a single notification. Implementations must respect the
// context deadline.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
	Enabled() bool
}

// SMTPMailer talks to an authenticated relay. Missing credentials are not an
// error: the mailer simply reports itself disabled and every send becomes a
// no-op upstream.
type SMTPMailer struct {
	cfg config.SMTP
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	if !cfg.Enabled() {
		zap.L().Info("mail notifications disabled: relay credentials not fully configured")
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Enabled()
}

func (m *SMTPMailer) Send(ctx context.Context, n Notification) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, n.Body)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTimeout(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send via %s: %w", m.cfg.Host, err)
	}
	return nil
}
