package mailer

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer sends the transactional mail the auth flows depend on.
type Mailer interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

// New returns an SMTP mailer when SMTP_HOST is configured, otherwise a
// log-only mailer so local development works without a mail relay.
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{baseURL: cfg.AppBaseURL}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg *config.Config
}

func (m *SMTPMailer) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.AppBaseURL, token)
	body := "Welcome to Pluto!\n\nPlease confirm your email address by opening the link below:\n\n" +
		link + "\n\nIf you did not create an account, you can ignore this message.\n"
	return m.send(to, "Verify your Pluto account", body)
}

func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.AppBaseURL, token)
	body := "A password reset was requested for your Pluto account.\n\n" +
		"Open the link below to choose a new password:\n\n" + link +
		"\n\nThe link expires in 24 hours. If you did not request a reset, ignore this message.\n"
	return m.send(to, "Reset your Pluto password", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	port, err := strconv.Atoi(m.cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	opts := []mail.Option{mail.WithPort(port), mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSend(msg)
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	baseURL string
}

func (m *LogMailer) SendVerification(to, token string) error {
	slog.Info("verification mail (not sent, SMTP unconfigured)",
		"to", to, "link", fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token))
	return nil
}

func (m *LogMailer) SendPasswordReset(to, token string) error {
	slog.Info("password reset mail (not sent, SMTP unconfigured)",
		"to", to, "link", fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token))
	return nil
}
