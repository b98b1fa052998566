package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"solvedet-intake/internal/common/config"
	"solvedet-intake/internal/common/logger"
)

// SMTPTransport delivers messages through an authenticated SMTP relay,
// STARTTLS by default. This is the transport the hosted deployment points
// at Gmail.
type SMTPTransport struct {
	cfg    config.SMTPConfig
	logger logger.Logger
}

func NewSMTPTransport(cfg config.SMTPConfig, log logger.Logger) *SMTPTransport {
	return &SMTPTransport{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"transport": "smtp"}),
	}
}

// Verify establishes a session up to authentication and quits without
// sending anything. A failure here means credentials or connectivity are
// unusable and no content should be composed.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before transport verification: %w", err)
	}

	client, err := t.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Quit(); err != nil {
		return fmt.Errorf("failed to close verification session: %w", err)
	}

	t.logger.Debug("transport verified", map[string]interface{}{
		"host": t.cfg.Host,
		"port": t.cfg.Port,
	})
	return nil
}

// Send delivers a single message over a fresh session.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	client, err := t.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", msg.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write([]byte(buildRFC822(msg))); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// connect dials the relay, negotiates TLS and authenticates.
func (t *SMTPTransport) connect() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", t.cfg.Host, t.cfg.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	if t.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName:         t.cfg.Host,
			InsecureSkipVerify: false,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if t.cfg.Username != "" && t.cfg.Password != "" {
		auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	return client, nil
}
