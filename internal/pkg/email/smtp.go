// internal/pkg/email/smtp.go
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tochayanroy/ecomapp-backend/internal/config"
)

// smtpSender delivers messages through an SMTP server
type smtpSender struct {
	config *config.Config
}

func newSMTPSender(cfg *config.Config) *smtpSender {
	return &smtpSender{config: cfg}
}

// Send delivers a single message. ctx cancellation is checked before dialing;
// net/smtp itself does not support contexts.
func (s *smtpSender) Send(ctx context.Context, msg *Message) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	addr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	from := s.config.Email.FromEmail

	var auth smtp.Auth
	if s.config.Email.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.config.Email.SMTPUser, s.config.Email.SMTPPass, s.config.Email.SMTPHost)
	}

	payload := s.buildPayload(from, msg)

	if s.config.Email.UseTLS {
		return s.sendTLS(addr, auth, from, msg.To, payload)
	}

	return smtp.SendMail(addr, auth, from, []string{msg.To}, payload)
}

// sendTLS handles servers that require an implicit TLS connection (port 465)
func (s *smtpSender) sendTLS(addr string, auth smtp.Auth, from, to string, payload []byte) error {
	tlsConfig := &tls.Config{ServerName: s.config.Email.SMTPHost}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Email.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (s *smtpSender) buildPayload(from string, msg *Message) []byte {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.Email.FromName, from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	return []byte(b.String())
}
