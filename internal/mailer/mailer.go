package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/config"
)

// Message is a single transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers transactional email and returns a transport message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SMTPSender sends mail over an authenticated SMTP connection.
type SMTPSender struct {
	cfg    config.MailerConfig
	logger *zap.Logger
}

// NewSMTPSender builds a sender from mailer config.
func NewSMTPSender(cfg config.MailerConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers the message in a single attempt. Retry policy, if any,
// belongs to the caller.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		return "", err
	}

	s.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("message_id", messageID))
	return messageID, nil
}
