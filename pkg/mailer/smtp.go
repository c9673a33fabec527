package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends through a relay with PLAIN auth when a user is configured.
type SMTPMailer struct {
	addr string
	host string
	user string
	pass string
	from string
	send sendFunc
	log  *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", config.Host, config.Port),
		host: config.Host,
		user: config.User,
		pass: config.Password,
		from: config.From,
		send: smtp.SendMail,
		log:  log.With(zap.String("mailer", "smtp")),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, msg.To, msg.Subject, msg.Body)

	if err := m.send(m.addr, auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		m.log.Error("Failed to send mail", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	return nil
}
