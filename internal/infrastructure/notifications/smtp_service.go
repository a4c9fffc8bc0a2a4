package notifications

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/xsiva15/Auth/domain"
)

// SMTPServiceImpl implements domain.EmailSender over plain SMTP
type SMTPServiceImpl struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// NewSMTPService creates a new SMTP email sender
func NewSMTPService(host, port, from, username, password string) domain.EmailSender {
	return &SMTPServiceImpl{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
}

// implicitTLS reports whether the port expects a TLS handshake before any
// SMTP traffic. Port 465 is SMTPS; submission ports negotiate STARTTLS
// after the plaintext greeting instead.
func implicitTLS(port string) bool {
	return port == "465"
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, to, subject, body))
}

// SendEmail implements domain.EmailSender. When no host is configured the
// message is logged instead of sent, which keeps local development working
// without a mail server.
func (s *SMTPServiceImpl) SendEmail(to, subject, body string) error {
	if s.host == "" {
		slog.Info("mock email", "to", to, "subject", subject, "body", body)
		return nil
	}

	msg := buildMessage(s.from, to, subject, body)
	addr := s.host + ":" + s.port

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	var err error
	if implicitTLS(s.port) {
		err = s.sendTLS(addr, auth, to, msg)
	} else {
		err = smtp.SendMail(addr, auth, s.from, []string{to}, msg)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendTLS delivers over an SMTPS connection. smtp.SendMail only speaks
// plaintext-then-STARTTLS, so for port 465 the TLS handshake has to happen
// before the client greeting.
func (s *SMTPServiceImpl) sendTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
