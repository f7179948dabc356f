package email

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/example/medstore/internal/checkout"
)

var ErrNoRecipient = errors.New("no recipient address")

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via SMTP
type Service struct {
	host     string
	port     string
	from     string
	auth     smtp.Auth
	sendMail SendFunc
}

// NewService creates a new email service. Empty username disables SMTP auth.
func NewService(host, port, from, username, password string) *Service {
	s := &Service{
		host:     host,
		port:     port,
		from:     from,
		sendMail: smtp.SendMail,
	}
	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

// Notify sends the order notification to the submission's recipient
func (s *Service) Notify(ctx context.Context, sub checkout.Submission) error {
	if strings.TrimSpace(sub.Recipient) == "" {
		return ErrNoRecipient
	}
	subject := sub.Subject
	if subject == "" {
		subject = checkout.DefaultSubject
	}
	return s.send(ctx, sub.Recipient, subject, BuildOrderNotificationBody(sub))
}

// send runs the blocking SMTP exchange and gives up waiting when ctx ends
func (s *Service) send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, mime.QEncoding.Encode("UTF-8", subject), body)
	addr := net.JoinHostPort(s.host, s.port)

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, s.auth, s.from, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
