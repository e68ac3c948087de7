package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/dtroode/otp-signup/internal/model"
)

const subject = "Your registration code"

// sender is the part of *gomail.Dialer used by Mailer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ model.Notifier = (*Mailer)(nil)

// Mailer sends passcodes over SMTP.
type Mailer struct {
	sender   sender
	from     string
	validFor time.Duration
}

// NewMailer creates a Mailer backed by an SMTP dialer.
func NewMailer(host string, port int, username, password, from string, validFor time.Duration) *Mailer {
	return NewMailerWithSender(gomail.NewDialer(host, port, username, password), from, validFor)
}

// NewMailerWithSender allows injecting the transport (used in tests).
func NewMailerWithSender(s sender, from string, validFor time.Duration) *Mailer {
	return &Mailer{sender: s, from: from, validFor: validFor}
}

// SendCode emails code to address. It returns when the SMTP exchange
// finishes or ctx is done, whichever comes first.
func (m *Mailer) SendCode(ctx context.Context, address, code string) error {
	if address == "" {
		return errors.New("recipient address is empty")
	}

	msg := m.message(address, code)

	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send code: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send code: %w", ctx.Err())
	}
}

func (m *Mailer) message(address, code string) *gomail.Message {
	minutes := int(m.validFor.Minutes())

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", address)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain",
		fmt.Sprintf("Your registration code is: %s\nThis code will expire in %d minutes.", code, minutes))
	msg.AddAlternative("text/html",
		fmt.Sprintf("<p>Your registration code is: <b>%s</b></p><p>This code will expire in %d minutes.</p>", code, minutes))

	return msg
}
