package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mentorwise/mentorwise-api/config"
)

// Sender delivers transactional email. The interface exists so services can be
// tested without an SMTP server.
type Sender interface {
	SendPasswordResetEmail(to, resetURL string) error
}

// SMTPMailer sends mail through a configured SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from SMTP configuration
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordResetEmail sends the reset link to the user. This is a single
// blocking attempt; the caller rolls back the stored reset token on failure.
func (m *SMTPMailer) SendPasswordResetEmail(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset Your MentorWise Password")
	msg.SetBody("text/html", buildResetBody(resetURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func buildResetBody(resetURL string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>MentorWise Password Reset</h2>
	<p>You requested to reset your password for your MentorWise account.</p>
	<p><a href="%s">Reset Password</a></p>
	<p>Or copy and paste this link into your browser:</p>
	<p>%s</p>
	<p><strong>This link will expire in 1 hour.</strong></p>
	<p>If you didn't request this password reset, please ignore this email. Your password will remain unchanged.</p>
	<p>Thanks,<br>The MentorWise Team</p>
</body>
</html>`, resetURL, resetURL)
}
