package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/auxesia/auxesia-server/internal/config"
	"github.com/auxesia/auxesia-server/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers verification email over SMTP with STARTTLS
// negotiated by the smtp package.
type SMTPMailer struct {
	host          string
	port          string
	auth          smtp.Auth
	from          string
	fromName      string
	publicBaseURL string
}

// NewSMTPMailer creates a mailer from SMTP configuration. publicBaseURL is
// the externally reachable address the verification link points back to.
func NewSMTPMailer(cfg config.SMTP, publicBaseURL string) *SMTPMailer {
	return &SMTPMailer{
		host:          cfg.Host,
		port:          cfg.Port,
		auth:          smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from:          cfg.From,
		fromName:      cfg.FromName,
		publicBaseURL: publicBaseURL,
	}
}

// SendVerification emails the account verification link carrying the
// signed token.
func (m *SMTPMailer) SendVerification(ctx context.Context, email, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("verification mail cancelled: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verifyemail?token=%s", m.publicBaseURL, token)
	msg := m.buildMessage(email, "Auxesia Email Verification", verificationBody(link))

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, m.auth, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}

	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func verificationBody(link string) string {
	return fmt.Sprintf(`<p>Thanks for signing up to Auxesia. Please verify your email:</p>
<a href=%q>Verify</a>`, link)
}
