// Package mail delivers the account verification and password reset emails.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/BilawalArif/redfin-clone/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	verifySubject = "Verify Your Account"
	resetSubject  = "Forgot Password"
)

var (
	verifyTemplate = template.Must(template.New("verify").Parse(`<html>
  <head>
    <title>Email Confirmation</title>
  </head>
  <body>
    <h1>Confirm Your Email</h1>
    <p>Please click the following link to confirm your email:</p>
    <a href="{{.Link}}">{{.Link}}</a>
  </body>
</html>`))

	resetTemplate = template.Must(template.New("reset").Parse(`<html>
  <head>
    <title>Forgot Password</title>
  </head>
  <body>
    <h1>Reset Your Password</h1>
    <p>Please click the following link to reset your password:</p>
    <a href="{{.Link}}">{{.Link}}</a>
  </body>
</html>`))
)

// Dialer sends fully built messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional email over SMTP
type Mailer struct {
	dialer  Dialer
	from    string
	baseURL string
	dryRun  bool
	logger  *zap.Logger
}

// NewMailer creates a mailer backed by an SMTP dialer built from cfg
func NewMailer(cfg config.MailConfig, baseURL string, logger *zap.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewMailerWithDialer(dialer, cfg.From, baseURL, cfg.DryRun, logger)
}

// NewMailerWithDialer creates a mailer that sends through the given dialer
func NewMailerWithDialer(dialer Dialer, from, baseURL string, dryRun bool, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:  dialer,
		from:    from,
		baseURL: strings.TrimRight(baseURL, "/"),
		dryRun:  dryRun,
		logger:  logger,
	}
}

// SendVerificationEmail mails the account confirmation link
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	link := m.link("/auth/verify", email, token)
	return m.send(ctx, email, verifySubject, verifyTemplate, link)
}

// SendPasswordResetEmail mails the password reset link
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	link := m.link("/auth/reset-password", email, token)
	return m.send(ctx, email, resetSubject, resetTemplate, link)
}

func (m *Mailer) link(path, email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	return m.baseURL + path + "?" + query.Encode()
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.dryRun {
		m.logger.Info("mail dry run",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("link", link),
		)
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return fmt.Errorf("failed to render %q email: %w", subject, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %q email to %s: %w", subject, to, err)
	}

	return nil
}
