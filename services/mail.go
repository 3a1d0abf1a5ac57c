package services

import (
	"fmt"
	"net/smtp"

	"delish/config"
	"delish/models"
)

// Mailer sends a templated email to a user. Failures are returned to
// the caller; no flow treats a failed send as success.
type Mailer interface {
	Send(user *models.User, subject, template string, vars map[string]string) error
}

var mailTemplates = map[string]string{
	"password-reset": `<html>
<body>
<h2>Password Reset</h2>
<p>Hi %s,</p>
<p>Someone (hopefully you) requested a password reset. Click the link below to choose a new password:</p>
<p><a href="%s">Reset your password</a></p>
<p>This link expires in one hour. If you didn't request it, you can safely ignore this email.</p>
</body>
</html>`,
}

// SMTPMailer sends mail over plain SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(user *models.User, subject, template string, vars map[string]string) error {
	tpl, ok := mailTemplates[template]
	if !ok {
		return fmt.Errorf("unknown mail template %q", template)
	}

	body := fmt.Sprintf(tpl, user.Name, vars["resetURL"])
	message := []byte(fmt.Sprintf(`To: %s
Subject: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"

%s`, user.Email, subject, body))

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{user.Email}, message); err != nil {
		return fmt.Errorf("sending %q mail to %s: %w", template, user.Email, err)
	}
	return nil
}
