// Package smtp sends reminder emails over SMTP using gomail.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"standup-tracker/internal/config"
)

// Mailer sends standup reminder emails.
type Mailer struct {
	cfg      *config.SMTPConfig
	emailCfg *config.EmailConfig
	tmpl     *template.Template
}

// NewMailer creates a new SMTP mailer.
func NewMailer(cfg *config.SMTPConfig, emailCfg *config.EmailConfig) (*Mailer, error) {
	tmpl, err := template.New("reminder").Parse(reminderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminder template: %w", err)
	}

	return &Mailer{cfg: cfg, emailCfg: emailCfg, tmpl: tmpl}, nil
}

// SendStandupReminder emails a user who has not logged a standup today.
func (m *Mailer) SendStandupReminder(ctx context.Context, to, name, date string) error {
	data := map[string]any{
		"Name":   name,
		"Date":   date,
		"AppURL": m.emailCfg.AppURL,
	}

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	subject := fmt.Sprintf("Standup reminder for %s", date)
	return m.send(to, subject, buf.String())
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	// UseTLS selects STARTTLS (port 587); otherwise implicit SSL (port 465).
	d.SSL = !m.cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: m.cfg.Host}

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const reminderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Standup Reminder</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4CAF50;">Time for your standup</h2>
        <p>Hi {{.Name}},</p>
        <p>You have not logged a standup for {{.Date}} yet. Take a minute to record what you worked on today and what you plan to do tomorrow.</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="{{.AppURL}}" style="background-color: #4CAF50; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Log Standup</a>
        </div>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">You can disable these reminders in your profile settings.</p>
    </div>
</body>
</html>
`
