package email

import (
	"fmt"

	"amora_backend/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail.
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	dialer   *gomail.Dialer
}

// NewSMTPProvider создает SMTP провайдер из конфигурации приложения.
func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	p := &SMTPProvider{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		username: cfg.Email.SMTPUsername,
		password: cfg.Email.SMTPPassword,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
	}
	p.dialer = gomail.NewDialer(p.host, p.port, p.username, p.password)
	return p
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.from
	}
	if p.fromName != "" {
		m.SetAddressHeader("From", from, p.fromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendVerification отправляет письмо с токеном подтверждения email
func (p *SMTPProvider) SendVerification(to string, token string) error {
	body, err := renderTemplate(templateVerification, TemplateData{"Token": token})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Подтверждение email / Verify your email",
		HTMLBody: body,
	})
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля
func (p *SMTPProvider) SendPasswordReset(to string, token string) error {
	body, err := renderTemplate(templatePasswordReset, TemplateData{"Token": token})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Сброс пароля / Password reset",
		HTMLBody: body,
	})
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.port <= 0 || p.port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.port)
	}
	return nil
}

// Close закрывает соединение (для SMTP обычно не требуется)
func (p *SMTPProvider) Close() error {
	return nil
}
