package app

import (
	"amora_backend/internal/email"
	"amora_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error                      { return nil }
func (m *MockEmailProvider) SendVerification(to string, token string) error   { return nil }
func (m *MockEmailProvider) SendPasswordReset(to string, token string) error  { return nil }
func (m *MockEmailProvider) Validate() error                                  { return nil }
func (m *MockEmailProvider) Close() error                                     { return nil }

// LogCodeSender пишет SMS-коды в лог вместо отправки.
type LogCodeSender struct{}

func (s *LogCodeSender) SendCode(phone, code string) error {
	logger.Info("SMS code issued", "phone", phone, "code", code)
	return nil
}
