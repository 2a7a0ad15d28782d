// Package mailer sends transactional email over plain SMTP. Delivery is best
// effort; callers fire it from goroutines and only log failures.
package mailer

import (
	"fmt"
	"net/smtp"

	"wheelshare/pkg/utils"

	"go.uber.org/zap"
)

type Mailer interface {
	SendOTP(toEmail, otp string, expiryMinutes int) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) SendOTP(toEmail, otp string, expiryMinutes int) error {
	// No SMTP host configured: log the OTP instead so local development works
	// without a mail server.
	if m.config.Host == "" {
		m.log.Info("SMTP not configured, OTP logged instead",
			zap.String("email", toEmail),
			zap.String("otp", otp))
		return nil
	}

	subject := "Your WheelShare verification code"
	body := fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", otp, expiryMinutes)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.config.From, toEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{toEmail}, msg); err != nil {
		m.log.Error("Failed to send OTP email",
			zap.Error(err),
			zap.String("email", toEmail))
		return fmt.Errorf("send OTP email to %s: %w", toEmail, err)
	}

	return nil
}
