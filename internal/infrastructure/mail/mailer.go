package mail

import (
	"fmt"
	"strings"

	"hotel-onboarding/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer is the fire-and-forget notification contract: a send failure is
// logged, never surfaced to the operation that triggered it.
type Mailer interface {
	Send(to, subject, body string)
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	var dialer *gomail.Dialer
	if strings.TrimSpace(cfg.Host) != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	} else {
		logger.Warn().Msg("smtp not configured, outgoing mail disabled")
	}

	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = cfg.Username
	}

	return &SMTPMailer{dialer: dialer, from: from, logger: logger}
}

func (m *SMTPMailer) Send(to, subject, body string) {
	if m == nil {
		return
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return
	}
	if m.dialer == nil {
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail skipped, smtp disabled")
		return
	}

	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/plain", body)

		if err := m.dialer.DialAndSend(msg); err != nil {
			m.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("mail send failed")
			return
		}
		m.logger.Info().Str("to", to).Str("subject", subject).Msg("mail sent")
	}()
}

// Bodies below are deliberately plain text; templated HTML mail is out of
// scope.

func ApprovalBody(firstName, propertyName, jobTitle, startDate, onboardingURL string) (string, string) {
	subject := fmt.Sprintf("Job Offer - %s at %s", jobTitle, propertyName)
	body := fmt.Sprintf(
		"Hi %s,\n\nCongratulations! Your application at %s has been approved for the %s position, starting %s.\n\nPlease complete your onboarding here: %s\n\nThe link expires in two weeks.\n",
		firstName, propertyName, jobTitle, startDate, onboardingURL,
	)
	return subject, body
}

func RejectionBody(firstName, propertyName string) (string, string) {
	subject := fmt.Sprintf("Application Update - %s", propertyName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your interest in %s. After careful review we will not be moving forward with your application at this time.\n",
		firstName, propertyName,
	)
	return subject, body
}

func TalentPoolBody(firstName, propertyName string) (string, string) {
	subject := fmt.Sprintf("Application Update - %s", propertyName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for applying to %s. Your application has been added to our talent pool and we will reach out when a matching position opens.\n",
		firstName, propertyName,
	)
	return subject, body
}
