package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	codeUsecases "cardly/internal/application/activationcode/usecases"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/config"
	"cardly/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPConfigFrom converts the email section of the application config.
func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

type SMTPEmailService struct {
	config SMTPConfig
	send   func(m *gomail.Message) error
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// NewNotifier returns an SMTP notifier, or one that only logs when no host is configured.
func NewNotifier(cfg config.EmailConfig, log logger.Interface) codeUsecases.CodeSoldNotifier {
	if cfg.SMTPHost == "" {
		log.Infow("email not configured, code sold mails will only be logged")
		return &LogNotifier{logger: log}
	}
	return NewSMTPEmailService(SMTPConfigFrom(cfg))
}

func (s *SMTPEmailService) NotifyCodeSold(ctx context.Context, n codeUsecases.CodeSoldNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.CustomerEmail == "" {
		return fmt.Errorf("customer email is required")
	}
	return s.send(s.buildCodeSoldMessage(n))
}

func (s *SMTPEmailService) buildCodeSoldMessage(n codeUsecases.CodeSoldNotification) *gomail.Message {
	soldAt := biztime.Format(n.SoldAt, biztime.DateTimeLayout)

	subject := "Your Cardly activation code"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Thank you, %s!</h2>
			<p>Your payment was confirmed on %s.</p>
			<p>Activation code: <strong>%s</strong></p>
			<p>Plan: %s<br>Amount: %s</p>
			<p>Use this code when creating your card to activate it right away.</p>
		</body>
		</html>
	`, n.CustomerName, soldAt, n.Code, n.Plan, n.Amount)

	plainBody := fmt.Sprintf(`
Thank you, %s!

Your payment was confirmed on %s.

Activation code: %s
Plan: %s
Amount: %s

Use this code when creating your card to activate it right away.
	`, n.CustomerName, soldAt, n.Code, n.Plan, n.Amount)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetAddressHeader("To", n.CustomerEmail, n.CustomerName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

// LogNotifier stands in for SMTP in environments without a mail server.
type LogNotifier struct {
	logger logger.Interface
}

func (n *LogNotifier) NotifyCodeSold(_ context.Context, msg codeUsecases.CodeSoldNotification) error {
	n.logger.Infow("code sold mail skipped, smtp disabled",
		"code", msg.Code,
		"customer_email", msg.CustomerEmail,
	)
	return nil
}
