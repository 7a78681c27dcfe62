package services

import (
	"fmt"

	"github.com/vedantlonkar23/loopspacenew/config"
	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail. It is disabled when no SMTP host is
// configured, so signup never depends on a mail server being reachable.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

func (es *EmailService) Enabled() bool {
	return es.config.SMTPHost != ""
}

// SendWelcomeEmail greets a freshly signed-up account. Callers fire this from
// a goroutine; a delivery failure never fails the signup itself.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	if !es.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to LoopSpace")

	htmlBody := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Hello %s!</h2>
	<p>Welcome to LoopSpace. Complete your profile to start connecting with
	people and events around you.</p>
	<p>— The LoopSpace team</p>
</body>
</html>`, name)

	m.SetBody("text/html", htmlBody)

	return es.dialer.DialAndSend(m)
}
