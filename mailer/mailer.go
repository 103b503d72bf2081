package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/luxemarket/storefront-api/config"
)

// Mailer sends best-effort transactional email. With no SMTP host
// configured every send is a logged no-op, which keeps webhook handlers
// working in development.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (m *Mailer) SendOrderConfirmation(to, orderID string) error {
	subject := "Order Confirmation"
	body := fmt.Sprintf("Thank you for your order! Your order ID is %s. We are processing it now.", orderID)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" || to == "" {
		log.Printf("📭 SMTP not configured, skipping email to %s", to)
		return nil
	}

	message := []byte("To: " + to + "\r\n" +
		"From: " + m.from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, message); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}
