package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendEmail delivers a plain-text email via the SMTP settings from ENV.
// When SMTP is not configured the message is logged instead, so callers can
// always treat delivery as best-effort.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	if host == "" || user == "" || pass == "" {
		log.Printf("[MAIL FALLBACK] to=%s subject=%q (SMTP not configured)", to, subject)
		return nil
	}
	if port == "" {
		port = "587"
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, to, subject, body,
	)

	auth := smtp.PlainAuth("", user, pass, host)
	if err := smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendPaymentConfirmation notifies a student that their event payment went
// through. Errors are returned for logging only; callers must not fail the
// request on them.
func SendPaymentConfirmation(to, studentName, eventTitle, transactionID string) error {
	subject := "Payment Confirmation - EventHub"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment for the event %q is confirmed.\nTransaction ID: %s\n\nThank you.",
		studentName, eventTitle, transactionID,
	)
	return SendEmail(to, subject, body)
}
