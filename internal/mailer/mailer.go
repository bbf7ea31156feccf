package mailer

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Sender delivers the verification mail after registration. Delivery is a
// deferred side effect: registration never fails because the mail did not go
// out, the token stays redeemable either way.
type Sender interface {
	SendVerification(to, name, token string) error
}

type SMTPSender struct {
	host          string
	port          int
	username      string
	password      string
	from          string
	verifyBaseURL string
}

func NewSMTPSender(host string, port int, username, password, from, verifyBaseURL string) *SMTPSender {
	return &SMTPSender{
		host:          host,
		port:          port,
		username:      username,
		password:      password,
		from:          from,
		verifyBaseURL: verifyBaseURL,
	}
}

func (s *SMTPSender) SendVerification(to, name, token string) error {
	link := fmt.Sprintf("%s/api/users/verify-email?token=%s", s.verifyBaseURL, url.QueryEscape(token))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to the platform. Please verify your email:</p><p><a href=%q>%s</a></p>",
		name, link, link,
	))

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

// Noop is used when SMTP is disabled (local runs, tests).
type Noop struct{}

func (Noop) SendVerification(string, string, string) error { return nil }
