package mailer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

const (
	FromName   = "ParkSpot"
	maxRetries = 3

	SubmissionApprovedTemplate = "submission_approved.tmpl"
	SubmissionRejectedTemplate = "submission_rejected.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}

// SMTPClient sends templated mail through a plain SMTP relay.
type SMTPClient struct {
	fromEmail string
	host      string
	port      int
	username  string
	password  string
}

func NewSMTPClient(host string, port int, username, password, fromEmail string) (*SMTPClient, error) {
	if host == "" || fromEmail == "" {
		return nil, errors.New("smtp host and from address are required")
	}
	return &SMTPClient{
		fromEmail: fromEmail,
		host:      host,
		port:      port,
		username:  username,
		password:  password,
	}, nil
}

// Send renders the named template's subject and body blocks and delivers the
// message, retrying transient failures. Returns the attempt count that
// succeeded.
func (c *SMTPClient) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", FromName, c.fromEmail))
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(c.host, c.port, c.username, c.password)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = dialer.DialAndSend(msg); lastErr == nil {
			return i, nil
		}
		time.Sleep(time.Second * time.Duration(i))
	}
	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
