package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/i474232898/sunset-scout/internal/scout"
)

var errNoRecipients = errors.New("no email recipients configured")

// SMTPConfig holds the mail server account.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSink mails the plain-text report through an SMTP server (STARTTLS when offered).
type SMTPSink struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

func NewSMTPSink(cfg SMTPConfig) *SMTPSink {
	return &SMTPSink{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTPSink) Name() string { return "smtp" }

func (s *SMTPSink) Deliver(ctx context.Context, r scout.Report) error {
	if len(s.cfg.To) == 0 {
		return errNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(s.cfg.To, ", ") + "\r\n")
	msg.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", Subject(r)) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(r.Text, "\n", "\r\n"))

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, from, s.cfg.To, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendGridConfig holds the SendGrid account.
type SendGridConfig struct {
	APIKey string
	// Host overrides the API host, e.g. for tests.
	Host string
	From string
	To   []string
}

// SendGridSink mails the report through the SendGrid v3 API, one message per recipient.
type SendGridSink struct {
	cfg SendGridConfig
}

func NewSendGridSink(cfg SendGridConfig) *SendGridSink {
	return &SendGridSink{cfg: cfg}
}

func (s *SendGridSink) Name() string { return "sendgrid" }

func (s *SendGridSink) Deliver(ctx context.Context, r scout.Report) error {
	if len(s.cfg.To) == 0 {
		return errNoRecipients
	}

	from := sgmail.NewEmail("Sunset Scout", s.cfg.From)
	var errs []error
	for _, addr := range s.cfg.To {
		message := sgmail.NewSingleEmailPlainText(from, Subject(r), sgmail.NewEmail("", addr), r.Text)

		req := sendgrid.GetRequest(s.cfg.APIKey, "/v3/mail/send", s.cfg.Host)
		req.Method = "POST"
		client := &sendgrid.Client{Request: req}

		resp, err := client.SendWithContext(ctx, message)
		if err != nil {
			errs = append(errs, fmt.Errorf("sendgrid %s: %w", addr, err))
			continue
		}
		if resp.StatusCode >= 300 {
			errs = append(errs, fmt.Errorf("sendgrid %s: status %d: %s", addr, resp.StatusCode, resp.Body))
		}
	}
	return errors.Join(errs...)
}
